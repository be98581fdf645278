package paymaster_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/MasteraSnackin/lazorkit-passkey-demo/internal/domain"
	"github.com/MasteraSnackin/lazorkit-passkey-demo/internal/paymaster"
)

type rpcEnvelope struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      string          `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

// rpcServer responds to each method with the given result or error object.
func rpcServer(t *testing.T, handler func(req rpcEnvelope) (any, *paymaster.RPCError)) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcEnvelope
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.JSONRPC != "2.0" {
			t.Errorf("jsonrpc version: got %q", req.JSONRPC)
		}
		if req.ID == "" {
			t.Error("request id should not be empty")
		}

		result, rpcErr := handler(req)
		resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
		if rpcErr != nil {
			resp["error"] = rpcErr
		} else {
			resp["result"] = result
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestConfig(t *testing.T) {
	payer, err := solana.NewRandomPrivateKey()
	if err != nil {
		t.Fatalf("payer key: %v", err)
	}

	srv := rpcServer(t, func(req rpcEnvelope) (any, *paymaster.RPCError) {
		if req.Method != "getConfig" {
			t.Errorf("method: got %q", req.Method)
		}
		return domain.PaymasterInfo{
			FeePayer: payer.PublicKey(),
			Rules: domain.ValidationRules{
				MaxLamportsPerTransfer: 2 * domain.LamportsPerSOL,
				AllowedPrograms:        []string{solana.SystemProgramID.String()},
			},
		}, nil
	})
	defer srv.Close()

	c := paymaster.NewClient(srv.URL, "", 5*time.Second)
	info, err := c.Config(context.Background())
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if !info.FeePayer.Equals(payer.PublicKey()) {
		t.Errorf("fee payer: got %s", info.FeePayer)
	}
	if info.Rules.MaxLamportsPerTransfer != 2*domain.LamportsPerSOL {
		t.Errorf("max lamports: got %d", info.Rules.MaxLamportsPerTransfer)
	}
}

func TestBlockhash(t *testing.T) {
	want := solana.Hash{1, 2, 3}

	srv := rpcServer(t, func(req rpcEnvelope) (any, *paymaster.RPCError) {
		if req.Method != "getBlockhash" {
			t.Errorf("method: got %q", req.Method)
		}
		return domain.BlockhashInfo{Blockhash: want, LastValidBlockHeight: 900}, nil
	})
	defer srv.Close()

	c := paymaster.NewClient(srv.URL, "", 5*time.Second)
	info, err := c.Blockhash(context.Background())
	if err != nil {
		t.Fatalf("blockhash: %v", err)
	}
	if info.Blockhash != want {
		t.Errorf("blockhash: got %s", info.Blockhash)
	}
	if info.LastValidBlockHeight != 900 {
		t.Errorf("last valid height: got %d", info.LastValidBlockHeight)
	}
}

func TestSupportedTokens(t *testing.T) {
	srv := rpcServer(t, func(req rpcEnvelope) (any, *paymaster.RPCError) {
		return map[string]any{
			"tokens": []map[string]any{
				{"mint": solana.SolMint.String(), "symbol": "SOL", "decimals": 9},
			},
		}, nil
	})
	defer srv.Close()

	c := paymaster.NewClient(srv.URL, "", 5*time.Second)
	tokens, err := c.SupportedTokens(context.Background())
	if err != nil {
		t.Fatalf("supported tokens: %v", err)
	}
	if len(tokens) != 1 || tokens[0].Symbol != "SOL" || tokens[0].Decimals != 9 {
		t.Fatalf("tokens: got %+v", tokens)
	}
}

func TestSignAndSend_SendsAPIKeyAndParams(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		var req rpcEnvelope
		json.NewDecoder(r.Body).Decode(&req)
		var params struct {
			Transaction string `json:"transaction"`
			FeeToken    string `json:"fee_token"`
		}
		json.Unmarshal(req.Params, &params)
		if params.Transaction != "AAEC" {
			t.Errorf("transaction param: got %q", params.Transaction)
		}
		if params.FeeToken != "USDC" {
			t.Errorf("fee token param: got %q", params.FeeToken)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result":  domain.SubmitResult{Signature: solana.Signature{5}},
		})
	}))
	defer srv.Close()

	c := paymaster.NewClient(srv.URL, "secret-key", 5*time.Second)
	res, err := c.SignAndSend(context.Background(), "AAEC", "USDC")
	if err != nil {
		t.Fatalf("sign and send: %v", err)
	}
	if gotKey != "secret-key" {
		t.Errorf("x-api-key: got %q", gotKey)
	}
	if res.Signature != (solana.Signature{5}) {
		t.Errorf("signature: got %s", res.Signature)
	}
}

func TestRPCErrorSurfaced(t *testing.T) {
	srv := rpcServer(t, func(req rpcEnvelope) (any, *paymaster.RPCError) {
		return nil, &paymaster.RPCError{Code: -32602, Message: "transfer exceeds allowed lamports"}
	})
	defer srv.Close()

	c := paymaster.NewClient(srv.URL, "", 5*time.Second)
	_, err := c.SignTransaction(context.Background(), "AAEC")
	if err == nil {
		t.Fatal("expected rpc error")
	}
	var rpcErr *paymaster.RPCError
	if !errors.As(err, &rpcErr) {
		t.Fatalf("want *RPCError, got %T: %v", err, err)
	}
	if rpcErr.Code != -32602 {
		t.Errorf("code: got %d", rpcErr.Code)
	}
}

func TestBuildTransfer(t *testing.T) {
	source, err := solana.NewRandomPrivateKey()
	if err != nil {
		t.Fatalf("source key: %v", err)
	}
	dest, err := solana.NewRandomPrivateKey()
	if err != nil {
		t.Fatalf("dest key: %v", err)
	}

	srv := rpcServer(t, func(req rpcEnvelope) (any, *paymaster.RPCError) {
		if req.Method != "transferTransaction" {
			t.Errorf("method: got %q", req.Method)
		}
		var params struct {
			Amount      uint64 `json:"amount"`
			Token       string `json:"token"`
			Source      string `json:"source"`
			Destination string `json:"destination"`
		}
		json.Unmarshal(req.Params, &params)
		if params.Amount != 42 {
			t.Errorf("amount: got %d", params.Amount)
		}
		if params.Token != solana.SolMint.String() {
			t.Errorf("token: got %q", params.Token)
		}
		return domain.PreparedTransfer{TransactionBase64: "AAEC", Blockhash: solana.Hash{9}}, nil
	})
	defer srv.Close()

	c := paymaster.NewClient(srv.URL, "", 5*time.Second)
	prep, err := c.BuildTransfer(context.Background(), 42, source.PublicKey(), dest.PublicKey())
	if err != nil {
		t.Fatalf("build transfer: %v", err)
	}
	if prep.TransactionBase64 != "AAEC" {
		t.Errorf("transaction: got %q", prep.TransactionBase64)
	}
}
