package chain_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gagliardetto/solana-go"

	"github.com/MasteraSnackin/lazorkit-passkey-demo/internal/chain"
	"github.com/MasteraSnackin/lazorkit-passkey-demo/internal/domain"
)

// rpcNode fakes a Solana RPC endpoint, answering each method with a canned
// result fragment.
func rpcNode(t *testing.T, results map[string]string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode rpc request: %v", err)
		}
		result, ok := results[req.Method]
		if !ok {
			t.Errorf("unexpected rpc method %q", req.Method)
			result = "null"
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"result":%s}`, req.ID, result)
	}))
}

func TestBalance(t *testing.T) {
	srv := rpcNode(t, map[string]string{
		"getBalance": `{"context":{"slot":100},"value":2500000000}`,
	})
	defer srv.Close()

	c := chain.NewClient(srv.URL, "confirmed")
	got, err := c.Balance(context.Background(), solana.SystemProgramID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if got != 2_500_000_000 {
		t.Errorf("balance: got %d lamports", got)
	}
}

func TestSignatureStatus(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  domain.TransferStatus
	}{
		{
			name:  "finalized",
			value: `{"slot":72,"confirmations":null,"err":null,"confirmationStatus":"finalized"}`,
			want:  domain.TransferFinalized,
		},
		{
			name:  "confirmed",
			value: `{"slot":72,"confirmations":10,"err":null,"confirmationStatus":"confirmed"}`,
			want:  domain.TransferConfirmed,
		},
		{
			name:  "processed counts as pending",
			value: `{"slot":72,"confirmations":1,"err":null,"confirmationStatus":"processed"}`,
			want:  domain.TransferPending,
		},
		{
			name:  "on-chain error",
			value: `{"slot":72,"confirmations":null,"err":{"InstructionError":[0,{"Custom":1}]},"confirmationStatus":"finalized"}`,
			want:  domain.TransferFailed,
		},
		{
			name:  "unknown signature",
			value: `null`,
			want:  domain.TransferPending,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := rpcNode(t, map[string]string{
				"getSignatureStatuses": fmt.Sprintf(`{"context":{"slot":82},"value":[%s]}`, tc.value),
			})
			defer srv.Close()

			c := chain.NewClient(srv.URL, "confirmed")
			got, err := c.SignatureStatus(context.Background(), solana.Signature{1})
			if err != nil {
				t.Fatalf("signature status: %v", err)
			}
			if got != tc.want {
				t.Errorf("status: got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	srv := rpcNode(t, map[string]string{"getHealth": `"ok"`})
	defer srv.Close()

	c := chain.NewClient(srv.URL, "confirmed")
	if err := c.Health(context.Background()); err != nil {
		t.Fatalf("health: %v", err)
	}
}
