// The paymaster binary is a local stand-in for the hosted Kora-style fee
// sponsor. It exposes the same JSON-RPC surface, enforces a sponsorship
// policy, and signs the fee-payer slot of passing transactions. By default
// it only signs; --forward also broadcasts to the cluster.
package main

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/MasteraSnackin/lazorkit-passkey-demo/internal/config"
	"github.com/MasteraSnackin/lazorkit-passkey-demo/internal/domain"
	"github.com/MasteraSnackin/lazorkit-passkey-demo/internal/sponsor"
)

// JSON-RPC envelopes. The id is echoed raw so numeric and string callers
// both round-trip.
type rpcCall struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

type rpcReply struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Result  any             `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type txParams struct {
	Transaction string `json:"transaction"`
	FeeToken    string `json:"fee_token"`
}

type transferParams struct {
	Amount      uint64 `json:"amount"`
	Token       string `json:"token"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

type tokenEntry struct {
	Mint     string `json:"mint"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}

func invalidParams(err error) *rpcError { return &rpcError{Code: -32602, Message: err.Error()} }

// refused maps a policy rejection into the sponsorship error code clients
// display verbatim.
func refused(err error) *rpcError { return &rpcError{Code: -32003, Message: err.Error()} }

// node is the running paymaster: the policy engine plus an optional RPC
// client for forward mode.
type node struct {
	engine *sponsor.Engine
	rpc    *rpc.Client
	log    *slog.Logger
}

func (n *node) handleRPC(c *fiber.Ctx) error {
	if !n.engine.Policy().AcceptsKey(c.Get("x-api-key")) {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	var call rpcCall
	if err := json.Unmarshal(c.Body(), &call); err != nil {
		return c.JSON(rpcReply{JSONRPC: "2.0", Error: &rpcError{Code: -32700, Message: "parse error"}})
	}

	result, rpcErr := n.dispatch(c.Context(), call.Method, call.Params)
	if rpcErr != nil {
		n.log.Warn("rpc rejected", "method", call.Method, "code", rpcErr.Code, "reason", rpcErr.Message)
		return c.JSON(rpcReply{JSONRPC: "2.0", ID: call.ID, Error: rpcErr})
	}
	return c.JSON(rpcReply{JSONRPC: "2.0", ID: call.ID, Result: result})
}

func (n *node) dispatch(ctx context.Context, method string, params json.RawMessage) (any, *rpcError) {
	switch method {
	case "getConfig":
		return domain.PaymasterInfo{
			FeePayer: n.engine.FeePayer(),
			Rules:    n.engine.Policy().Rules(),
		}, nil
	case "getBlockhash":
		info, err := n.blockhash(ctx)
		if err != nil {
			return nil, &rpcError{Code: -32002, Message: "blockhash unavailable: " + err.Error()}
		}
		return info, nil
	case "getSupportedTokens":
		return n.supportedTokens(), nil
	case "estimateTransactionFee":
		return n.estimate(params)
	case "signTransaction":
		return n.sign(params)
	case "signAndSendTransaction":
		return n.signAndSend(ctx, params)
	case "transferTransaction":
		return n.buildTransfer(ctx, params)
	default:
		return nil, &rpcError{Code: -32601, Message: "method not found: " + method}
	}
}

// blockhash serves a real blockhash in forward mode and a random one
// otherwise; unsent transactions never meet the cluster's recency check.
func (n *node) blockhash(ctx context.Context) (domain.BlockhashInfo, error) {
	if n.rpc != nil {
		out, err := n.rpc.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
		if err != nil {
			return domain.BlockhashInfo{}, err
		}
		return domain.BlockhashInfo{
			Blockhash:            out.Value.Blockhash,
			LastValidBlockHeight: out.Value.LastValidBlockHeight,
		}, nil
	}

	var h solana.Hash
	if _, err := rand.Read(h[:]); err != nil {
		return domain.BlockhashInfo{}, err
	}
	return domain.BlockhashInfo{Blockhash: h}, nil
}

func (n *node) supportedTokens() any {
	policy := n.engine.Policy()
	tokens := make([]tokenEntry, 0, len(policy.FeeTokens))
	for _, tok := range policy.FeeTokens {
		tokens = append(tokens, tokenEntry{Mint: tok.Mint, Symbol: tok.Symbol, Decimals: tok.Decimals})
	}
	return struct {
		Tokens []tokenEntry `json:"tokens"`
	}{Tokens: tokens}
}

func (n *node) estimate(params json.RawMessage) (any, *rpcError) {
	var p txParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, invalidParams(err)
	}
	tx, err := solana.TransactionFromBase64(p.Transaction)
	if err != nil {
		return nil, invalidParams(err)
	}

	sigs := int(tx.Message.Header.NumRequiredSignatures)
	est := domain.FeeEstimate{FeeLamports: domain.Lamports(sponsor.FeePerSignature * sigs)}
	if p.FeeToken != "" {
		amount, err := n.engine.QuoteToken(p.FeeToken, sigs)
		if err != nil {
			return nil, invalidParams(err)
		}
		est.TokenAmount = amount
		est.FeeToken = p.FeeToken
	}
	return est, nil
}

func (n *node) sign(params json.RawMessage) (any, *rpcError) {
	var p txParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, invalidParams(err)
	}
	tx, err := solana.TransactionFromBase64(p.Transaction)
	if err != nil {
		return nil, invalidParams(err)
	}

	if _, err := n.engine.Evaluate(tx); err != nil {
		return nil, refused(err)
	}
	if err := n.engine.Sign(tx); err != nil {
		return nil, &rpcError{Code: -32603, Message: err.Error()}
	}

	encoded, err := tx.ToBase64()
	if err != nil {
		return nil, &rpcError{Code: -32603, Message: err.Error()}
	}
	return domain.SubmitResult{Signature: tx.Signatures[0], SignedTransaction: encoded}, nil
}

func (n *node) signAndSend(ctx context.Context, params json.RawMessage) (any, *rpcError) {
	var p txParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, invalidParams(err)
	}
	tx, err := solana.TransactionFromBase64(p.Transaction)
	if err != nil {
		return nil, invalidParams(err)
	}

	decision, err := n.engine.Evaluate(tx)
	if err != nil {
		return nil, refused(err)
	}
	if p.FeeToken != "" {
		if _, err := n.engine.QuoteToken(p.FeeToken, decision.Signatures); err != nil {
			return nil, invalidParams(err)
		}
	}
	if err := n.engine.Sign(tx); err != nil {
		return nil, &rpcError{Code: -32603, Message: err.Error()}
	}

	sig := tx.Signatures[0]
	if n.rpc != nil {
		sent, err := n.rpc.SendTransaction(ctx, tx)
		if err != nil {
			return nil, &rpcError{Code: -32002, Message: "broadcast failed: " + err.Error()}
		}
		sig = sent
	}

	n.engine.RecordSponsored(sig, decision.FeeLamports)
	total, count := n.engine.Stats()
	n.log.Info("transaction sponsored",
		"signature", sig.String(),
		"lamports", int64(decision.Lamports),
		"fee", int64(decision.FeeLamports),
		"total_sponsored", int64(total),
		"operations", count)

	encoded, err := tx.ToBase64()
	if err != nil {
		return nil, &rpcError{Code: -32603, Message: err.Error()}
	}
	return domain.SubmitResult{Signature: sig, SignedTransaction: encoded}, nil
}

func (n *node) buildTransfer(ctx context.Context, params json.RawMessage) (any, *rpcError) {
	var p transferParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, invalidParams(err)
	}
	if p.Token != "" && p.Token != solana.SolMint.String() {
		return nil, &rpcError{Code: -32602, Message: "only SOL transfers can be built server-side"}
	}
	if p.Amount == 0 {
		return nil, &rpcError{Code: -32602, Message: "amount must be positive"}
	}
	source, err := solana.PublicKeyFromBase58(p.Source)
	if err != nil {
		return nil, invalidParams(err)
	}
	destination, err := solana.PublicKeyFromBase58(p.Destination)
	if err != nil {
		return nil, invalidParams(err)
	}

	recent, err := n.blockhash(ctx)
	if err != nil {
		return nil, &rpcError{Code: -32002, Message: "blockhash unavailable: " + err.Error()}
	}
	tx, err := solana.NewTransaction(
		[]solana.Instruction{
			system.NewTransferInstruction(p.Amount, source, destination).Build(),
		},
		recent.Blockhash,
		solana.TransactionPayer(n.engine.FeePayer()),
	)
	if err != nil {
		return nil, &rpcError{Code: -32603, Message: err.Error()}
	}
	encoded, err := tx.ToBase64()
	if err != nil {
		return nil, &rpcError{Code: -32603, Message: err.Error()}
	}
	return domain.PreparedTransfer{TransactionBase64: encoded, Blockhash: recent.Blockhash}, nil
}

func newServer(n *node) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(cors.New())

	app.Post("/", n.handleRPC)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/stats", func(c *fiber.Ctx) error {
		total, count := n.engine.Stats()
		return c.JSON(fiber.Map{
			"active":                   n.engine.Policy().Active,
			"total_sponsored_lamports": int64(total),
			"operations":               count,
		})
	})

	return app
}

func main() {
	addr := flag.String("addr", ":8081", "listen address")
	policyPath := flag.String("policy", "", "sponsorship policy YAML (default: built-in dev policy)")
	payerPath := flag.String("payer", "", "fee payer keypair file (default: ephemeral key)")
	rpcURL := flag.String("rpc", config.DefaultRPCURL, "RPC endpoint for forward mode")
	forward := flag.Bool("forward", false, "broadcast signed transactions to the cluster")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	policy := sponsor.DefaultPolicy()
	if *policyPath != "" {
		loaded, err := sponsor.LoadPolicy(*policyPath)
		if err != nil {
			logger.Error("policy load failed", "error", err)
			os.Exit(1)
		}
		policy = loaded
	}

	payer, err := sponsor.LoadPayerKey(*payerPath)
	if err != nil {
		logger.Error("payer key load failed", "error", err)
		os.Exit(1)
	}

	engine := sponsor.NewEngine(policy, payer)
	n := &node{engine: engine, log: logger}
	if *forward {
		n.rpc = rpc.New(*rpcURL)
	}

	if *policyPath != "" {
		watcher := sponsor.NewPolicyWatcher(*policyPath, engine, logger)
		if err := watcher.Start(); err != nil {
			logger.Warn("policy hot-reload disabled", "error", err)
		} else {
			defer watcher.Stop()
		}
	}

	app := newServer(n)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("paymaster listening",
			"addr", *addr,
			"fee_payer", engine.FeePayer().String(),
			"active", policy.Active,
			"forward", *forward)
		if err := app.Listen(*addr); err != nil {
			logger.Error("paymaster stopped", "error", err)
		}
	}()

	<-stop
	logger.Info("shutting down")
	if err := app.Shutdown(); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}
