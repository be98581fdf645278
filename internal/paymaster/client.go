package paymaster

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/google/uuid"

	"github.com/MasteraSnackin/lazorkit-passkey-demo/internal/domain"
)

// Client speaks JSON-RPC 2.0 to a Kora-style paymaster node.
type Client struct {
	base   string
	apiKey string
	http   *http.Client
}

// NewClient returns a Client for the paymaster at base. An empty apiKey
// leaves the x-api-key header unset.
func NewClient(base, apiKey string, timeout time.Duration) *Client {
	return &Client{
		base:   strings.TrimRight(base, "/"),
		apiKey: apiKey,
		http:   &http.Client{Timeout: timeout},
	}
}

// Config fetches the fee payer address and the node's validation rules.
func (c *Client) Config(ctx context.Context) (domain.PaymasterInfo, error) {
	var out domain.PaymasterInfo
	if err := c.call(ctx, methodGetConfig, nil, &out); err != nil {
		return domain.PaymasterInfo{}, err
	}
	return out, nil
}

// Blockhash fetches a recent blockhash from the paymaster, saving clients a
// direct RPC round trip.
func (c *Client) Blockhash(ctx context.Context) (domain.BlockhashInfo, error) {
	var out domain.BlockhashInfo
	if err := c.call(ctx, methodGetBlockhash, nil, &out); err != nil {
		return domain.BlockhashInfo{}, err
	}
	return out, nil
}

// SupportedTokens lists the SPL tokens the node accepts as fee payment.
func (c *Client) SupportedTokens(ctx context.Context) ([]domain.FeeTokenInfo, error) {
	var raw getSupportedTokensResult
	if err := c.call(ctx, methodGetSupportedTokens, nil, &raw); err != nil {
		return nil, err
	}
	out := make([]domain.FeeTokenInfo, 0, len(raw.Tokens))
	for _, tok := range raw.Tokens {
		mint, err := solana.PublicKeyFromBase58(tok.Mint)
		if err != nil {
			return nil, fmt.Errorf("supported token mint %q: %w", tok.Mint, err)
		}
		out = append(out, domain.FeeTokenInfo{
			Mint:     mint,
			Symbol:   tok.Symbol,
			Decimals: tok.Decimals,
		})
	}
	return out, nil
}

// EstimateFee quotes the fee for a base64-encoded transaction, optionally
// denominated in an accepted fee token.
func (c *Client) EstimateFee(ctx context.Context, transactionBase64, feeToken string) (domain.FeeEstimate, error) {
	var out domain.FeeEstimate
	params := estimateFeeParams{Transaction: transactionBase64, FeeToken: feeToken}
	if err := c.call(ctx, methodEstimateFee, params, &out); err != nil {
		return domain.FeeEstimate{}, err
	}
	return out, nil
}

// SignTransaction adds the fee payer signature without broadcasting.
func (c *Client) SignTransaction(ctx context.Context, transactionBase64 string) (domain.SubmitResult, error) {
	var out domain.SubmitResult
	params := signTransactionParams{Transaction: transactionBase64}
	if err := c.call(ctx, methodSignTransaction, params, &out); err != nil {
		return domain.SubmitResult{}, err
	}
	return out, nil
}

// SignAndSend adds the fee payer signature and submits to the cluster.
func (c *Client) SignAndSend(ctx context.Context, transactionBase64, feeToken string) (domain.SubmitResult, error) {
	var out domain.SubmitResult
	params := signAndSendParams{Transaction: transactionBase64, FeeToken: feeToken}
	if err := c.call(ctx, methodSignAndSend, params, &out); err != nil {
		return domain.SubmitResult{}, err
	}
	return out, nil
}

// BuildTransfer asks the node to assemble a native transfer server-side.
func (c *Client) BuildTransfer(ctx context.Context, amount domain.Lamports, source, destination solana.PublicKey) (domain.PreparedTransfer, error) {
	var out domain.PreparedTransfer
	params := transferTransactionParams{
		Amount:      uint64(amount),
		Token:       solana.SolMint.String(),
		Source:      source.String(),
		Destination: destination.String(),
	}
	if err := c.call(ctx, methodTransferTransaction, params, &out); err != nil {
		return domain.PreparedTransfer{}, err
	}
	return out, nil
}

// call performs one JSON-RPC round trip. RPC-level rejections come back as
// *RPCError.
func (c *Client) call(ctx context.Context, method string, params, out any) error {
	body := rpcRequest{
		JSONRPC: "2.0",
		ID:      uuid.NewString(),
		Method:  method,
		Params:  params,
	}
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(body); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("paymaster %s: %s", method, resp.Status)
	}
	var rpcResp rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return fmt.Errorf("paymaster %s: decode: %w", method, err)
	}
	if rpcResp.Error != nil {
		return rpcResp.Error
	}
	if out != nil {
		if err := json.Unmarshal(rpcResp.Result, out); err != nil {
			return fmt.Errorf("paymaster %s: result: %w", method, err)
		}
	}
	return nil
}

// Compile-time assertion that Client implements domain.PaymasterClient.
var _ domain.PaymasterClient = (*Client)(nil)
