package chain

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/MasteraSnackin/lazorkit-passkey-demo/internal/domain"
)

// Client is a thin read-only wrapper over a Solana RPC node.
type Client struct {
	rpc        *rpc.Client
	commitment rpc.CommitmentType
}

// NewClient returns a Client for the RPC node at endpoint using the given
// commitment level for queries.
func NewClient(endpoint, commitment string) *Client {
	return &Client{
		rpc:        rpc.New(endpoint),
		commitment: rpc.CommitmentType(commitment),
	}
}

// Balance returns the lamport balance of account.
func (c *Client) Balance(ctx context.Context, account solana.PublicKey) (domain.Lamports, error) {
	res, err := c.rpc.GetBalance(ctx, account, c.commitment)
	if err != nil {
		return 0, fmt.Errorf("get balance: %w", err)
	}
	return domain.Lamports(res.Value), nil
}

// SignatureStatus maps the cluster's view of a signature onto a transfer
// status. A signature the cluster has not seen yet reports as pending.
func (c *Client) SignatureStatus(ctx context.Context, sig solana.Signature) (domain.TransferStatus, error) {
	res, err := c.rpc.GetSignatureStatuses(ctx, true, sig)
	if err != nil {
		return "", fmt.Errorf("get signature status: %w", err)
	}
	if len(res.Value) == 0 || res.Value[0] == nil {
		return domain.TransferPending, nil
	}
	status := res.Value[0]
	if status.Err != nil {
		return domain.TransferFailed, nil
	}
	switch status.ConfirmationStatus {
	case rpc.ConfirmationStatusFinalized:
		return domain.TransferFinalized, nil
	case rpc.ConfirmationStatusConfirmed:
		return domain.TransferConfirmed, nil
	default:
		return domain.TransferPending, nil
	}
}

// Health reports whether the RPC node considers itself healthy.
func (c *Client) Health(ctx context.Context) error {
	status, err := c.rpc.GetHealth(ctx)
	if err != nil {
		return fmt.Errorf("rpc health: %w", err)
	}
	if status != "ok" {
		return fmt.Errorf("rpc health: %s", status)
	}
	return nil
}

// Compile-time assertion that Client implements domain.ChainClient.
var _ domain.ChainClient = (*Client)(nil)
