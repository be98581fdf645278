package interfaces

import (
	"context"

	"github.com/gagliardetto/solana-go"

	domaintypes "github.com/MasteraSnackin/lazorkit-passkey-demo/internal/domain/types"
)

// WalletService owns the connect/disconnect lifecycle and connection state.
type WalletService interface {
	// Connect establishes (or, unless fresh is set, resumes) a wallet session
	// and persists it under the passphrase.
	Connect(ctx context.Context, passphrase string, fresh bool) (domaintypes.Session, error)

	// Disconnect discards the stored session. Not being connected is fine.
	Disconnect() error

	// Session returns the stored session, with ok=false when disconnected.
	Session(passphrase string) (domaintypes.Session, bool, error)

	// Balance fetches the smart wallet's lamport balance.
	Balance(ctx context.Context, passphrase string) (domaintypes.Lamports, error)
}

// TransferService submits value transfers through the paymaster and tracks
// them locally.
type TransferService interface {
	Submit(
		ctx context.Context,
		passphrase string,
		req domaintypes.TransferRequest,
	) (domaintypes.TransferReceipt, error)

	// Estimate prices req without submitting it.
	Estimate(
		ctx context.Context,
		passphrase string,
		req domaintypes.TransferRequest,
	) (domaintypes.FeeEstimate, error)

	// Status is a single-shot confirmation lookup for a signature.
	Status(ctx context.Context, sig solana.Signature) (domaintypes.TransferStatus, error)

	// History lists the most recent local submissions.
	History(limit int) ([]domaintypes.TransferRecord, error)

	// RefreshHistory re-queries the status of pending submissions and
	// returns how many rows changed.
	RefreshHistory(ctx context.Context) (int, error)
}
