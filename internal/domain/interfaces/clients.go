package interfaces

import (
	"context"

	"github.com/gagliardetto/solana-go"

	domaintypes "github.com/MasteraSnackin/lazorkit-passkey-demo/internal/domain/types"
)

// PortalClient is how we talk to the passkey portal, all with context.
type PortalClient interface {
	// RegisterDevice runs the connect ceremony: the portal binds a smart
	// wallet to the given device key and returns the resulting account.
	RegisterDevice(
		ctx context.Context,
		req domaintypes.RegisterDeviceRequest,
	) (domaintypes.WalletAccount, error)

	// ResolveWallet looks up the wallet bound to an existing credential.
	ResolveWallet(
		ctx context.Context,
		id domaintypes.CredentialID,
	) (domaintypes.WalletAccount, error)

	// Health reports whether the portal is reachable.
	Health(ctx context.Context) error
}

// PaymasterClient speaks the paymaster's JSON-RPC surface.
type PaymasterClient interface {
	Config(ctx context.Context) (domaintypes.PaymasterInfo, error)
	Blockhash(ctx context.Context) (domaintypes.BlockhashInfo, error)
	SupportedTokens(ctx context.Context) ([]domaintypes.FeeTokenInfo, error)

	// EstimateFee quotes the fee for a base64-encoded transaction, optionally
	// denominated in an accepted fee token.
	EstimateFee(
		ctx context.Context,
		transactionBase64 string,
		feeToken string,
	) (domaintypes.FeeEstimate, error)

	// SignTransaction adds the fee payer signature without broadcasting.
	SignTransaction(
		ctx context.Context,
		transactionBase64 string,
	) (domaintypes.SubmitResult, error)

	// SignAndSend adds the fee payer signature and submits to the cluster.
	SignAndSend(
		ctx context.Context,
		transactionBase64 string,
		feeToken string,
	) (domaintypes.SubmitResult, error)

	// BuildTransfer asks the paymaster to assemble a transfer transaction
	// server-side (the lazy path some SDK integrations use).
	BuildTransfer(
		ctx context.Context,
		amount domaintypes.Lamports,
		source solana.PublicKey,
		destination solana.PublicKey,
	) (domaintypes.PreparedTransfer, error)
}

// ChainClient is the read-only view of the cluster the demo needs for
// balances and confirmation lookups. Everything else goes through the
// paymaster.
type ChainClient interface {
	Balance(ctx context.Context, account solana.PublicKey) (domaintypes.Lamports, error)
	SignatureStatus(ctx context.Context, sig solana.Signature) (domaintypes.TransferStatus, error)
	Health(ctx context.Context) error
}
