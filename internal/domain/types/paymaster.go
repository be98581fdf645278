package types

import "github.com/gagliardetto/solana-go"

// PaymasterInfo mirrors the paymaster's getConfig result: the account that
// will be placed in the fee-payer slot, plus the validation rules the node
// enforces on sponsored transactions.
type PaymasterInfo struct {
	FeePayer solana.PublicKey `json:"fee_payer"`
	Rules    ValidationRules  `json:"validation_config"`
}

// ValidationRules is the server-side sponsorship policy as advertised to
// clients. The demo only displays these; enforcement is the paymaster's job.
type ValidationRules struct {
	MaxLamportsPerTransfer Lamports `json:"max_allowed_lamports"`
	AllowedPrograms        []string `json:"allowed_programs"`
	AllowedTokens          []string `json:"allowed_tokens"`
}

// BlockhashInfo is the recent blockhash the paymaster serves so clients can
// build transactions without their own RPC round trip.
type BlockhashInfo struct {
	Blockhash            solana.Hash `json:"blockhash"`
	LastValidBlockHeight uint64      `json:"last_valid_block_height"`
}

// FeeTokenInfo describes one SPL token the paymaster accepts as fee payment.
type FeeTokenInfo struct {
	Mint     solana.PublicKey `json:"mint"`
	Symbol   string           `json:"symbol"`
	Decimals uint8            `json:"decimals"`
}

// FeeEstimate is the paymaster's quote for a prospective transaction.
type FeeEstimate struct {
	FeeLamports Lamports `json:"fee_in_lamports"`
	TokenAmount uint64   `json:"fee_in_token,omitempty"`
	FeeToken    string   `json:"fee_token,omitempty"`
}

// SubmitResult is returned by the paymaster signing methods.
type SubmitResult struct {
	Signature         solana.Signature `json:"signature"`
	SignedTransaction string           `json:"signed_transaction"`
}

// PreparedTransfer is a server-built transfer transaction, returned by the
// paymaster's transferTransaction method.
type PreparedTransfer struct {
	TransactionBase64 string      `json:"transaction"`
	Blockhash         solana.Hash `json:"blockhash"`
}
