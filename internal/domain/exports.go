package domain

import (
	interfaces "github.com/MasteraSnackin/lazorkit-passkey-demo/internal/domain/interfaces"
	types "github.com/MasteraSnackin/lazorkit-passkey-demo/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	CredentialID          = types.CredentialID
	Fingerprint           = types.Fingerprint
	FeeMode               = types.FeeMode
	TransferStatus        = types.TransferStatus
	Lamports              = types.Lamports
	WalletAccount         = types.WalletAccount
	RegisterDeviceRequest = types.RegisterDeviceRequest
	Session               = types.Session
	TransferRequest       = types.TransferRequest
	TransferReceipt       = types.TransferReceipt
	TransferRecord        = types.TransferRecord
	PaymasterInfo         = types.PaymasterInfo
	ValidationRules       = types.ValidationRules
	BlockhashInfo         = types.BlockhashInfo
	FeeTokenInfo          = types.FeeTokenInfo
	FeeEstimate           = types.FeeEstimate
	SubmitResult          = types.SubmitResult
	PreparedTransfer      = types.PreparedTransfer
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	PortalClient    = interfaces.PortalClient
	PaymasterClient = interfaces.PaymasterClient
	ChainClient     = interfaces.ChainClient
	SessionStore    = interfaces.SessionStore
	HistoryStore    = interfaces.HistoryStore
	WalletService   = interfaces.WalletService
	TransferService = interfaces.TransferService
)

// Shared constants re-exported for the same reason.
const (
	FeeModeSponsored = types.FeeModeSponsored
	FeeModeToken     = types.FeeModeToken

	TransferPending   = types.TransferPending
	TransferConfirmed = types.TransferConfirmed
	TransferFinalized = types.TransferFinalized
	TransferFailed    = types.TransferFailed

	LamportsPerSOL = types.LamportsPerSOL
)

// ParseSOL is re-exported next to the Lamports alias it returns.
var ParseSOL = types.ParseSOL

// Amount parsing errors, re-exported for callers that branch on them.
var (
	ErrInvalidAmount   = types.ErrInvalidAmount
	ErrAmountPrecision = types.ErrAmountPrecision
	ErrAmountRange     = types.ErrAmountRange
)
