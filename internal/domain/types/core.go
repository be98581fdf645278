package types

// CredentialID identifies a passkey credential issued by the portal.
type CredentialID string

// String returns the string form of the credential id.
func (id CredentialID) String() string { return string(id) }

// Fingerprint is a short identifier for public keys presented to users.
type Fingerprint string

// String returns the string form of the fingerprint.
func (f Fingerprint) String() string { return string(f) }

// FeeMode selects how network fees for a submission are covered.
type FeeMode string

const (
	// FeeModeSponsored has the paymaster cover the fee entirely.
	FeeModeSponsored FeeMode = "sponsored"
	// FeeModeToken pays the fee in an SPL token accepted by the paymaster.
	FeeModeToken FeeMode = "token"
)

// String returns the string form of the fee mode.
func (m FeeMode) String() string { return string(m) }

// TransferStatus tracks a submitted transfer through confirmation.
type TransferStatus string

const (
	// TransferPending means the paymaster accepted the transaction but the
	// network has not confirmed it yet.
	TransferPending TransferStatus = "pending"
	// TransferConfirmed means the cluster confirmed the transaction.
	TransferConfirmed TransferStatus = "confirmed"
	// TransferFinalized means the transaction is rooted and irreversible.
	TransferFinalized TransferStatus = "finalized"
	// TransferFailed means the transaction errored on chain.
	TransferFailed TransferStatus = "failed"
)

// String returns the string form of the status.
func (s TransferStatus) String() string { return string(s) }

// Terminal reports whether the status can no longer change.
func (s TransferStatus) Terminal() bool {
	return s == TransferFinalized || s == TransferFailed
}
