package types

import "github.com/gagliardetto/solana-go"

// WalletAccount is what the portal hands back after a connect ceremony: the
// smart-wallet address it controls and the credential it is bound to. The
// demo never derives any of this locally; address derivation belongs to the
// portal and the on-chain wallet program.
type WalletAccount struct {
	CredentialID CredentialID     `json:"credential_id"`
	SmartWallet  solana.PublicKey `json:"smart_wallet"`
	DeviceKey    solana.PublicKey `json:"device_key"`
	CreatedUnix  int64            `json:"created_unix"`
}

// RegisterDeviceRequest asks the portal to bind a wallet to a device signing
// key. Reconnects pass the previously issued credential id so the portal can
// return the existing wallet instead of minting a new one.
type RegisterDeviceRequest struct {
	CredentialID CredentialID     `json:"credential_id,omitempty"`
	DeviceKey    solana.PublicKey `json:"device_key"`
	Label        string           `json:"label,omitempty"`
}

// Session is the connected-wallet state kept on disk between commands. The
// device private key stands in for the browser passkey prompt, so the whole
// record is sealed under the user passphrase at rest.
type Session struct {
	CredentialID CredentialID      `json:"credential_id"`
	SmartWallet  solana.PublicKey  `json:"smart_wallet"`
	DeviceKey    solana.PrivateKey `json:"device_key"`
	PortalURL    string            `json:"portal_url"`
	CreatedUnix  int64             `json:"created_unix"`
	LastUsedUnix int64             `json:"last_used_unix"`
}

// Connected reports whether the session carries usable wallet material.
func (s Session) Connected() bool {
	return s.CredentialID != "" && !s.SmartWallet.IsZero() && len(s.DeviceKey) > 0
}
