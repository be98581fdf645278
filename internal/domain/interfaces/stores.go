package interfaces

import (
	"github.com/gagliardetto/solana-go"

	domaintypes "github.com/MasteraSnackin/lazorkit-passkey-demo/internal/domain/types"
)

// SessionStore persists the connected-wallet session, sealed under the user
// passphrase.
type SessionStore interface {
	SaveSession(passphrase string, s domaintypes.Session) error
	LoadSession(passphrase string) (domaintypes.Session, error)
	// HasSession reports whether a session file exists without decrypting it.
	HasSession() (bool, error)
	// ClearSession removes the stored session; a missing file is not an error.
	ClearSession() error
}

// HistoryStore keeps the local record of submitted transfers.
type HistoryStore interface {
	Record(rec domaintypes.TransferRecord) (int64, error)
	List(limit int) ([]domaintypes.TransferRecord, error)
	// Pending returns records whose status is not terminal, oldest first.
	Pending() ([]domaintypes.TransferRecord, error)
	MarkStatus(sig solana.Signature, status domaintypes.TransferStatus) error
	Close() error
}
