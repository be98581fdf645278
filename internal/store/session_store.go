package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gagliardetto/solana-go"

	"github.com/MasteraSnackin/lazorkit-passkey-demo/internal/crypto"
	"github.com/MasteraSnackin/lazorkit-passkey-demo/internal/domain"
)

const sessionFilename = "session.json.enc"

// ErrNoSession is returned when no wallet session has been stored; run
// connect first.
var ErrNoSession = errors.New("no wallet session; run connect first")

// sessionRecord is the on-disk shape of a session. Keys travel as base58
// strings so the file stays inspectable once decrypted.
type sessionRecord struct {
	CredentialID string `json:"credential_id"`
	SmartWallet  string `json:"smart_wallet"`
	DeviceKey    string `json:"device_key"`
	PortalURL    string `json:"portal_url"`
	CreatedUnix  int64  `json:"created_unix"`
	LastUsedUnix int64  `json:"last_used_unix"`
}

// SessionFileStore persists the connected-wallet session to disk, sealed
// under the user passphrase.
type SessionFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewSessionFileStore returns a SessionFileStore rooted at dir.
func NewSessionFileStore(dir string) *SessionFileStore {
	return &SessionFileStore{dir: dir}
}

// SaveSession seals and writes the session, replacing any previous one.
func (s *SessionFileStore) SaveSession(passphrase string, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := sessionRecord{
		CredentialID: string(session.CredentialID),
		SmartWallet:  session.SmartWallet.String(),
		DeviceKey:    session.DeviceKey.String(),
		PortalURL:    session.PortalURL,
		CreatedUnix:  session.CreatedUnix,
		LastUsedUnix: session.LastUsedUnix,
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	blob, err := crypto.Seal(passphrase, raw)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	return writeFile(filepath.Join(s.dir, sessionFilename), blob, 0o600)
}

// LoadSession reads and unseals the stored session. Returns ErrNoSession when
// nothing is stored and crypto.ErrWrongPassphrase on a bad passphrase.
func (s *SessionFileStore) LoadSession(passphrase string) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := os.ReadFile(filepath.Join(s.dir, sessionFilename))
	if errors.Is(err, os.ErrNotExist) {
		return domain.Session{}, ErrNoSession
	}
	if err != nil {
		return domain.Session{}, err
	}
	raw, err := crypto.Open(passphrase, blob)
	if err != nil {
		return domain.Session{}, err
	}
	var rec sessionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.Session{}, err
	}

	wallet, err := solana.PublicKeyFromBase58(rec.SmartWallet)
	if err != nil {
		return domain.Session{}, fmt.Errorf("session smart wallet: %w", err)
	}
	device, err := solana.PrivateKeyFromBase58(rec.DeviceKey)
	if err != nil {
		return domain.Session{}, fmt.Errorf("session device key: %w", err)
	}
	return domain.Session{
		CredentialID: domain.CredentialID(rec.CredentialID),
		SmartWallet:  wallet,
		DeviceKey:    device,
		PortalURL:    rec.PortalURL,
		CreatedUnix:  rec.CreatedUnix,
		LastUsedUnix: rec.LastUsedUnix,
	}, nil
}

// HasSession reports whether a session file exists without decrypting it.
func (s *SessionFileStore) HasSession() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := os.Stat(filepath.Join(s.dir, sessionFilename))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ClearSession removes the stored session; a missing file is not an error.
func (s *SessionFileStore) ClearSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(filepath.Join(s.dir, sessionFilename))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Compile-time assertion that SessionFileStore implements domain.SessionStore.
var _ domain.SessionStore = (*SessionFileStore)(nil)
