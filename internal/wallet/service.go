package wallet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/MasteraSnackin/lazorkit-passkey-demo/internal/domain"
	"github.com/MasteraSnackin/lazorkit-passkey-demo/internal/store"
)

// minPassphraseLength is the minimum accepted passphrase size. The session
// file holds the device signing key, so an empty or trivial passphrase
// defeats the point of sealing it.
const minPassphraseLength = 8

// ErrWeakPassphrase is returned when the passphrase fails the length policy.
var ErrWeakPassphrase = fmt.Errorf("passphrase too short (need at least %d characters)", minPassphraseLength)

// Service owns the connect/disconnect lifecycle. Connecting asks the portal
// to bind a smart wallet to a locally generated device key; the resulting
// session is sealed on disk under the user passphrase.
type Service struct {
	portal    domain.PortalClient
	chain     domain.ChainClient
	sessions  domain.SessionStore
	portalURL string
}

// New returns a wallet service using the given portal, chain view and
// session store. portalURL is recorded in sessions so status output can show
// where a wallet came from.
func New(portal domain.PortalClient, chain domain.ChainClient, sessions domain.SessionStore, portalURL string) *Service {
	return &Service{portal: portal, chain: chain, sessions: sessions, portalURL: portalURL}
}

// Connect establishes a wallet session. With an existing session and fresh
// unset, it resumes: the stored credential is re-resolved at the portal and
// the session's last-used time advances. Otherwise a new device key is
// generated and registered, which mints a new credential and smart wallet.
func (s *Service) Connect(ctx context.Context, passphrase string, fresh bool) (domain.Session, error) {
	if len(passphrase) < minPassphraseLength {
		return domain.Session{}, ErrWeakPassphrase
	}

	if !fresh {
		has, err := s.sessions.HasSession()
		if err != nil {
			return domain.Session{}, err
		}
		if has {
			return s.resume(ctx, passphrase)
		}
	}

	device, err := solana.NewRandomPrivateKey()
	if err != nil {
		return domain.Session{}, fmt.Errorf("generate device key: %w", err)
	}
	acct, err := s.portal.RegisterDevice(ctx, domain.RegisterDeviceRequest{
		DeviceKey: device.PublicKey(),
	})
	if err != nil {
		return domain.Session{}, fmt.Errorf("register device: %w", err)
	}

	now := time.Now().Unix()
	session := domain.Session{
		CredentialID: acct.CredentialID,
		SmartWallet:  acct.SmartWallet,
		DeviceKey:    device,
		PortalURL:    s.portalURL,
		CreatedUnix:  now,
		LastUsedUnix: now,
	}
	if err := s.sessions.SaveSession(passphrase, session); err != nil {
		return domain.Session{}, fmt.Errorf("save session: %w", err)
	}
	return session, nil
}

// resume re-validates a stored session against the portal.
func (s *Service) resume(ctx context.Context, passphrase string) (domain.Session, error) {
	session, err := s.sessions.LoadSession(passphrase)
	if err != nil {
		return domain.Session{}, err
	}
	acct, err := s.portal.ResolveWallet(ctx, session.CredentialID)
	if err != nil {
		return domain.Session{}, fmt.Errorf("resolve credential %s: %w", session.CredentialID, err)
	}
	if !acct.SmartWallet.Equals(session.SmartWallet) {
		return domain.Session{}, fmt.Errorf("portal wallet %s does not match stored session %s", acct.SmartWallet, session.SmartWallet)
	}

	session.LastUsedUnix = time.Now().Unix()
	if err := s.sessions.SaveSession(passphrase, session); err != nil {
		return domain.Session{}, fmt.Errorf("save session: %w", err)
	}
	return session, nil
}

// Disconnect discards the stored session. Not being connected is fine.
func (s *Service) Disconnect() error {
	return s.sessions.ClearSession()
}

// Session returns the stored session, with ok=false when disconnected.
func (s *Service) Session(passphrase string) (domain.Session, bool, error) {
	session, err := s.sessions.LoadSession(passphrase)
	if errors.Is(err, store.ErrNoSession) {
		return domain.Session{}, false, nil
	}
	if err != nil {
		return domain.Session{}, false, err
	}
	return session, true, nil
}

// Balance fetches the smart wallet's lamport balance.
func (s *Service) Balance(ctx context.Context, passphrase string) (domain.Lamports, error) {
	session, err := s.sessions.LoadSession(passphrase)
	if err != nil {
		return 0, err
	}
	return s.chain.Balance(ctx, session.SmartWallet)
}

// Compile-time assertion that Service implements domain.WalletService.
var _ domain.WalletService = (*Service)(nil)
