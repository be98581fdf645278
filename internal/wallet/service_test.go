package wallet_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/gagliardetto/solana-go"

	"github.com/MasteraSnackin/lazorkit-passkey-demo/internal/crypto"
	"github.com/MasteraSnackin/lazorkit-passkey-demo/internal/domain"
	"github.com/MasteraSnackin/lazorkit-passkey-demo/internal/store"
	"github.com/MasteraSnackin/lazorkit-passkey-demo/internal/wallet"
)

// fakePortal mints deterministic credentials and remembers what it issued.
type fakePortal struct {
	t        *testing.T
	accounts map[domain.CredentialID]domain.WalletAccount
	minted   int
}

func newFakePortal(t *testing.T) *fakePortal {
	return &fakePortal{t: t, accounts: map[domain.CredentialID]domain.WalletAccount{}}
}

func (f *fakePortal) RegisterDevice(_ context.Context, req domain.RegisterDeviceRequest) (domain.WalletAccount, error) {
	f.minted++
	walletKey, err := solana.NewRandomPrivateKey()
	if err != nil {
		f.t.Fatalf("wallet key: %v", err)
	}
	acct := domain.WalletAccount{
		CredentialID: domain.CredentialID(fmt.Sprintf("cred-%d", f.minted)),
		SmartWallet:  walletKey.PublicKey(),
		DeviceKey:    req.DeviceKey,
	}
	f.accounts[acct.CredentialID] = acct
	return acct, nil
}

func (f *fakePortal) ResolveWallet(_ context.Context, id domain.CredentialID) (domain.WalletAccount, error) {
	acct, ok := f.accounts[id]
	if !ok {
		return domain.WalletAccount{}, errors.New("unknown credential")
	}
	return acct, nil
}

func (f *fakePortal) Health(context.Context) error { return nil }

type fakeChain struct {
	balances map[solana.PublicKey]domain.Lamports
}

func (f *fakeChain) Balance(_ context.Context, account solana.PublicKey) (domain.Lamports, error) {
	return f.balances[account], nil
}

func (f *fakeChain) SignatureStatus(context.Context, solana.Signature) (domain.TransferStatus, error) {
	return domain.TransferFinalized, nil
}

func (f *fakeChain) Health(context.Context) error { return nil }

const pass = "correct horse battery"

func newService(t *testing.T) (*wallet.Service, *fakePortal, *fakeChain) {
	t.Helper()

	portal := newFakePortal(t)
	chainView := &fakeChain{balances: map[solana.PublicKey]domain.Lamports{}}
	sessions := store.NewSessionFileStore(t.TempDir())
	svc := wallet.New(portal, chainView, sessions, "http://localhost:4040")
	return svc, portal, chainView
}

func TestConnect_MintsWallet(t *testing.T) {
	svc, portal, _ := newService(t)

	session, err := svc.Connect(context.Background(), pass, false)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if !session.Connected() {
		t.Fatal("session should be connected")
	}
	if portal.minted != 1 {
		t.Errorf("portal registrations: got %d, want 1", portal.minted)
	}
	if session.PortalURL != "http://localhost:4040" {
		t.Errorf("portal url: got %q", session.PortalURL)
	}
}

func TestConnect_ResumesExistingSession(t *testing.T) {
	svc, portal, _ := newService(t)
	ctx := context.Background()

	first, err := svc.Connect(ctx, pass, false)
	if err != nil {
		t.Fatalf("first connect: %v", err)
	}
	second, err := svc.Connect(ctx, pass, false)
	if err != nil {
		t.Fatalf("second connect: %v", err)
	}

	if second.CredentialID != first.CredentialID {
		t.Errorf("credential changed on resume: %s -> %s", first.CredentialID, second.CredentialID)
	}
	if !second.SmartWallet.Equals(first.SmartWallet) {
		t.Error("smart wallet changed on resume")
	}
	if portal.minted != 1 {
		t.Errorf("resume should not mint: got %d registrations", portal.minted)
	}
}

func TestConnect_FreshMintsNewWallet(t *testing.T) {
	svc, portal, _ := newService(t)
	ctx := context.Background()

	first, err := svc.Connect(ctx, pass, false)
	if err != nil {
		t.Fatalf("first connect: %v", err)
	}
	second, err := svc.Connect(ctx, pass, true)
	if err != nil {
		t.Fatalf("fresh connect: %v", err)
	}

	if second.CredentialID == first.CredentialID {
		t.Error("fresh connect should mint a new credential")
	}
	if portal.minted != 2 {
		t.Errorf("registrations: got %d, want 2", portal.minted)
	}
}

func TestConnect_RejectsWeakPassphrase(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.Connect(context.Background(), "short", false)
	if !errors.Is(err, wallet.ErrWeakPassphrase) {
		t.Fatalf("want ErrWeakPassphrase, got %v", err)
	}
}

func TestDisconnect(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	if _, err := svc.Connect(ctx, pass, false); err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := svc.Disconnect(); err != nil {
		t.Fatalf("disconnect: %v", err)
	}

	_, ok, err := svc.Session(pass)
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	if ok {
		t.Fatal("session should be gone after disconnect")
	}
	// Disconnecting while disconnected is fine.
	if err := svc.Disconnect(); err != nil {
		t.Fatalf("second disconnect: %v", err)
	}
}

func TestSession_WrongPassphrase(t *testing.T) {
	svc, _, _ := newService(t)

	if _, err := svc.Connect(context.Background(), pass, false); err != nil {
		t.Fatalf("connect: %v", err)
	}
	if _, _, err := svc.Session("totally different"); !errors.Is(err, crypto.ErrWrongPassphrase) {
		t.Fatalf("want ErrWrongPassphrase, got %v", err)
	}
}

func TestBalance(t *testing.T) {
	svc, _, chainView := newService(t)
	ctx := context.Background()

	session, err := svc.Connect(ctx, pass, false)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	chainView.balances[session.SmartWallet] = 3 * domain.LamportsPerSOL

	got, err := svc.Balance(ctx, pass)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if got != 3*domain.LamportsPerSOL {
		t.Errorf("balance: got %d", got)
	}
}
