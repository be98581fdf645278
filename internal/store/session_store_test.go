package store_test

import (
	"errors"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/MasteraSnackin/lazorkit-passkey-demo/internal/crypto"
	"github.com/MasteraSnackin/lazorkit-passkey-demo/internal/domain"
	"github.com/MasteraSnackin/lazorkit-passkey-demo/internal/store"
)

func newTestSession(t *testing.T) domain.Session {
	t.Helper()

	device, err := solana.NewRandomPrivateKey()
	if err != nil {
		t.Fatalf("device key: %v", err)
	}
	wallet, err := solana.NewRandomPrivateKey()
	if err != nil {
		t.Fatalf("wallet key: %v", err)
	}
	now := time.Now().Unix()
	return domain.Session{
		CredentialID: "cred-test-1",
		SmartWallet:  wallet.PublicKey(),
		DeviceKey:    device,
		PortalURL:    "http://localhost:4040",
		CreatedUnix:  now,
		LastUsedUnix: now,
	}
}

func TestSession_SaveLoad_OK(t *testing.T) {
	home := t.TempDir()
	pass := "pass"

	var sessions domain.SessionStore = store.NewSessionFileStore(home)
	want := newTestSession(t)

	if err := sessions.SaveSession(pass, want); err != nil {
		t.Fatalf("save session: %v", err)
	}

	got, err := sessions.LoadSession(pass)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if got.CredentialID != want.CredentialID {
		t.Errorf("credential: got %q, want %q", got.CredentialID, want.CredentialID)
	}
	if !got.SmartWallet.Equals(want.SmartWallet) {
		t.Errorf("smart wallet: got %s, want %s", got.SmartWallet, want.SmartWallet)
	}
	if got.DeviceKey.String() != want.DeviceKey.String() {
		t.Error("device key mismatch after load")
	}
	if !got.Connected() {
		t.Error("loaded session should report connected")
	}
}

func TestSession_WrongPassphrase_Fails(t *testing.T) {
	home := t.TempDir()
	sessions := store.NewSessionFileStore(home)

	if err := sessions.SaveSession("correct", newTestSession(t)); err != nil {
		t.Fatalf("save session: %v", err)
	}

	_, err := sessions.LoadSession("wrong")
	if err == nil {
		t.Fatal("expected error with wrong passphrase")
	}
	if !errors.Is(err, crypto.ErrWrongPassphrase) {
		t.Fatalf("want ErrWrongPassphrase, got %v", err)
	}
}

func TestSession_Lifecycle(t *testing.T) {
	home := t.TempDir()
	sessions := store.NewSessionFileStore(home)

	ok, err := sessions.HasSession()
	if err != nil {
		t.Fatalf("has session: %v", err)
	}
	if ok {
		t.Fatal("fresh store should have no session")
	}

	if _, err := sessions.LoadSession("pass"); !errors.Is(err, store.ErrNoSession) {
		t.Fatalf("want ErrNoSession, got %v", err)
	}

	if err := sessions.SaveSession("pass", newTestSession(t)); err != nil {
		t.Fatalf("save session: %v", err)
	}
	if ok, _ := sessions.HasSession(); !ok {
		t.Fatal("session should exist after save")
	}

	if err := sessions.ClearSession(); err != nil {
		t.Fatalf("clear session: %v", err)
	}
	if ok, _ := sessions.HasSession(); ok {
		t.Fatal("session should be gone after clear")
	}
	// Clearing twice is fine.
	if err := sessions.ClearSession(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}
