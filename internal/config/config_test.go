package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MasteraSnackin/lazorkit-passkey-demo/internal/config"
)

var envKeys = []string{
	"LAZORKIT_HOME",
	"LAZORKIT_RPC_URL",
	"LAZORKIT_PORTAL_URL",
	"LAZORKIT_PAYMASTER_URL",
	"LAZORKIT_COMMITMENT",
	"LAZORKIT_PAYMASTER_API_KEY",
}

// clearEnv unsets every LAZORKIT_* variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.RPCURL != config.DefaultRPCURL {
		t.Errorf("rpc url: got %q, want %q", cfg.RPCURL, config.DefaultRPCURL)
	}
	if cfg.PortalURL != config.DefaultPortalURL {
		t.Errorf("portal url: got %q, want %q", cfg.PortalURL, config.DefaultPortalURL)
	}
	if cfg.PaymasterURL != config.DefaultPaymasterURL {
		t.Errorf("paymaster url: got %q, want %q", cfg.PaymasterURL, config.DefaultPaymasterURL)
	}
	if cfg.Commitment != "confirmed" {
		t.Errorf("commitment: got %q, want confirmed", cfg.Commitment)
	}
	if cfg.HTTPTimeout() != 30*time.Second {
		t.Errorf("timeout: got %v, want 30s", cfg.HTTPTimeout())
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	clearEnv(t)

	home := t.TempDir()
	file := "rpc_url: http://localhost:8899\ncommitment: finalized\nhttp_timeout_seconds: 5\n"
	if err := os.WriteFile(filepath.Join(home, "config.yaml"), []byte(file), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.Load(home)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.RPCURL != "http://localhost:8899" {
		t.Errorf("rpc url: got %q, want file value", cfg.RPCURL)
	}
	if cfg.Commitment != "finalized" {
		t.Errorf("commitment: got %q, want finalized", cfg.Commitment)
	}
	if cfg.HTTPTimeout() != 5*time.Second {
		t.Errorf("timeout: got %v, want 5s", cfg.HTTPTimeout())
	}
	// Keys the file does not mention keep their defaults.
	if cfg.PortalURL != config.DefaultPortalURL {
		t.Errorf("portal url: got %q, want default", cfg.PortalURL)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnv(t)

	home := t.TempDir()
	file := "rpc_url: http://from-file:8899\nportal_url: http://file-portal:9000\n"
	if err := os.WriteFile(filepath.Join(home, "config.yaml"), []byte(file), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("LAZORKIT_RPC_URL", "http://from-env:8899")

	cfg, err := config.Load(home)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.RPCURL != "http://from-env:8899" {
		t.Errorf("rpc url: got %q, want env value", cfg.RPCURL)
	}
	if cfg.PortalURL != "http://file-portal:9000" {
		t.Errorf("portal url: got %q, want file value", cfg.PortalURL)
	}
}

func TestLoadRejectsBadEndpoint(t *testing.T) {
	clearEnv(t)
	t.Setenv("LAZORKIT_RPC_URL", "not-a-url")

	if _, err := config.Load(t.TempDir()); err == nil {
		t.Fatal("expected error for malformed rpc url")
	}
}

func TestLoadRejectsUnknownCommitment(t *testing.T) {
	clearEnv(t)
	t.Setenv("LAZORKIT_COMMITMENT", "eventually")

	if _, err := config.Load(t.TempDir()); err == nil {
		t.Fatal("expected error for unknown commitment level")
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	clearEnv(t)

	home := t.TempDir()
	if err := os.WriteFile(filepath.Join(home, "config.yaml"), []byte("rpc_url: [oops"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := config.Load(home); err == nil {
		t.Fatal("expected error for malformed config file")
	}
}
