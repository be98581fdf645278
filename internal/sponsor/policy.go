package sponsor

import (
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"os"

	"github.com/gagliardetto/solana-go"
	"gopkg.in/yaml.v3"

	"github.com/MasteraSnackin/lazorkit-passkey-demo/internal/domain"
)

// TokenPrice is one SPL token the sponsor accepts as fee payment, with a
// fixed dev-server exchange rate.
type TokenPrice struct {
	Mint     string `yaml:"mint"`
	Symbol   string `yaml:"symbol"`
	Decimals uint8  `yaml:"decimals"`
	// PerSignature is the token amount (base units) charged per signature
	// the sponsor pays for.
	PerSignature uint64 `yaml:"per_signature"`
}

// Policy is the sponsorship rule set, loaded from YAML and hot-reloadable.
// Zero caps mean unlimited.
type Policy struct {
	Active                 bool         `yaml:"active"`
	MaxLamportsPerTransfer uint64       `yaml:"max_lamports_per_transfer"`
	TotalBudgetLamports    uint64       `yaml:"total_budget_lamports"`
	AllowedPrograms        []string     `yaml:"allowed_programs"`
	BlockedDestinations    []string     `yaml:"blocked_destinations"`
	FeeTokens              []TokenPrice `yaml:"fee_tokens"`
	APIKeys                []string     `yaml:"api_keys"`
}

// DefaultPolicy sponsors system transfers and memos up to 1 SOL each with no
// total budget, accepting no fee tokens and requiring no API key.
func DefaultPolicy() Policy {
	return Policy{
		Active:                 true,
		MaxLamportsPerTransfer: uint64(domain.LamportsPerSOL),
		AllowedPrograms: []string{
			solana.SystemProgramID.String(),
			solana.MemoProgramID.String(),
		},
	}
}

// LoadPolicy reads and validates a policy file.
func LoadPolicy(path string) (Policy, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("policy file: %w", err)
	}
	var p Policy
	if err := yaml.Unmarshal(b, &p); err != nil {
		return Policy{}, fmt.Errorf("policy file %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return Policy{}, fmt.Errorf("policy file %s: %w", path, err)
	}
	return p, nil
}

// Validate rejects addresses that do not parse.
func (p Policy) Validate() error {
	for _, prog := range p.AllowedPrograms {
		if _, err := solana.PublicKeyFromBase58(prog); err != nil {
			return fmt.Errorf("allowed program %q: %w", prog, err)
		}
	}
	for _, dest := range p.BlockedDestinations {
		if _, err := solana.PublicKeyFromBase58(dest); err != nil {
			return fmt.Errorf("blocked destination %q: %w", dest, err)
		}
	}
	for _, tok := range p.FeeTokens {
		if _, err := solana.PublicKeyFromBase58(tok.Mint); err != nil {
			return fmt.Errorf("fee token mint %q: %w", tok.Mint, err)
		}
		if tok.Symbol == "" {
			return fmt.Errorf("fee token %s: symbol required", tok.Mint)
		}
	}
	return nil
}

// Rules converts the policy into the shape advertised to clients.
func (p Policy) Rules() domain.ValidationRules {
	tokens := make([]string, 0, len(p.FeeTokens))
	for _, tok := range p.FeeTokens {
		tokens = append(tokens, tok.Mint)
	}
	return domain.ValidationRules{
		MaxLamportsPerTransfer: domain.Lamports(p.MaxLamportsPerTransfer),
		AllowedPrograms:        append([]string(nil), p.AllowedPrograms...),
		AllowedTokens:          tokens,
	}
}

// AcceptsKey reports whether key satisfies the policy's API key list. An
// empty list means no key is required. Comparison runs over digests in
// constant time.
func (p Policy) AcceptsKey(key string) bool {
	if len(p.APIKeys) == 0 {
		return true
	}
	presented := sha256.Sum256([]byte(key))
	ok := false
	for _, k := range p.APIKeys {
		stored := sha256.Sum256([]byte(k))
		if subtle.ConstantTimeCompare(presented[:], stored[:]) == 1 {
			ok = true
		}
	}
	return ok
}
