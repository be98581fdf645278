package sponsor

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"

	"github.com/MasteraSnackin/lazorkit-passkey-demo/internal/domain"
)

// FeePerSignature is the cluster base fee in lamports.
const FeePerSignature = 5000

var (
	ErrNotActive              = errors.New("sponsor is not active")
	ErrWrongFeePayer          = errors.New("fee payer slot does not match sponsor account")
	ErrProgramNotAllowed      = errors.New("program not in sponsor allowlist")
	ErrUnsupportedInstruction = errors.New("only system transfers and memos are sponsored")
	ErrDestinationBlocked     = errors.New("destination is blocked by sponsor policy")
	ErrOverTransferCap        = errors.New("transfer exceeds sponsor per-transfer cap")
	ErrBudgetExhausted        = errors.New("sponsor budget exhausted")
	ErrTokenNotAccepted       = errors.New("fee token not accepted")
)

// Decision is the outcome of evaluating one transaction: what it moves and
// what sponsoring it will cost.
type Decision struct {
	Lamports    domain.Lamports
	FeeLamports domain.Lamports
	Signatures  int
}

// Engine enforces the sponsorship policy and keeps the sponsorship ledger.
// Policy swaps take effect atomically; accounting survives them.
type Engine struct {
	mu     sync.RWMutex
	policy Policy
	payer  solana.PrivateKey

	totalSponsored domain.Lamports
	opCount        uint64
	sponsored      map[solana.Signature]domain.Lamports
}

// NewEngine returns an Engine enforcing policy with the given fee payer key.
func NewEngine(policy Policy, payer solana.PrivateKey) *Engine {
	return &Engine{
		policy:    policy,
		payer:     payer,
		sponsored: make(map[solana.Signature]domain.Lamports),
	}
}

// FeePayer returns the account the engine signs fees with.
func (e *Engine) FeePayer() solana.PublicKey { return e.payer.PublicKey() }

// Policy returns the current policy.
func (e *Engine) Policy() Policy {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.policy
}

// SetPolicy swaps the active policy.
func (e *Engine) SetPolicy(p Policy) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.policy = p
}

// SetActive enables or disables sponsorship without touching the rest of the
// policy.
func (e *Engine) SetActive(active bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.policy.Active = active
}

// Evaluate checks tx against the policy and prices its sponsorship. The
// transaction is not modified.
func (e *Engine) Evaluate(tx *solana.Transaction) (Decision, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if !e.policy.Active {
		return Decision{}, ErrNotActive
	}

	msg := &tx.Message
	if len(msg.AccountKeys) == 0 || !msg.AccountKeys[0].Equals(e.payer.PublicKey()) {
		return Decision{}, ErrWrongFeePayer
	}

	signatures := int(msg.Header.NumRequiredSignatures)
	fee := domain.Lamports(FeePerSignature * signatures)

	var moved domain.Lamports
	for _, ci := range msg.Instructions {
		program, err := msg.Program(ci.ProgramIDIndex)
		if err != nil {
			return Decision{}, fmt.Errorf("resolve program: %w", err)
		}
		if !e.programAllowed(program) {
			return Decision{}, fmt.Errorf("%w: %s", ErrProgramNotAllowed, program)
		}
		if !program.Equals(solana.SystemProgramID) {
			continue
		}

		lamports, destination, err := decodeTransfer(msg, ci)
		if err != nil {
			return Decision{}, err
		}
		if e.destinationBlocked(destination) {
			return Decision{}, fmt.Errorf("%w: %s", ErrDestinationBlocked, destination)
		}
		moved += lamports
	}

	if limit := domain.Lamports(e.policy.MaxLamportsPerTransfer); limit > 0 && moved > limit {
		return Decision{}, fmt.Errorf("%w: %s > %s SOL", ErrOverTransferCap, moved.SOL(), limit.SOL())
	}
	if budget := domain.Lamports(e.policy.TotalBudgetLamports); budget > 0 && e.totalSponsored+fee > budget {
		return Decision{}, ErrBudgetExhausted
	}

	return Decision{Lamports: moved, FeeLamports: fee, Signatures: signatures}, nil
}

// Sign places the sponsor signature in the fee-payer slot.
func (e *Engine) Sign(tx *solana.Transaction) error {
	_, err := tx.PartialSign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(e.payer.PublicKey()) {
			return &e.payer
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("sponsor sign: %w", err)
	}
	return nil
}

// RecordSponsored adds one broadcast transaction to the ledger. Repeat
// signatures are counted once.
func (e *Engine) RecordSponsored(sig solana.Signature, fee domain.Lamports) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, seen := e.sponsored[sig]; seen {
		return
	}
	e.sponsored[sig] = fee
	e.totalSponsored += fee
	e.opCount++
}

// Stats returns the total lamports sponsored and the operation count.
func (e *Engine) Stats() (domain.Lamports, uint64) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.totalSponsored, e.opCount
}

// QuoteToken prices signatures in the named fee token (by symbol or mint).
func (e *Engine) QuoteToken(token string, signatures int) (uint64, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for _, tok := range e.policy.FeeTokens {
		if tok.Symbol == token || tok.Mint == token {
			return tok.PerSignature * uint64(signatures), nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrTokenNotAccepted, token)
}

func (e *Engine) programAllowed(program solana.PublicKey) bool {
	for _, allowed := range e.policy.AllowedPrograms {
		if allowed == program.String() {
			return true
		}
	}
	return false
}

func (e *Engine) destinationBlocked(destination solana.PublicKey) bool {
	for _, blocked := range e.policy.BlockedDestinations {
		if blocked == destination.String() {
			return true
		}
	}
	return false
}

// LoadPayerKey reads a fee-payer keypair in solana-keygen JSON format. With
// an empty path it generates an ephemeral key, which suits throwaway dev
// runs where the sponsor account is airdropped on first use.
func LoadPayerKey(path string) (solana.PrivateKey, error) {
	if path == "" {
		return solana.NewRandomPrivateKey()
	}
	key, err := solana.PrivateKeyFromSolanaKeygenFile(path)
	if err != nil {
		return nil, fmt.Errorf("payer key %s: %w", path, err)
	}
	return key, nil
}

// decodeTransfer extracts lamports and destination from a system-program
// instruction, rejecting anything that is not a plain transfer.
func decodeTransfer(msg *solana.Message, ci solana.CompiledInstruction) (domain.Lamports, solana.PublicKey, error) {
	metas := make([]*solana.AccountMeta, 0, len(ci.Accounts))
	for _, idx := range ci.Accounts {
		if int(idx) >= len(msg.AccountKeys) {
			return 0, solana.PublicKey{}, fmt.Errorf("account index %d out of range", idx)
		}
		metas = append(metas, solana.Meta(msg.AccountKeys[idx]))
	}
	decoded, err := system.DecodeInstruction(metas, ci.Data)
	if err != nil {
		return 0, solana.PublicKey{}, fmt.Errorf("%w: %v", ErrUnsupportedInstruction, err)
	}
	tr, ok := decoded.Impl.(*system.Transfer)
	if !ok {
		return 0, solana.PublicKey{}, ErrUnsupportedInstruction
	}
	return domain.Lamports(*tr.Lamports), tr.GetRecipientAccount().PublicKey, nil
}
