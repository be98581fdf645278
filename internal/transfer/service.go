package transfer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"

	"github.com/MasteraSnackin/lazorkit-passkey-demo/internal/domain"
)

const explorerBase = "https://explorer.solana.com/tx/"

var (
	// ErrNoRecipient is returned when the request has no destination account.
	ErrNoRecipient = errors.New("recipient required")
	// ErrZeroAmount is returned for transfers of zero lamports.
	ErrZeroAmount = errors.New("amount must be positive")
	// ErrBadFeeMode is returned for fee modes the paymaster does not know.
	ErrBadFeeMode = errors.New("fee mode must be sponsored or token")
	// ErrFeeTokenRequired is returned when token mode is selected without a token.
	ErrFeeTokenRequired = errors.New("token fee mode requires a fee token")
	// ErrExceedsSponsorCap is returned when the amount is over the paymaster's
	// advertised per-transfer limit. The node would reject it anyway; failing
	// early saves a round trip with a signed transaction.
	ErrExceedsSponsorCap = errors.New("amount exceeds the paymaster's sponsored cap")
)

// Service submits value transfers through the paymaster and tracks them in
// local history. Transactions are built client-side, signed with the session
// device key, and handed to the paymaster for fee payment and broadcast.
type Service struct {
	sessions  domain.SessionStore
	history   domain.HistoryStore
	paymaster domain.PaymasterClient
	chain     domain.ChainClient
}

// New returns a transfer service over the given stores and clients.
func New(sessions domain.SessionStore, history domain.HistoryStore, paymaster domain.PaymasterClient, chain domain.ChainClient) *Service {
	return &Service{sessions: sessions, history: history, paymaster: paymaster, chain: chain}
}

// Submit sends req through the paymaster and records the submission. The
// returned receipt carries the signature and an explorer link; confirmation
// is not awaited.
func (s *Service) Submit(ctx context.Context, passphrase string, req domain.TransferRequest) (domain.TransferReceipt, error) {
	session, err := s.sessions.LoadSession(passphrase)
	if err != nil {
		return domain.TransferReceipt{}, err
	}
	if err := validate(req); err != nil {
		return domain.TransferReceipt{}, err
	}

	info, err := s.paymaster.Config(ctx)
	if err != nil {
		return domain.TransferReceipt{}, fmt.Errorf("paymaster config: %w", err)
	}
	if max := info.Rules.MaxLamportsPerTransfer; max > 0 && req.Amount > max {
		return domain.TransferReceipt{}, fmt.Errorf("%w (%s SOL allowed)", ErrExceedsSponsorCap, max.SOL())
	}

	recent, err := s.paymaster.Blockhash(ctx)
	if err != nil {
		return domain.TransferReceipt{}, fmt.Errorf("paymaster blockhash: %w", err)
	}

	tx, err := buildTransaction(session, req, info.FeePayer, recent.Blockhash)
	if err != nil {
		return domain.TransferReceipt{}, fmt.Errorf("build transaction: %w", err)
	}
	if _, err := tx.PartialSign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(session.DeviceKey.PublicKey()) {
			return &session.DeviceKey
		}
		return nil
	}); err != nil {
		return domain.TransferReceipt{}, fmt.Errorf("sign transaction: %w", err)
	}
	encoded, err := tx.ToBase64()
	if err != nil {
		return domain.TransferReceipt{}, fmt.Errorf("encode transaction: %w", err)
	}

	feeToken := ""
	if req.FeeMode == domain.FeeModeToken {
		feeToken = req.FeeToken
	}
	result, err := s.paymaster.SignAndSend(ctx, encoded, feeToken)
	if err != nil {
		return domain.TransferReceipt{}, fmt.Errorf("submit transaction: %w", err)
	}

	now := time.Now().Unix()
	rec := domain.TransferRecord{
		Signature:   result.Signature,
		Sender:      session.SmartWallet,
		Recipient:   req.Recipient,
		Amount:      req.Amount,
		FeeMode:     req.FeeMode,
		FeeToken:    feeToken,
		Memo:        req.Memo,
		Status:      domain.TransferPending,
		CreatedUnix: now,
		UpdatedUnix: now,
	}
	if _, err := s.history.Record(rec); err != nil {
		// The transfer is already on its way; keep the signature visible.
		return domain.TransferReceipt{}, fmt.Errorf("transfer sent as %s but recording history failed: %w", result.Signature, err)
	}

	return domain.TransferReceipt{
		Signature:     result.Signature,
		Sender:        session.SmartWallet,
		Recipient:     req.Recipient,
		Amount:        req.Amount,
		FeeMode:       req.FeeMode,
		FeeToken:      feeToken,
		ExplorerURL:   ExplorerURL(result.Signature),
		SubmittedUnix: now,
	}, nil
}

// Estimate prices req without submitting it. The transaction is built and
// device-signed exactly as Submit would, so the quote covers the real
// signature count.
func (s *Service) Estimate(ctx context.Context, passphrase string, req domain.TransferRequest) (domain.FeeEstimate, error) {
	session, err := s.sessions.LoadSession(passphrase)
	if err != nil {
		return domain.FeeEstimate{}, err
	}
	if err := validate(req); err != nil {
		return domain.FeeEstimate{}, err
	}

	info, err := s.paymaster.Config(ctx)
	if err != nil {
		return domain.FeeEstimate{}, fmt.Errorf("paymaster config: %w", err)
	}
	recent, err := s.paymaster.Blockhash(ctx)
	if err != nil {
		return domain.FeeEstimate{}, fmt.Errorf("paymaster blockhash: %w", err)
	}

	tx, err := buildTransaction(session, req, info.FeePayer, recent.Blockhash)
	if err != nil {
		return domain.FeeEstimate{}, fmt.Errorf("build transaction: %w", err)
	}
	if _, err := tx.PartialSign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(session.DeviceKey.PublicKey()) {
			return &session.DeviceKey
		}
		return nil
	}); err != nil {
		return domain.FeeEstimate{}, fmt.Errorf("sign transaction: %w", err)
	}
	encoded, err := tx.ToBase64()
	if err != nil {
		return domain.FeeEstimate{}, fmt.Errorf("encode transaction: %w", err)
	}

	feeToken := ""
	if req.FeeMode == domain.FeeModeToken {
		feeToken = req.FeeToken
	}
	estimate, err := s.paymaster.EstimateFee(ctx, encoded, feeToken)
	if err != nil {
		return domain.FeeEstimate{}, fmt.Errorf("estimate fee: %w", err)
	}
	return estimate, nil
}

// Status is a single-shot confirmation lookup for a signature.
func (s *Service) Status(ctx context.Context, sig solana.Signature) (domain.TransferStatus, error) {
	return s.chain.SignatureStatus(ctx, sig)
}

// History lists the most recent local submissions.
func (s *Service) History(limit int) ([]domain.TransferRecord, error) {
	return s.history.List(limit)
}

// RefreshHistory re-queries the status of pending submissions and returns
// how many rows changed.
func (s *Service) RefreshHistory(ctx context.Context) (int, error) {
	pending, err := s.history.Pending()
	if err != nil {
		return 0, err
	}
	changed := 0
	for _, rec := range pending {
		status, err := s.chain.SignatureStatus(ctx, rec.Signature)
		if err != nil {
			return changed, fmt.Errorf("status of %s: %w", rec.Signature, err)
		}
		if status == rec.Status {
			continue
		}
		if err := s.history.MarkStatus(rec.Signature, status); err != nil {
			return changed, err
		}
		changed++
	}
	return changed, nil
}

// ExplorerURL returns the devnet explorer link for a signature.
func ExplorerURL(sig solana.Signature) string {
	return explorerBase + sig.String() + "?cluster=devnet"
}

func validate(req domain.TransferRequest) error {
	if req.Recipient.IsZero() {
		return ErrNoRecipient
	}
	if req.Amount == 0 {
		return ErrZeroAmount
	}
	switch req.FeeMode {
	case domain.FeeModeSponsored:
	case domain.FeeModeToken:
		if req.FeeToken == "" {
			return ErrFeeTokenRequired
		}
	default:
		return ErrBadFeeMode
	}
	return nil
}

// buildTransaction assembles the unsigned transfer: a system transfer from
// the smart wallet, an optional memo, the paymaster in the fee-payer slot.
func buildTransaction(session domain.Session, req domain.TransferRequest, feePayer solana.PublicKey, blockhash solana.Hash) (*solana.Transaction, error) {
	instrs := []solana.Instruction{
		system.NewTransferInstruction(uint64(req.Amount), session.SmartWallet, req.Recipient).Build(),
	}
	if req.Memo != "" {
		instrs = append(instrs, memoInstruction{signer: session.SmartWallet, text: req.Memo})
	}
	return solana.NewTransaction(instrs, blockhash, solana.TransactionPayer(feePayer))
}

// memoInstruction attaches a human note to the transfer. The memo program
// takes the raw text as instruction data with the sender as signer.
type memoInstruction struct {
	signer solana.PublicKey
	text   string
}

func (m memoInstruction) ProgramID() solana.PublicKey { return solana.MemoProgramID }

func (m memoInstruction) Accounts() []*solana.AccountMeta {
	return []*solana.AccountMeta{solana.Meta(m.signer).SIGNER()}
}

func (m memoInstruction) Data() ([]byte, error) { return []byte(m.text), nil }

// Compile-time assertion that Service implements domain.TransferService.
var _ domain.TransferService = (*Service)(nil)
