package types

import "github.com/gagliardetto/solana-go"

// TransferRequest is a value transfer as collected from the user: who gets
// how much, and how the network fee should be covered.
type TransferRequest struct {
	Recipient solana.PublicKey `json:"recipient"`
	Amount    Lamports         `json:"amount"`
	FeeMode   FeeMode          `json:"fee_mode"`
	FeeToken  string           `json:"fee_token,omitempty"`
	Memo      string           `json:"memo,omitempty"`
}

// TransferReceipt is what the user sees after a successful submission.
type TransferReceipt struct {
	Signature     solana.Signature `json:"signature"`
	Sender        solana.PublicKey `json:"sender"`
	Recipient     solana.PublicKey `json:"recipient"`
	Amount        Lamports         `json:"amount"`
	FeeMode       FeeMode          `json:"fee_mode"`
	FeeToken      string           `json:"fee_token,omitempty"`
	ExplorerURL   string           `json:"explorer_url"`
	SubmittedUnix int64            `json:"submitted_unix"`
}

// TransferRecord is one row of local submission history.
type TransferRecord struct {
	ID          int64            `json:"id"`
	Signature   solana.Signature `json:"signature"`
	Sender      solana.PublicKey `json:"sender"`
	Recipient   solana.PublicKey `json:"recipient"`
	Amount      Lamports         `json:"amount"`
	FeeMode     FeeMode          `json:"fee_mode"`
	FeeToken    string           `json:"fee_token,omitempty"`
	Memo        string           `json:"memo,omitempty"`
	Status      TransferStatus   `json:"status"`
	CreatedUnix int64            `json:"created_unix"`
	UpdatedUnix int64            `json:"updated_unix"`
}
