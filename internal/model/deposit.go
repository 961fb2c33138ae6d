package model

import "github.com/shopspring/decimal"

// Deposit is a client deposit entry. DepositDate carries the backend wire
// format; deposits are entered with minute precision.
type Deposit struct {
	DepositDate string          `json:"depositDate" validate:"required"`
	Note        string          `json:"note,omitempty"`
	ClientName  string          `json:"clientName,omitempty"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	ID          int64           `json:"id"`
	ClientID    int64           `json:"clientId" validate:"required,gt=0"`
}

// NewDeposit constructs a deposit entry.
func NewDeposit(clientID int64, depositDate string, amount decimal.Decimal, note string) Deposit {
	return Deposit{
		ClientID:    clientID,
		DepositDate: depositDate,
		Amount:      amount,
		Note:        note,
	}
}

// DepositDraft holds the editable fields of a deposit during an edit.
// Amount is a pointer so a cleared field is representable and rejected at
// commit time, not silently zeroed.
type DepositDraft struct {
	Amount *decimal.Decimal
	Note   string
}

// Draft snapshots the deposit's mutable fields.
func (d Deposit) Draft() DepositDraft {
	amount := d.Amount
	return DepositDraft{Amount: &amount, Note: d.Note}
}

// Apply copies committed draft values back onto the deposit.
func (d *Deposit) Apply(draft DepositDraft) {
	if draft.Amount != nil {
		d.Amount = *draft.Amount
	}
	d.Note = draft.Note
}
