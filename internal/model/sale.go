package model

import "github.com/shopspring/decimal"

// Sale is a single sale or return entry tied to a client and a timestamp.
// SaleDateTime carries the backend wire format with second precision
// ("2006-01-02T15:04:05"); the clock package owns conversions.
type Sale struct {
	SaleDateTime  string          `json:"saleDateTime" validate:"required"`
	AccessoryName string          `json:"accessoryName" validate:"required"`
	Note          string          `json:"note,omitempty"`
	ClientName    string          `json:"clientName,omitempty"`
	TotalPrice    decimal.Decimal `json:"totalPrice" validate:"required"`
	Profit        decimal.Decimal `json:"profit"`
	ID            int64           `json:"id"`
	ClientID      int64           `json:"clientId" validate:"required,gt=0"`
	Quantity      int             `json:"quantity"`
	ReturnFlag    bool            `json:"returnFlag"`
}

// NewSale constructs a sale entry with defaults applied once, at
// construction: a missing quantity means a single unit.
func NewSale(clientID int64, accessory string, quantity int, totalPrice, profit decimal.Decimal, saleDateTime string, returnFlag bool) Sale {
	if quantity <= 0 {
		quantity = 1
	}
	return Sale{
		ClientID:      clientID,
		AccessoryName: accessory,
		Quantity:      quantity,
		TotalPrice:    totalPrice,
		Profit:        profit,
		SaleDateTime:  saleDateTime,
		ReturnFlag:    returnFlag,
	}
}

// SaleDraft holds the editable fields of a sale while an edit is in
// progress. TotalPrice is a pointer so a cleared amount is representable and
// rejected at commit time.
type SaleDraft struct {
	TotalPrice    *decimal.Decimal
	AccessoryName string
	Note          string
	SaleDateTime  string
	Profit        decimal.Decimal
	Quantity      int
	ReturnFlag    bool
}

// Draft snapshots the sale's mutable fields.
func (s Sale) Draft() SaleDraft {
	price := s.TotalPrice
	return SaleDraft{
		AccessoryName: s.AccessoryName,
		Note:          s.Note,
		SaleDateTime:  s.SaleDateTime,
		TotalPrice:    &price,
		Profit:        s.Profit,
		Quantity:      s.Quantity,
		ReturnFlag:    s.ReturnFlag,
	}
}

// Apply copies committed draft values back onto the sale.
func (s *Sale) Apply(d SaleDraft) {
	s.AccessoryName = d.AccessoryName
	s.Note = d.Note
	s.SaleDateTime = d.SaleDateTime
	if d.TotalPrice != nil {
		s.TotalPrice = *d.TotalPrice
	}
	s.Profit = d.Profit
	s.Quantity = d.Quantity
	s.ReturnFlag = d.ReturnFlag
}
