package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/kunalgarg/bahi/internal/common"
)

// SaleInput carries a new sale or return entry as the user typed it.
// SaleDateTime is optional; an empty value means "now".
type SaleInput struct {
	AccessoryName string `validate:"required"`
	SaleDateTime  string
	Note          string
	TotalPrice    decimal.Decimal `validate:"required,gt=0"`
	Profit        decimal.Decimal
	ClientID      int64 `validate:"required,gt=0"`
	Quantity      int   `validate:"gte=0"`
	ReturnFlag    bool
}

// DepositInput carries a new deposit entry. DepositDate is optional; an
// empty value means "now" at minute precision.
type DepositInput struct {
	DepositDate string
	Note        string
	Amount      decimal.Decimal `validate:"required,gt=0"`
	ClientID    int64           `validate:"required,gt=0"`
}

// ClientInput carries a new or renamed directory entry.
type ClientInput struct {
	Name string `validate:"required"`
}

// newValidator builds the shared struct validator. Decimal fields are
// validated through their float value so the numeric tags (gt, gte) apply.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// asValidationError converts validator failures into the core's
// ValidationError, naming every offending field.
func asValidationError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return common.NewValidationError(err.Error())
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, lowerFirst(fe.Field()))
	}
	return common.NewValidationError("missing or invalid fields", fields...)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
