// Package filter validates and composes the user-chosen query constraints
// into the canonical parameter list sent to the backend.
package filter

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kunalgarg/bahi/internal/common"
)

const (
	dayFormat      = "2006-01-02"
	datetimeFormat = "2006-01-02 15:04:05"

	startOfDay = " 00:00:00"
	endOfDay   = " 23:59:59"
)

// Spec is the set of constraints a view may apply to a records query. A nil
// ClientID means all clients; that case is never transmitted as a literal
// token, the parameter is simply absent. FromDate/ToDate are calendar days
// ("2006-01-02") and are mutually exclusive with Days.
type Spec struct {
	ClientID        *int64
	FromDate        string
	ToDate          string
	DepositDatetime string
	DepositAmount   decimal.Decimal
	OldBalance      decimal.Decimal
	Days            int
}

// Param is one query-string key/value pair.
type Param struct {
	Key   string
	Value string
}

// Params is an ordered parameter list. Keys appear only when their value is
// present: omission, not null transmission, is the contract.
type Params []Param

// Get returns the value for key, if emitted.
func (p Params) Get(key string) (string, bool) {
	for _, kv := range p {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

// Encode renders the parameters as a query string, preserving order.
func (p Params) Encode() string {
	var b strings.Builder
	for i, kv := range p {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(kv.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(kv.Value))
	}
	return b.String()
}

// Validate checks the spec and produces normalized parameters.
//
// Exactly one of {complete date range, positive day count} may be active.
// Supplying both fails with an error naming the conflict. Supplying neither
// is a legal unbounded query. An active range is stamped to start-of-day and
// end-of-day before transmission. The deposit addenda are independent
// filters included only when strictly positive.
func (s Spec) Validate() (Params, error) {
	rangeActive, err := s.checkDateRange()
	if err != nil {
		return nil, err
	}

	if s.Days < 0 {
		return nil, common.NewValidationError("day count must be positive", "days")
	}
	if rangeActive && s.Days > 0 {
		return nil, common.NewValidationError(
			"use either the date range or the day count, not both", "from", "to", "days")
	}

	if s.DepositDatetime != "" {
		if _, err := time.Parse(datetimeFormat, s.DepositDatetime); err != nil {
			return nil, common.NewValidationError("deposit datetime must look like 2006-01-02 15:04:05", "depositDatetime")
		}
	}

	var params Params
	if s.ClientID != nil {
		params = append(params, Param{Key: "clientId", Value: strconv.FormatInt(*s.ClientID, 10)})
	}
	if rangeActive {
		params = append(params,
			Param{Key: "from", Value: s.FromDate + startOfDay},
			Param{Key: "to", Value: s.ToDate + endOfDay})
	}
	if s.Days > 0 {
		params = append(params, Param{Key: "days", Value: strconv.Itoa(s.Days)})
	}
	if s.DepositAmount.IsPositive() {
		params = append(params, Param{Key: "depositAmount", Value: s.DepositAmount.String()})
	}
	if s.DepositDatetime != "" {
		params = append(params, Param{Key: "depositDatetime", Value: s.DepositDatetime})
	}
	if s.OldBalance.IsPositive() {
		params = append(params, Param{Key: "oldBalance", Value: s.OldBalance.String()})
	}
	return params, nil
}

// checkDateRange reports whether a complete range is active, rejecting
// half-specified or malformed ranges.
func (s Spec) checkDateRange() (bool, error) {
	if s.FromDate == "" && s.ToDate == "" {
		return false, nil
	}
	if s.FromDate == "" || s.ToDate == "" {
		return false, common.NewValidationError("date range needs both ends", "from", "to")
	}

	from, err := time.Parse(dayFormat, s.FromDate)
	if err != nil {
		return false, common.NewValidationError("start date must look like 2006-01-02", "from")
	}
	to, err := time.Parse(dayFormat, s.ToDate)
	if err != nil {
		return false, common.NewValidationError("end date must look like 2006-01-02", "to")
	}
	if to.Before(from) {
		return false, common.NewValidationError("end date is before start date", "from", "to")
	}
	return true, nil
}
