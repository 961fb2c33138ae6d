package aggregate

import (
	"github.com/shopspring/decimal"

	"github.com/kunalgarg/bahi/internal/clock"
	"github.com/kunalgarg/bahi/internal/common"
	"github.com/kunalgarg/bahi/internal/model"
)

// Period selects the dashboard's reporting window.
type Period string

// Supported dashboard periods.
const (
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// Window resolves the period to an inclusive calendar-day range ending
// today: the current day, the last 7 days, or the last 30 days.
func (p Period) Window(c *clock.Clock) (from, to string, err error) {
	now := c.Now()
	to = c.Format(now, clock.Day)
	switch p {
	case PeriodToday:
		from = to
	case PeriodWeek:
		from = c.Format(now.AddDate(0, 0, -6), clock.Day)
	case PeriodMonth:
		from = c.Format(now.AddDate(0, 0, -29), clock.Day)
	default:
		return "", "", common.NewValidationError("period must be today, week, or month", "period")
	}
	return from, to, nil
}

// DashboardSummary is the reshaped data behind the sales dashboard: one
// label and total pair per day in the window, plus overall statistics.
type DashboardSummary struct {
	Labels        []string
	SaleTotals    []decimal.Decimal
	ProfitTotals  []decimal.Decimal
	AverageSale   decimal.Decimal
	AverageProfit decimal.Decimal
	HighestSale   decimal.Decimal
	HighestProfit decimal.Decimal
}

// BuildDashboard narrows sales to the period's window, buckets them per day,
// and computes the summary statistics. Zero sales yields zero statistics.
func BuildDashboard(sales []model.Sale, period Period, c *clock.Clock) (DashboardSummary, error) {
	from, to, err := period.Window(c)
	if err != nil {
		return DashboardSummary{}, err
	}

	window := FilterByDateWindow(sales, saleTimestamp, from, to)
	buckets := GroupByDate(window, saleTimestamp)

	out := DashboardSummary{}
	for _, b := range buckets {
		var saleTotal, profitTotal decimal.Decimal
		for _, s := range b.Entries {
			saleTotal = saleTotal.Add(s.TotalPrice)
			profitTotal = profitTotal.Add(s.Profit)
		}
		out.Labels = append(out.Labels, b.Date)
		out.SaleTotals = append(out.SaleTotals, saleTotal)
		out.ProfitTotals = append(out.ProfitTotals, profitTotal)
	}

	stats := Summarize(window, map[string]func(model.Sale) decimal.Decimal{
		"sale":   func(s model.Sale) decimal.Decimal { return s.TotalPrice },
		"profit": func(s model.Sale) decimal.Decimal { return s.Profit },
	})
	out.AverageSale = stats["sale"].Average
	out.HighestSale = stats["sale"].Max
	out.AverageProfit = stats["profit"].Average
	out.HighestProfit = stats["profit"].Max
	return out, nil
}

func saleTimestamp(s model.Sale) string { return s.SaleDateTime }
