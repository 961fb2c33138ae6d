// Package aggregate reshapes flat lists of time-stamped ledger records into
// the grouped and summarized forms the views display.
package aggregate

import (
	"github.com/shopspring/decimal"

	"github.com/kunalgarg/bahi/internal/clock"
)

// Bucket is the set of records sharing one calendar date, in source order.
type Bucket[T any] struct {
	Date    string
	Entries []T
}

// GroupByDate partitions records into date buckets keyed by the calendar day
// of each record's timestamp. Bucket order follows first appearance in the
// input; entries keep source order. The input is not sorted: the source
// list's order is the display order.
func GroupByDate[T any](records []T, timestamp func(T) string) []Bucket[T] {
	var buckets []Bucket[T]
	index := make(map[string]int)

	for _, rec := range records {
		date := clock.BucketDate(timestamp(rec))
		i, ok := index[date]
		if !ok {
			i = len(buckets)
			index[date] = i
			buckets = append(buckets, Bucket[T]{Date: date})
		}
		buckets[i].Entries = append(buckets[i].Entries, rec)
	}
	return buckets
}

// FilterByClient narrows records to one client. A nil id means all clients
// and is an identity pass-through. Order is preserved.
func FilterByClient[T any](records []T, clientID func(T) int64, id *int64) []T {
	if id == nil {
		return records
	}
	var out []T
	for _, rec := range records {
		if clientID(rec) == *id {
			out = append(out, rec)
		}
	}
	return out
}

// FilterByDateWindow keeps records whose bucket date falls inside the
// inclusive [from, to] window. Either bound may be empty, leaving that side
// unbounded. Bounds are calendar days in wire format, so plain string
// comparison is ordering-correct.
func FilterByDateWindow[T any](records []T, timestamp func(T) string, from, to string) []T {
	if from == "" && to == "" {
		return records
	}
	var out []T
	for _, rec := range records {
		date := clock.BucketDate(timestamp(rec))
		if from != "" && date < from {
			continue
		}
		if to != "" && date > to {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// Summary holds the aggregate statistics for one selected metric.
type Summary struct {
	Average decimal.Decimal
	Max     decimal.Decimal
	Sum     decimal.Decimal
	Count   int
}

// Summarize computes per-selector statistics over the records. Zero records
// is not an error: every summary field is zero.
func Summarize[T any](records []T, selectors map[string]func(T) decimal.Decimal) map[string]Summary {
	out := make(map[string]Summary, len(selectors))
	for name, metric := range selectors {
		var s Summary
		for _, rec := range records {
			v := metric(rec)
			s.Sum = s.Sum.Add(v)
			if s.Count == 0 || v.GreaterThan(s.Max) {
				s.Max = v
			}
			s.Count++
		}
		if s.Count > 0 {
			s.Average = s.Sum.Div(decimal.NewFromInt(int64(s.Count)))
		}
		out[name] = s
	}
	return out
}
