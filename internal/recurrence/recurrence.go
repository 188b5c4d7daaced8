// Package recurrence holds the rules for expanding a recurring ledger entry
// into monthly installments.
package recurrence

import (
	"fmt"
	"strings"
	"time"
)

const (
	// MaxInstallments caps every series. It is also the length used for the
	// "unbounded" sentinel.
	MaxInstallments = 60

	// Unbounded is the installment count a client sends for an open-ended series.
	Unbounded = 0
)

// Installment is one occurrence of a series.
type Installment struct {
	Number int // 1-based
	Total  int
	Date   time.Time
	Notes  string
}

// IsSeries reports whether a submission expands into a grouped series.
// A recurring entry with exactly one installment is a plain entry.
func IsSeries(recurring bool, installments int) bool {
	return recurring && installments != 1
}

// Count resolves the requested installment count into the number of rows to
// create. Zero means unbounded and yields MaxInstallments; larger requests
// are clamped to MaxInstallments.
func Count(installments int) (int, error) {
	switch {
	case installments < 0:
		return 0, fmt.Errorf("installment count must not be negative, got %d", installments)
	case installments == Unbounded, installments > MaxInstallments:
		return MaxInstallments, nil
	default:
		return installments, nil
	}
}

// AddMonths returns base advanced by n calendar months. When the target month
// is shorter than base's day, the result is clamped to that month's last day
// (Jan 31 + 1 month = Feb 28/29), unlike time.AddDate which overflows into
// the following month.
func AddMonths(base time.Time, n int) time.Time {
	y, m, d := base.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, base.Location())
	if last := daysIn(first.Year(), first.Month(), base.Location()); d > last {
		d = last
	}
	hh, mm, ss := base.Clock()
	return time.Date(first.Year(), first.Month(), d, hh, mm, ss, base.Nanosecond(), base.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// NoteSuffix formats the installment marker appended to each row's notes.
func NoteSuffix(number, total int) string {
	return fmt.Sprintf("(Parcela %d de %d)", number, total)
}

// WithSuffix appends the installment marker to notes, separated by a space
// when notes is not empty.
func WithSuffix(notes string, number, total int) string {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return NoteSuffix(number, total)
	}
	return notes + " " + NoteSuffix(number, total)
}

// Expand builds the n installments of a series starting at base. Every date is
// computed from base directly so month-length clamping never accumulates.
// Notes are suffixed only when the series has more than one installment.
func Expand(base time.Time, notes string, n int) []Installment {
	out := make([]Installment, 0, n)
	for i := 0; i < n; i++ {
		inst := Installment{
			Number: i + 1,
			Total:  n,
			Date:   AddMonths(base, i),
			Notes:  notes,
		}
		if n > 1 {
			inst.Notes = WithSuffix(notes, i+1, n)
		}
		out = append(out, inst)
	}
	return out
}
