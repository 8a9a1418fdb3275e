// Package invoicepkg derives sequential per-day invoice numbers.
//
// An invoice number looks like INV17082023-007: the INV prefix, the day as DDMMYYYY
// and a sequence that is at least three digits wide and restarts at 001 every day.
package invoicepkg

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	prefix     = "INV"
	dateLayout = "02012006"
	separator  = "-"
)

// ErrMalformedInvoiceNumber is returned when an invoice number cannot be parsed.
var ErrMalformedInvoiceNumber = errors.New("malformed invoice number")

// Format renders the invoice number of the seq-th invoice of day.
func Format(day time.Time, seq int) string {
	return fmt.Sprintf("%s%s%s%03d", prefix, day.Format(dateLayout), separator, seq)
}

// Parse splits number into its DDMMYYYY day and sequence.
func Parse(number string) (string, int, error) {
	i := strings.LastIndex(number, separator)
	if i < 0 || !strings.HasPrefix(number, prefix) {
		return "", 0, ErrMalformedInvoiceNumber
	}

	day := number[len(prefix):i]
	if _, err := time.Parse(dateLayout, day); err != nil {
		return "", 0, ErrMalformedInvoiceNumber
	}

	seq, err := strconv.Atoi(number[i+1:])
	if err != nil || seq < 1 {
		return "", 0, ErrMalformedInvoiceNumber
	}

	return day, seq, nil
}

// NextChecked returns the invoice number following last on today.
//
// An empty last or one issued on another day starts the sequence at 001.
func NextChecked(last string, today time.Time) (string, error) {
	if last == "" {
		return Format(today, 1), nil
	}

	day, seq, err := Parse(last)
	if err != nil {
		return "", err
	}

	if day != today.Format(dateLayout) {
		return Format(today, 1), nil
	}

	return Format(today, seq+1), nil
}

// Next is NextChecked that restarts the sequence when last is malformed.
func Next(last string, today time.Time) string {
	next, err := NextChecked(last, today)
	if err != nil {
		return Format(today, 1)
	}

	return next
}
