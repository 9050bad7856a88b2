package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"iter"
	"strconv"

	"github.com/sheikh-saqib/transaction-event-ledger/internal/models"
)

var header = []string{"client", "available", "held", "total", "locked"}

// Encoder writes client summaries as CSV, rounding balances to a fixed
// number of decimal places.
type Encoder struct {
	w         *csv.Writer
	precision int32
	started   bool
}

// NewEncoder returns an Encoder writing to w.
func NewEncoder(w io.Writer, precision int32) *Encoder {
	return &Encoder{w: csv.NewWriter(w), precision: precision}
}

// Write appends one summary row, emitting the header first if needed.
func (e *Encoder) Write(s models.ClientSummary) error {
	if !e.started {
		if err := e.w.Write(header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
		e.started = true
	}

	s = s.Rounded(e.precision)

	return e.w.Write([]string{
		strconv.FormatUint(uint64(s.ID), 10),
		s.Available.String(),
		s.Held.String(),
		s.Total.String(),
		strconv.FormatBool(s.Frozen),
	})
}

// Flush writes any buffered rows. A header is written even when no rows were.
func (e *Encoder) Flush() error {
	if !e.started {
		if err := e.w.Write(header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
		e.started = true
	}

	e.w.Flush()
	return e.w.Error()
}

// WriteAll writes every summary in seq and flushes. It returns the number
// of rows written.
func WriteAll(w io.Writer, precision int32, seq iter.Seq[models.ClientSummary]) (int, error) {
	enc := NewEncoder(w, precision)

	n := 0
	for s := range seq {
		if err := enc.Write(s); err != nil {
			return n, err
		}
		n++
	}

	return n, enc.Flush()
}
