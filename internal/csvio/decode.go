// Package csvio converts between the CSV files handled by the CLI and the
// ledger's typed events and client summaries.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sheikh-saqib/transaction-event-ledger/internal/models"
	"github.com/shopspring/decimal"
)

var requiredColumns = []string{"type", "client", "tx"}

// Decoder reads transaction events from CSV with a header row naming the
// columns type, client, tx and (optionally) amount. Fields are trimmed, and
// rows may omit the trailing amount column.
type Decoder struct {
	r    *csv.Reader
	cols map[string]int
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	return &Decoder{r: cr}
}

func (d *Decoder) readHeader() error {
	header, err := d.r.Read()
	if errors.Is(err, io.EOF) {
		return &models.DecodeError{Line: 1, Err: errors.New("missing header row")}
	}
	if err != nil {
		return &models.DecodeError{Line: 1, Err: err}
	}

	d.cols = make(map[string]int, len(header))
	for i, name := range header {
		d.cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for _, name := range requiredColumns {
		if _, ok := d.cols[name]; !ok {
			return &models.DecodeError{Line: 1, Err: fmt.Errorf("missing %q column", name)}
		}
	}
	return nil
}

func (d *Decoder) field(row []string, name string) string {
	i, ok := d.cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// Next returns the next event, or io.EOF once the input is exhausted. Any
// other error is a *models.DecodeError and the Decoder should not be used
// afterwards.
func (d *Decoder) Next() (models.Event, error) {
	if d.cols == nil {
		if err := d.readHeader(); err != nil {
			return nil, err
		}
	}

	row, err := d.r.Read()
	if errors.Is(err, io.EOF) {
		return nil, io.EOF
	}
	if err != nil {
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return nil, &models.DecodeError{Line: perr.Line, Err: err}
		}
		return nil, err
	}

	line, _ := d.r.FieldPos(0)

	rec, err := d.record(row)
	if err != nil {
		return nil, &models.DecodeError{Line: line, Err: err}
	}

	ev, err := rec.ToEvent()
	if err != nil {
		var derr *models.DecodeError
		if errors.As(err, &derr) {
			derr.Line = line
		}
		return nil, err
	}
	return ev, nil
}

func (d *Decoder) record(row []string) (models.Record, error) {
	client, err := strconv.ParseUint(d.field(row, "client"), 10, 16)
	if err != nil {
		return models.Record{}, fmt.Errorf("invalid client: %w", err)
	}

	tx, err := strconv.ParseUint(d.field(row, "tx"), 10, 32)
	if err != nil {
		return models.Record{}, fmt.Errorf("invalid tx: %w", err)
	}

	rec := models.Record{
		Type:   d.field(row, "type"),
		Client: models.ClientID(client),
		Tx:     models.TransactionID(tx),
	}

	if raw := d.field(row, "amount"); raw != "" {
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return models.Record{}, fmt.Errorf("invalid amount %q: %w", raw, err)
		}
		rec.Amount = &amount
	}

	return rec, nil
}
