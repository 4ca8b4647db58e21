package feed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/payments/engine"
	"github.com/rustyeddy/payments/ledger"
)

// CSVSource reads transactions from CSV input with a
// "type,client,tx,amount" header. Columns are resolved by name, so column
// order does not matter, and whitespace around fields is ignored. The amount
// column may be absent entirely if the stream carries no deposits or
// withdrawals.
type CSVSource struct {
	r         *csv.Reader
	cols      map[string]int
	record    int
	exhausted bool
	err       error // sticky source failure
}

// NewCSV wraps r as a transaction source. It reads the header row eagerly;
// a missing required column is a schema problem and fails here, not per row.
func NewCSV(r io.Reader) (*CSVSource, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return &CSVSource{exhausted: true}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"type", "client", "tx"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("input header is missing column %q", required)
		}
	}

	return &CSVSource{r: cr, cols: cols}, nil
}

// Next returns the next transaction. Unparseable rows come back as
// *MalformedError and do not stop the stream; a read failure of the
// underlying source does, and repeats on every later call.
func (s *CSVSource) Next() (engine.Transaction, error) {
	if s.err != nil {
		return engine.Transaction{}, s.err
	}
	if s.exhausted {
		return engine.Transaction{}, io.EOF
	}

	row, err := s.r.Read()
	if errors.Is(err, io.EOF) {
		s.exhausted = true
		return engine.Transaction{}, io.EOF
	}
	s.record++
	if err != nil {
		// Only CSV syntax problems are recoverable row errors. Anything else
		// is the source itself failing and must abort the stream.
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return engine.Transaction{}, &MalformedError{Record: s.record, Cause: err}
		}
		s.err = err
		return engine.Transaction{}, err
	}

	tx, err := s.parse(row)
	if err != nil {
		return engine.Transaction{}, &MalformedError{Record: s.record, Cause: err}
	}
	return tx, nil
}

func (s *CSVSource) field(row []string, name string) (string, bool) {
	i, ok := s.cols[name]
	if !ok || i >= len(row) {
		return "", false
	}
	return strings.TrimSpace(row[i]), true
}

func (s *CSVSource) parse(row []string) (engine.Transaction, error) {
	var tx engine.Transaction

	typeField, ok := s.field(row, "type")
	if !ok {
		return tx, fmt.Errorf("missing type field")
	}
	kind, err := engine.ParseKind(typeField)
	if err != nil {
		return tx, err
	}
	tx.Kind = kind

	clientField, ok := s.field(row, "client")
	if !ok {
		return tx, fmt.Errorf("missing client field")
	}
	client, err := strconv.ParseUint(clientField, 10, 16)
	if err != nil {
		return tx, fmt.Errorf("client %q: %w", clientField, err)
	}
	tx.Client = ledger.ClientID(client)

	txField, ok := s.field(row, "tx")
	if !ok {
		return tx, fmt.Errorf("missing tx field")
	}
	txID, err := strconv.ParseUint(txField, 10, 32)
	if err != nil {
		return tx, fmt.Errorf("tx %q: %w", txField, err)
	}
	tx.Tx = engine.TxID(txID)

	// Amounts on dispute/resolve/chargeback rows are ignored; those records
	// take their amount from the deposit they reference.
	if !kind.HasAmount() {
		return tx, nil
	}

	amountField, ok := s.field(row, "amount")
	if !ok || amountField == "" {
		return tx, fmt.Errorf("%s requires an amount", kind)
	}
	amount, err := decimal.NewFromString(amountField)
	if err != nil {
		return tx, fmt.Errorf("amount %q: %w", amountField, err)
	}
	tx.Amount = amount

	return tx, nil
}
