// Package csvio reads transaction records from and writes account balances
// to comma separated files.
package csvio

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/sheikh-saqib/payments-ledger-engine/internal/models"
)

// Column names recognised in the header row.
const (
	ColumnType   = "type"
	ColumnClient = "client"
	ColumnTx     = "tx"
	ColumnAmount = "amount"
)

// Reader is a record source over line oriented CSV input with a header row.
// Columns may appear in any order, surrounding whitespace is ignored and
// rows may omit trailing empty columns.
type Reader struct {
	r io.Reader
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

type columns struct {
	typ, client, tx, amount int
}

func parseHeader(row []string) (columns, error) {
	cols := columns{typ: -1, client: -1, tx: -1, amount: -1}
	for i, name := range row {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case ColumnType:
			cols.typ = i
		case ColumnClient:
			cols.client = i
		case ColumnTx:
			cols.tx = i
		case ColumnAmount:
			cols.amount = i
		}
	}

	var missing []string
	if cols.typ < 0 {
		missing = append(missing, ColumnType)
	}
	if cols.client < 0 {
		missing = append(missing, ColumnClient)
	}
	if cols.tx < 0 {
		missing = append(missing, ColumnTx)
	}
	if len(missing) > 0 {
		return cols, fmt.Errorf("header is missing columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// maxLineBytes bounds a single input line.
const maxLineBytes = 1 << 20

// parseLine splits one line into fields. A quoted field cannot span lines,
// so a quoting error stays confined to the line it occurs on.
func parseLine(line string) ([]string, error) {
	cr := csv.NewReader(strings.NewReader(line))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return cr.Read()
}

// Records yields one RawRecord per non-blank data line. Lines that do not
// parse as CSV are yielded with an error matching models.ErrMalformedRecord
// and reading continues with the next line. Any other error, including a
// missing header, ends the sequence.
func (r *Reader) Records() iter.Seq2[models.RawRecord, error] {
	return func(yield func(models.RawRecord, error) bool) {
		sc := bufio.NewScanner(r.r)
		sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

		var (
			cols    columns
			haveHdr bool
			lineNo  int
		)
		for sc.Scan() {
			lineNo++
			line := sc.Text()
			if strings.TrimSpace(line) == "" {
				continue
			}

			row, err := parseLine(line)
			if !haveHdr {
				if err == nil {
					cols, err = parseHeader(row)
				}
				if err != nil {
					yield(models.RawRecord{Line: lineNo}, fmt.Errorf("read header: %w", err))
					return
				}
				haveHdr = true
				continue
			}

			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				malformed := &models.MalformedRecordError{
					Message: fmt.Sprintf("column %d: %v", parseErr.Column, parseErr.Err),
				}
				if !yield(models.RawRecord{Line: lineNo}, malformed) {
					return
				}
				continue
			}
			if err != nil {
				yield(models.RawRecord{Line: lineNo}, err)
				return
			}

			rec := models.RawRecord{
				Type:   field(row, cols.typ),
				Client: field(row, cols.client),
				Tx:     field(row, cols.tx),
				Amount: field(row, cols.amount),
				Line:   lineNo,
			}
			if !yield(rec, nil) {
				return
			}
		}
		if err := sc.Err(); err != nil {
			yield(models.RawRecord{Line: lineNo + 1}, fmt.Errorf("read line %d: %w", lineNo+1, err))
		}
	}
}
