package csvio

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/sheikh-saqib/payments-ledger-engine/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	rec models.RawRecord
	err error
}

func collect(r io.Reader) []result {
	var out []result
	for rec, err := range NewReader(r).Records() {
		out = append(out, result{rec, err})
	}
	return out
}

func TestReaderRecords(t *testing.T) {
	input := "type,  client,tx , amount\n" +
		"deposit,    1,  1,   1.0\n" +
		"\n" +
		"  Withdrawal, 2, 5, 3.25\n" +
		"dispute, 1, 1\n" +
		"resolve, 1, 1,\n"

	got := collect(strings.NewReader(input))
	require.Len(t, got, 4)
	for _, r := range got {
		require.NoError(t, r.err)
	}

	assert.Equal(t, models.RawRecord{Type: "deposit", Client: "1", Tx: "1", Amount: "1.0", Line: 2}, got[0].rec)
	assert.Equal(t, models.RawRecord{Type: "Withdrawal", Client: "2", Tx: "5", Amount: "3.25", Line: 4}, got[1].rec)
	assert.Equal(t, models.RawRecord{Type: "dispute", Client: "1", Tx: "1", Line: 5}, got[2].rec)
	assert.Equal(t, models.RawRecord{Type: "resolve", Client: "1", Tx: "1", Line: 6}, got[3].rec)
}

func TestReaderColumnOrder(t *testing.T) {
	got := collect(strings.NewReader("amount,tx,client,type\n2.5,3,4,deposit\n"))
	require.Len(t, got, 1)
	require.NoError(t, got[0].err)
	assert.Equal(t, models.RawRecord{Type: "deposit", Client: "4", Tx: "3", Amount: "2.5", Line: 2}, got[0].rec)
}

func TestReaderEmptyInput(t *testing.T) {
	assert.Empty(t, collect(strings.NewReader("")))
	assert.Empty(t, collect(strings.NewReader("type,client,tx,amount\n")))
}

func TestReaderMissingHeaderColumns(t *testing.T) {
	got := collect(strings.NewReader("deposit,1,1,1.0\n"))
	require.Len(t, got, 1)
	require.Error(t, got[0].err)
	assert.False(t, errors.Is(got[0].err, models.ErrMalformedRecord))
	assert.Contains(t, got[0].err.Error(), "type, client, tx")
}

func TestReaderSourceFailure(t *testing.T) {
	boom := errors.New("read failed")
	r := io.MultiReader(strings.NewReader("type,client,tx,amount\ndeposit,1,1,1\n"), iotest.ErrReader(boom))

	got := collect(r)
	require.NotEmpty(t, got)
	last := got[len(got)-1]
	assert.ErrorIs(t, last.err, boom)
}

func TestReaderStopsWhenConsumerStops(t *testing.T) {
	input := "type,client,tx,amount\ndeposit,1,1,1\ndeposit,1,2,1\ndeposit,1,3,1\n"
	n := 0
	for range NewReader(strings.NewReader(input)).Records() {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

func TestReaderBadQuoteSkipsOnlyThatLine(t *testing.T) {
	input := "type,client,tx,amount\n" +
		"deposit,1,1,\"1.0\n" +
		"deposit,1,2,2.0\n" +
		"deposit,1,3,1.0\"\n" +
		"deposit,2,4,\"3.0\"\n"

	got := collect(strings.NewReader(input))
	require.Len(t, got, 4)

	for i, line := range []int{2, 4} {
		bad := got[i*2]
		require.Error(t, bad.err, "line %d", line)
		assert.ErrorIs(t, bad.err, models.ErrMalformedRecord)
		assert.Equal(t, line, bad.rec.Line)
	}

	require.NoError(t, got[1].err)
	assert.Equal(t, models.RawRecord{Type: "deposit", Client: "1", Tx: "2", Amount: "2.0", Line: 3}, got[1].rec)
	require.NoError(t, got[3].err)
	assert.Equal(t, models.RawRecord{Type: "deposit", Client: "2", Tx: "4", Amount: "3.0", Line: 5}, got[3].rec)
}

func TestReaderCRLF(t *testing.T) {
	got := collect(strings.NewReader("type,client,tx,amount\r\ndeposit,1,1,1.5\r\n"))
	require.Len(t, got, 1)
	require.NoError(t, got[0].err)
	assert.Equal(t, models.RawRecord{Type: "deposit", Client: "1", Tx: "1", Amount: "1.5", Line: 2}, got[0].rec)
}

func TestReaderLineTooLong(t *testing.T) {
	input := "type,client,tx,amount\ndeposit,1,1," + strings.Repeat("1", maxLineBytes) + "\n"

	got := collect(strings.NewReader(input))
	require.Len(t, got, 1)
	require.Error(t, got[0].err)
	assert.False(t, errors.Is(got[0].err, models.ErrMalformedRecord))
}
