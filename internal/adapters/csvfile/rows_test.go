package csvfile

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cdrlink/internal/domain"
	"cdrlink/internal/ingest"
)

func TestDecode(t *testing.T) {
	input := "\ufeffCaller, Receiver ,Timestamp\n" +
		"111,222,2024-03-01 10:00:00\n" +
		"\n" +
		"333,444\n" +
		"555,666,2024-03-02 10:00:00,extra\n"

	columns, rows, err := Decode(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"Caller", "Receiver", "Timestamp"}, columns)
	require.Len(t, rows, 3)
	assert.Equal(t, domain.RawRow{"Caller": "111", "Receiver": "222", "Timestamp": "2024-03-01 10:00:00"}, rows[0])
	assert.Equal(t, "", rows[1]["Timestamp"])
	assert.Equal(t, "555", rows[2]["Caller"])
}

func TestDecode_Empty(t *testing.T) {
	_, _, err := Decode(strings.NewReader(""))
	require.Error(t, err)
}

func TestEncode_QuotesCells(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, []string{"a", "b"}, []domain.RawRow{{"a": "x,y", "b": "z"}}))
	assert.Equal(t, "a,b\n\"x,y\",z\n", buf.String())
}

func TestRows_SampleRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.csv")
	sample := ingest.GenerateSample(3, 6, 25)

	require.NoError(t, NewRows().WriteRows(path, ingest.SampleColumns, sample))
	columns, rows, err := NewRows().ReadRows(path)
	require.NoError(t, err)
	assert.Equal(t, ingest.SampleColumns, columns)
	assert.Equal(t, sample, rows)

	schema, err := ingest.DetectSchema(columns)
	require.NoError(t, err)
	assert.Equal(t, ingest.SchemaNew, schema.Kind)
}

func TestRows_MissingFile(t *testing.T) {
	_, _, err := NewRows().ReadRows(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
}
