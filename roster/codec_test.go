package roster

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeAll(t *testing.T, input string, delim rune) ([]Record, error) {
	t.Helper()
	var recs []Record
	err := Decode(strings.NewReader(input), delim, func(_ int, rec Record) error {
		recs = append(recs, rec)
		return nil
	})
	return recs, err
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		delim rune
		want  []Record
	}{
		{
			name:  "basic",
			input: "alice|3\nbob|0\ncarol|12",
			delim: '|',
			want:  []Record{{"alice", 3}, {"bob", 0}, {"carol", 12}},
		},
		{
			name:  "trailing newline",
			input: "alice|3\nbob|1\n",
			delim: '|',
			want:  []Record{{"alice", 3}, {"bob", 1}},
		},
		{
			name:  "crlf line endings",
			input: "alice|3\r\nbob|1\r\n",
			delim: '|',
			want:  []Record{{"alice", 3}, {"bob", 1}},
		},
		{
			name:  "other delimiter",
			input: "Ada Lovelace;4\nAlan Turing;2",
			delim: ';',
			want:  []Record{{"Ada Lovelace", 4}, {"Alan Turing", 2}},
		},
		{
			name:  "negative weight is left to the caller",
			input: "alice|-1",
			delim: '|',
			want:  []Record{{"alice", -1}},
		},
		{
			name:  "empty input",
			input: "",
			delim: '|',
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeAll(t, tt.input, tt.delim)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantErr  error
		wantLine int
		wantRecs int
	}{
		{"missing weight", "alice|3\nbob\ncarol|1", ErrFieldCount, 2, 1},
		{"too many fields", "alice|3|4", ErrFieldCount, 1, 0},
		{"blank line", "alice|3\n\ncarol|1", ErrFieldCount, 2, 1},
		{"non integer weight", "alice|3\nbob|three", ErrWeight, 2, 1},
		{"float weight", "alice|1.5", ErrWeight, 1, 0},
		{"padded weight", "alice| 3", ErrWeight, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, err := decodeAll(t, tt.input, '|')
			require.ErrorIs(t, err, tt.wantErr)

			var lerr *LineError
			require.True(t, errors.As(err, &lerr))
			assert.Equal(t, tt.wantLine, lerr.Line)
			assert.Len(t, recs, tt.wantRecs)
		})
	}
}

func TestDecodeCallbackErrorStops(t *testing.T) {
	stop := errors.New("stop")
	calls := 0
	err := Decode(strings.NewReader("a|1\nb|2\nc|3"), '|', func(line int, rec Record) error {
		calls++
		if rec.Name == "b" {
			return stop
		}
		return nil
	})
	require.ErrorIs(t, err, stop)
	assert.Equal(t, 2, calls)
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, []Record{{"alice", 0}, {"bob", 4}, {"carol", 1}}, '|')
	require.NoError(t, err)
	assert.Equal(t, "alice|0\nbob|4\ncarol|1", buf.String())

	buf.Reset()
	require.NoError(t, Encode(&buf, nil, '|'))
	assert.Empty(t, buf.String())
}

func TestEncodeRefusesDelimiterInName(t *testing.T) {
	for _, name := range []string{"a|b", "line\nbreak", "cr\r"} {
		var buf bytes.Buffer
		err := Encode(&buf, []Record{{"ok", 1}, {name, 2}}, '|')
		require.ErrorIs(t, err, ErrUnencodable, name)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	recs := []Record{{"Ada Lovelace", 5}, {"Grace Hopper", 0}, {"Edsger", 17}}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, recs, ','))

	got, err := decodeAll(t, buf.String(), ',')
	require.NoError(t, err)
	assert.Equal(t, recs, got)
}
