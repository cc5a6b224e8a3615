package record

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitRecords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"crlf", "A{END}\r\nB{END}\r\n", []string{"A{END}", "B{END}"}},
		{"lf", "A{END}\nB{END}\n", []string{"A{END}", "B{END}"}},
		{"no line break", "A{END}B{END}", []string{"A{END}", "B{END}"}},
		{"tail without marker", "A{END}\r\nB", []string{"A{END}", "B"}},
		{"blank tail dropped", "A{END}\r\n\r\n  \n", []string{"A{END}"}},
		{"only one break dropped", "A{END}\r\n\r\nB{END}", []string{"A{END}", "\r\nB{END}"}},
		{"empty records", "{END}\r\n{END}\r\n", []string{"{END}", "{END}"}},
		{"empty text", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, SplitRecords(tt.text))
		})
	}
}

func TestTrimEnd(t *testing.T) {
	require.Equal(t, "hello", TrimEnd("hello{END}"))
	require.Equal(t, "hello", TrimEnd("hello"))
	require.Equal(t, "{END}x", TrimEnd("{END}x"))
}

func TestBufferSizes(t *testing.T) {
	require.GreaterOrEqual(t, DecodeBufferSize([]byte{0x50, 0x00}), len("A{END}\r\n"))
	require.Equal(t, len(EndMarker)+len(LineBreak), DecodeBufferSize(nil))
	require.Equal(t, 4, EncodeBufferSize("abc"))
}
