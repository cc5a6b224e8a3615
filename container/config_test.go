package container

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/dedit/errs"
	"github.com/arloliu/dedit/format"
)

func TestParseSegment(t *testing.T) {
	tests := []struct {
		in   string
		want Segment
	}{
		{"", Segment{}},
		{"0:0", Segment{}},
		{"16:0", Segment{Start: 16}},
		{"0x10:0x20", Segment{Start: 16, End: 32}},
		{"0X1f:", Segment{Start: 31}},
		{"010:0", Segment{Start: 10}},
		{" 4 : 8 ", Segment{Start: 4, End: 8}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			seg, err := ParseSegment(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, seg)
		})
	}

	for _, in := range []string{"10", "a:b", "20:10", "-1:0", "0x:0"} {
		t.Run("invalid "+in, func(t *testing.T) {
			_, err := ParseSegment(in)
			require.ErrorIs(t, err, errs.ErrInvalidSegment)
		})
	}
}

func TestSegment_String(t *testing.T) {
	require.Equal(t, "16:32", Segment{Start: 16, End: 32}.String())
}

func TestOptions_Validation(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
		want error
	}{
		{"index type", WithIndexType(format.IndexType(0)), errs.ErrInvalidOption},
		{"encoding", WithEncoding(format.Encoding(9)), errs.ErrInvalidOption},
		{"section count", WithSectionCount(12), errs.ErrInvalidOption},
		{"segment", WithSegment(Segment{Start: 8, End: 4}), errs.ErrInvalidSegment},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDecompiler(tt.opt)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := newConfig()
	require.NoError(t, err)
	require.Equal(t, format.IndexI16X4, cfg.IndexType)
	require.Equal(t, format.EncodingGame, cfg.Encoding)
	require.Equal(t, format.LangUS, cfg.Charset.Lang())
	require.Equal(t, format.GameFFX, cfg.Charset.Game())
	require.Nil(t, cfg.lookup())
	require.NotNil(t, cfg.Logger)

	cfg, err = newConfig(WithEncoding(format.EncodingUTF8))
	require.NoError(t, err)
	require.Equal(t, format.LangUS, cfg.Charset.Lang(), "macro dictionaries still need a charset")
}
