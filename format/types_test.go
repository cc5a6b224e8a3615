package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIndexType_Layout(t *testing.T) {
	tests := []struct {
		it       IndexType
		entry    int
		offset   int
		mirrored bool
	}{
		{IndexI16X2, 2, 2, false},
		{IndexI16X4, 4, 2, true},
		{IndexI32X4, 4, 4, false},
		{IndexI32X8, 8, 4, true},
		{IndexType(0), 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.it.String(), func(t *testing.T) {
			require.Equal(t, tt.entry, tt.it.EntryWidth())
			require.Equal(t, tt.offset, tt.it.OffsetWidth())
			require.Equal(t, tt.mirrored, tt.it.Mirrored())
		})
	}
}

func TestParseIndexType(t *testing.T) {
	for _, name := range []string{"i16x2", "I16_X2", " i16-x2 "} {
		it, err := ParseIndexType(name)
		require.NoError(t, err)
		require.Equal(t, IndexI16X2, it)
	}

	it, err := ParseIndexType("I32_X8")
	require.NoError(t, err)
	require.Equal(t, IndexI32X8, it)

	_, err = ParseIndexType("i8x1")
	require.Error(t, err)
}

func TestParseSelectors(t *testing.T) {
	enc, err := ParseEncoding("UTF8")
	require.NoError(t, err)
	require.Equal(t, EncodingUTF8, enc)
	require.True(t, enc.Passthrough())
	require.False(t, EncodingGame.Passthrough())

	lang, err := ParseLang("ja")
	require.NoError(t, err)
	require.Equal(t, LangJP, lang)

	game, err := ParseGame("FFX-2")
	require.NoError(t, err)
	require.Equal(t, GameFFX2, game)

	comp, err := ParseCompression("")
	require.NoError(t, err)
	require.Equal(t, CompressionNone, comp)

	_, err = ParseLang("xx")
	require.Error(t, err)
	_, err = ParseGame("ff7")
	require.Error(t, err)
}

func TestCompressionType_Extension(t *testing.T) {
	require.Equal(t, ".zst", CompressionZstd.Extension())
	require.Equal(t, ".s2", CompressionS2.Extension())
	require.Equal(t, ".lz4", CompressionLZ4.Extension())
	require.Empty(t, CompressionNone.Extension())
	require.Equal(t, "Zstd", CompressionZstd.String())
}
