package compress

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/dedit/format"
)

var allTypes = []format.CompressionType{
	format.CompressionNone,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
}

func dialogueText(records int) []byte {
	var sb strings.Builder
	for i := 0; i < records; i++ {
		sb.WriteString("{CLR:1}Yuna{CLR:0}: We will defeat Sin together.{PAUSE}{END}\r\n")
		sb.WriteString("Tidus{NL}I'm with you!{MACRO:0:3}{END}\r\n")
	}

	return []byte(sb.String())
}

func randomBytes(n int) []byte {
	rng := rand.New(rand.NewSource(42)) //nolint:gosec
	b := make([]byte, n)
	_, _ = rng.Read(b)

	return b
}

func TestCodec_RoundTrip(t *testing.T) {
	inputs := map[string][]byte{
		"single byte": {0x41},
		"dialogue":    dialogueText(200),
		"random":      randomBytes(64 * 1024),
		"utf8":        []byte(strings.Repeat("あア日{END}\r\n", 500)),
	}

	for _, ct := range allTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		for name, data := range inputs {
			t.Run(ct.String()+"/"+name, func(t *testing.T) {
				compressed, err := codec.Compress(data)
				require.NoError(t, err)

				restored, err := codec.Decompress(compressed)
				require.NoError(t, err)
				require.True(t, bytes.Equal(data, restored))
			})
		}
	}
}

func TestCodec_Empty(t *testing.T) {
	for _, ct := range []format.CompressionType{format.CompressionS2, format.CompressionLZ4} {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		compressed, err := codec.Compress(nil)
		require.NoError(t, err)
		require.Empty(t, compressed)

		restored, err := codec.Decompress(nil)
		require.NoError(t, err)
		require.Empty(t, restored)
	}

	t.Run("zstd", func(t *testing.T) {
		codec := NewZstdCompressor()
		compressed, err := codec.Compress(nil)
		require.NoError(t, err)

		restored, err := codec.Decompress(compressed)
		require.NoError(t, err)
		require.Empty(t, restored)
	})
}

func TestCodec_CompressesDialogue(t *testing.T) {
	data := dialogueText(500)

	for _, ct := range allTypes[1:] {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			compressed, err := codec.Compress(data)
			require.NoError(t, err)
			require.Less(t, Ratio(len(data), len(compressed)), 0.5)
		})
	}
}

func TestCodec_CorruptedInput(t *testing.T) {
	garbage := []byte("definitely not an archive")

	for _, ct := range allTypes[1:] {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			_, err = codec.Decompress(garbage)
			require.Error(t, err)
		})
	}
}

func TestNoOp_SharesInput(t *testing.T) {
	data := []byte("abc")
	out, err := NewNoOpCompressor().Compress(data)
	require.NoError(t, err)
	require.Same(t, &data[0], &out[0])
}

func TestGetCodec_Unsupported(t *testing.T) {
	_, err := GetCodec(format.CompressionType(0))
	require.Error(t, err)
}

func TestTypeOf(t *testing.T) {
	tests := []struct {
		path string
		ct   format.CompressionType
		base string
	}{
		{"dialog.txt", format.CompressionNone, "dialog.txt"},
		{"dialog.txt.zst", format.CompressionZstd, "dialog.txt"},
		{"out/dialog.txt.S2", format.CompressionS2, "out/dialog.txt"},
		{"dialog.txt.lz4", format.CompressionLZ4, "dialog.txt"},
		{"dialog.bin", format.CompressionNone, "dialog.bin"},
		{"zst", format.CompressionNone, "zst"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			ct, base := TypeOf(tt.path)
			require.Equal(t, tt.ct, ct)
			require.Equal(t, tt.base, base)
		})
	}
}

func TestArchiveName(t *testing.T) {
	require.Equal(t, "a.txt", ArchiveName("a.txt", format.CompressionNone))
	require.Equal(t, "a.txt.zst", ArchiveName("a.txt", format.CompressionZstd))

	ct, base := TypeOf(ArchiveName("a.txt", format.CompressionLZ4))
	require.Equal(t, format.CompressionLZ4, ct)
	require.Equal(t, "a.txt", base)
}

func TestRatio(t *testing.T) {
	require.Zero(t, Ratio(0, 10))
	require.InDelta(t, 0.25, Ratio(100, 25), 1e-9)
}
