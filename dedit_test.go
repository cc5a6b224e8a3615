package dedit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/dedit/charset"
	"github.com/arloliu/dedit/container"
	"github.com/arloliu/dedit/errs"
	"github.com/arloliu/dedit/format"
	"github.com/arloliu/dedit/macro"
)

func testDict(t *testing.T) []byte {
	t.Helper()

	cs, err := charset.Lookup(format.LangUS, format.GameFFX)
	require.NoError(t, err)

	dict, err := macro.Compile("--- SECTION 0 ---\r\nYuna{END}\r\n--- END SECTION 0 ---\r\n", cs)
	require.NoError(t, err)

	return dict
}

func TestCompileDecompile(t *testing.T) {
	text := "Hi!{END}\r\n{MACRO:0:0}{PAUSE}{END}\r\n"

	buf, err := Compile(text, testDict(t))
	require.NoError(t, err)

	got, err := Decompile(buf)
	require.NoError(t, err)
	require.Equal(t, text, got)
	require.Equal(t, Fingerprint(buf), Fingerprint(append([]byte(nil), buf...)))
}

func TestCompile_WithoutDictionary(t *testing.T) {
	buf, err := Compile("A{END}B{END}", nil, container.WithIndexType(format.IndexI16X2))
	require.NoError(t, err)
	require.Equal(t, []byte{0x04, 0x00, 0x06, 0x00, 0x50, 0x00, 0x51, 0x00}, buf)

	_, err = Compile("{MACRO:0:1}{END}", testDict(t))
	require.ErrorIs(t, err, errs.ErrUnresolvedMacroRef)
}

func TestLoadMacros(t *testing.T) {
	tbl, err := LoadMacros(testDict(t), format.LangUS, format.GameFFX)
	require.NoError(t, err)

	buf, err := Compile("{MACRO:0:0}{END}", nil, container.WithIndexType(format.IndexI16X2))
	require.NoError(t, err)

	text, err := Decompile(buf, container.WithIndexType(format.IndexI16X2), container.WithMacroTable(tbl))
	require.NoError(t, err)
	require.Equal(t, "Yuna{END}\r\n", text)

	_, err = LoadMacros(testDict(t), format.LangID(0), format.GameFFX)
	require.ErrorIs(t, err, errs.ErrUnsupportedCharset)
}

func TestCompile_UTF8WithDictionary(t *testing.T) {
	buf, err := Compile("héllo{END}\r\n", testDict(t),
		container.WithEncoding(format.EncodingUTF8), container.WithIndexType(format.IndexI16X2))
	require.NoError(t, err)
	require.Equal(t, append([]byte{0x02, 0x00}, "héllo"...), buf)
}
