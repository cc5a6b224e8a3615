package section

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/dedit/endian"
	"github.com/arloliu/dedit/errs"
	"github.com/arloliu/dedit/format"
)

var allIndexTypes = []format.IndexType{
	format.IndexI16X2,
	format.IndexI16X4,
	format.IndexI32X4,
	format.IndexI32X8,
}

// buildContainer lays out records behind an index of type it.
func buildContainer(t *testing.T, records [][]byte, it format.IndexType) []byte {
	t.Helper()

	idx, err := WriteIndices(records, it)
	require.NoError(t, err)

	return append(idx, bytes.Join(records, nil)...)
}

func TestIndexEntry_WriteAndParse(t *testing.T) {
	engine := endian.Default()

	t.Run("I16_X4 mirrors the offset", func(t *testing.T) {
		b := make([]byte, 4)
		require.NoError(t, IndexEntry{Offset: 0x10, Mirror: 0x10}.WriteToSlice(b, format.IndexI16X4, engine))
		require.Equal(t, []byte{0x10, 0x00, 0x10, 0x00}, b)

		entry, err := ParseIndexEntry(b, format.IndexI16X4, engine)
		require.NoError(t, err)
		require.Equal(t, IndexEntry{Offset: 0x10, Mirror: 0x10}, entry)
	})

	t.Run("I32_X8 keeps a differing mirror", func(t *testing.T) {
		b := []byte{0x08, 0, 0, 0, 0x20, 0, 0, 0}
		entry, err := ParseIndexEntry(b, format.IndexI32X8, engine)
		require.NoError(t, err)
		require.Equal(t, uint32(0x08), entry.Offset)
		require.Equal(t, uint32(0x20), entry.Mirror)
	})

	t.Run("short slice", func(t *testing.T) {
		_, err := ParseIndexEntry([]byte{0x01}, format.IndexI16X2, engine)
		require.ErrorIs(t, err, errs.ErrTruncatedRead)

		err = IndexEntry{}.WriteToSlice(make([]byte, 3), format.IndexI32X4, engine)
		require.ErrorIs(t, err, errs.ErrTruncatedRead)
	})

	t.Run("offset too wide", func(t *testing.T) {
		err := IndexEntry{Offset: 0x10000}.WriteToSlice(make([]byte, 2), format.IndexI16X2, engine)
		require.ErrorIs(t, err, errs.ErrIndexOverflow)
		require.ErrorIs(t, err, errs.ErrMalformedIndex)
	})
}

func TestReadIndex(t *testing.T) {
	t.Run("two entries under I16_X2", func(t *testing.T) {
		first, stride, err := ReadIndex([]byte{0x04, 0x00, 0x04, 0x00}, format.IndexI16X2)
		require.NoError(t, err)
		require.Equal(t, uint32(4), first)
		require.Equal(t, 2, stride)
	})

	t.Run("zero first entry is an empty container", func(t *testing.T) {
		first, stride, err := ReadIndex([]byte{0x00, 0x00, 0x00, 0x00}, format.IndexI32X4)
		require.NoError(t, err)
		require.Zero(t, first)
		require.Equal(t, 4, stride)
	})

	t.Run("unknown index type", func(t *testing.T) {
		_, _, err := ReadIndex([]byte{0x04, 0x00}, format.IndexType(0))
		require.ErrorIs(t, err, errs.ErrMalformedIndex)
	})

	t.Run("truncated", func(t *testing.T) {
		_, _, err := ReadIndex([]byte{0x04}, format.IndexI16X2)
		require.ErrorIs(t, err, errs.ErrTruncatedRead)
	})

	t.Run("first entry not a multiple of stride", func(t *testing.T) {
		_, _, err := ReadIndex([]byte{0x03, 0x00, 0x00, 0x00}, format.IndexI16X2)
		require.ErrorIs(t, err, errs.ErrMalformedIndex)
	})

	t.Run("first entry past buffer end", func(t *testing.T) {
		_, _, err := ReadIndex([]byte{0x10, 0x00}, format.IndexI16X2)
		require.ErrorIs(t, err, errs.ErrMalformedIndex)
	})
}

func TestReadIndex_AgreesWithTable(t *testing.T) {
	bufs := [][]byte{
		{0x04, 0x00, 0x04, 0x00, 0x50, 0x00},
		{0x06, 0x00, 0x06, 0x00, 0x07, 0x00, 'a', 'b'},
		{0x00, 0x00},
		{0x03, 0x00, 0x00, 0x00},
		{0x10, 0x00},
		{0x04},
	}
	for _, buf := range bufs {
		first, stride, err := ReadIndex(buf, format.IndexI16X2)
		table, tableErr := ReadIndexTable(buf, 0, format.IndexI16X2)
		if err != nil {
			require.Error(t, tableErr)
			require.True(t, errors.Is(tableErr, errs.ErrMalformedIndex) == errors.Is(err, errs.ErrMalformedIndex))

			continue
		}

		require.NoError(t, tableErr)
		require.Equal(t, int(first)/stride, table.Count())
		if first != 0 {
			require.Equal(t, first, table[0])
		}
	}
}

func TestReadIndexTable(t *testing.T) {
	t.Run("scenario with an empty leading record", func(t *testing.T) {
		buf := []byte{0x04, 0x00, 0x04, 0x00, 0x50, 0x00}

		table, err := ReadIndexTable(buf, 0, format.IndexI16X2)
		require.NoError(t, err)
		require.Equal(t, IndexTable{4, 4, 6}, table)
		require.Equal(t, 2, table.Count())

		start, end := table.Range(1)
		require.Equal(t, []byte{0x50, 0x00}, buf[start:end])
	})

	t.Run("empty container", func(t *testing.T) {
		table, err := ReadIndexTable([]byte{0x00, 0x00}, 0, format.IndexI16X2)
		require.NoError(t, err)
		require.Zero(t, table.Count())
	})

	t.Run("index starting inside the buffer keeps absolute offsets", func(t *testing.T) {
		buf := []byte{0xAA, 0xBB, 0x06, 0x00, 0x07, 0x00, 'a', 'b'}

		table, err := ReadIndexTable(buf, 2, format.IndexI16X2)
		require.NoError(t, err)
		require.Equal(t, IndexTable{6, 7, 8}, table)
	})

	t.Run("decreasing offsets", func(t *testing.T) {
		buf := []byte{0x06, 0x00, 0x08, 0x00, 0x07, 0x00, 0x00, 0x00, 0x00}
		_, err := ReadIndexTable(buf, 0, format.IndexI16X2)
		require.ErrorIs(t, err, errs.ErrMalformedIndex)
	})

	t.Run("offset past buffer end", func(t *testing.T) {
		buf := []byte{0x04, 0x00, 0x40, 0x00, 0x00}
		_, err := ReadIndexTable(buf, 0, format.IndexI16X2)
		require.ErrorIs(t, err, errs.ErrMalformedIndex)
	})

	t.Run("start outside buffer", func(t *testing.T) {
		_, err := ReadIndexTable([]byte{0x00, 0x00}, 5, format.IndexI16X2)
		require.ErrorIs(t, err, errs.ErrInvalidSegment)
	})

	t.Run("buffer shorter than one entry", func(t *testing.T) {
		_, err := ReadIndexTable([]byte{0x08, 0x00}, 0, format.IndexI32X8)
		require.ErrorIs(t, err, errs.ErrTruncatedRead)
	})
}

func TestWriteIndices_RoundTrip(t *testing.T) {
	records := [][]byte{
		{0x31, 0x32, 0x33, 0x00},
		{0x34, 0x00},
		{},
		{0x35, 0x36, 0x00},
	}

	for _, it := range allIndexTypes {
		t.Run(it.String(), func(t *testing.T) {
			buf := buildContainer(t, records, it)

			table, err := ReadIndexTable(buf, 0, it)
			require.NoError(t, err)
			require.Equal(t, len(records), table.Count())
			require.Equal(t, uint32(len(records)*it.EntryWidth()), table[0])

			for i, want := range records {
				start, end := table.Range(i)
				require.Equal(t, want, buf[start:end], "record %d", i)
			}
		})
	}
}

func TestWriteIndices(t *testing.T) {
	t.Run("first entry equals index length", func(t *testing.T) {
		idx, err := WriteIndices([][]byte{{0x30, 0x00}, {0x31, 0x00}}, format.IndexI16X2)
		require.NoError(t, err)
		require.Equal(t, []byte{0x04, 0x00, 0x06, 0x00}, idx)
	})

	t.Run("no records writes one zero entry", func(t *testing.T) {
		idx, err := WriteIndices(nil, format.IndexI32X4)
		require.NoError(t, err)
		require.Equal(t, []byte{0, 0, 0, 0}, idx)
		require.Equal(t, 4, IndexBufferSize(0, format.IndexI32X4))

		table, err := ReadIndexTable(idx, 0, format.IndexI32X4)
		require.NoError(t, err)
		require.Zero(t, table.Count())
	})

	t.Run("uint16 overflow", func(t *testing.T) {
		records := [][]byte{make([]byte, 70000), {0x00}}
		_, err := WriteIndices(records, format.IndexI16X2)
		require.ErrorIs(t, err, errs.ErrIndexOverflow)
	})

	t.Run("uint32 layout holds large offsets", func(t *testing.T) {
		records := [][]byte{make([]byte, 70000), {0x00}}
		idx, err := WriteIndices(records, format.IndexI32X4)
		require.NoError(t, err)
		require.Equal(t, uint32(70008), endian.Default().Uint32(idx[4:8]))
	})

	t.Run("unknown index type", func(t *testing.T) {
		_, err := WriteIndices([][]byte{{0x00}}, format.IndexType(9))
		require.ErrorIs(t, err, errs.ErrMalformedIndex)
	})
}

func TestReadSectionIndex(t *testing.T) {
	// 4 bytes of unrelated data, then a section with two records.
	buf := []byte{0xEE, 0xEE, 0xEE, 0xEE, 0x04, 0x00, 0x06, 0x00, 0x30, 0x00, 0x31, 0x00}

	table, err := ReadSectionIndex(buf, 4, len(buf))
	require.NoError(t, err)
	require.Equal(t, IndexTable{8, 10, 12}, table)

	t.Run("section end before start", func(t *testing.T) {
		_, err := ReadSectionIndex(buf, 8, 4)
		require.ErrorIs(t, err, errs.ErrMalformedMacroDict)
	})

	t.Run("record offsets beyond the section end", func(t *testing.T) {
		_, err := ReadSectionIndex(buf, 4, 9)
		require.ErrorIs(t, err, errs.ErrMalformedIndex)
	})
}
