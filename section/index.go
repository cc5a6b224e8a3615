package section

import (
	"fmt"

	"github.com/arloliu/dedit/endian"
	"github.com/arloliu/dedit/errs"
	"github.com/arloliu/dedit/format"
)

// IndexEntry is one decoded container index entry.
//
// Mirrored layouts (I16_X4, I32_X8) carry a second copy of the offset that the
// game uses as an alternate text pointer. dedit always writes Mirror equal to
// Offset and reads record boundaries from Offset only.
type IndexEntry struct {
	Offset uint32
	Mirror uint32
}

// ParseIndexEntry parses one index entry of type it from the start of data.
func ParseIndexEntry(data []byte, it format.IndexType, engine endian.EndianEngine) (IndexEntry, error) {
	width := it.EntryWidth()
	if width == 0 {
		return IndexEntry{}, fmt.Errorf("%w: unknown index type %d", errs.ErrMalformedIndex, it)
	}
	if len(data) < width {
		return IndexEntry{}, fmt.Errorf("%w: index entry needs %d bytes, have %d", errs.ErrTruncatedRead, width, len(data))
	}

	ow := it.OffsetWidth()
	offset, _ := endian.Offset(engine, data, ow)
	entry := IndexEntry{Offset: offset, Mirror: offset}
	if it.Mirrored() {
		entry.Mirror, _ = endian.Offset(engine, data[ow:], ow)
	}

	return entry, nil
}

// WriteToSlice writes the entry into b using layout it.
// The slice must be at least it.EntryWidth() bytes long.
func (e IndexEntry) WriteToSlice(b []byte, it format.IndexType, engine endian.EndianEngine) error {
	width := it.EntryWidth()
	if width == 0 {
		return fmt.Errorf("%w: unknown index type %d", errs.ErrMalformedIndex, it)
	}
	if len(b) < width {
		return fmt.Errorf("%w: index entry needs %d bytes, have %d", errs.ErrTruncatedRead, width, len(b))
	}

	ow := it.OffsetWidth()
	if !endian.PutOffset(engine, b, ow, e.Offset) {
		return fmt.Errorf("%w: offset %d in %s entry", errs.ErrIndexOverflow, e.Offset, it)
	}
	if it.Mirrored() && !endian.PutOffset(engine, b[ow:], ow, e.Mirror) {
		return fmt.Errorf("%w: mirror %d in %s entry", errs.ErrIndexOverflow, e.Mirror, it)
	}

	return nil
}

// IndexTable holds the absolute record boundaries of a container.
//
// The last element is a sentinel (buffer length or section end), so a table
// of length n+1 describes n records and record i occupies [t[i], t[i+1]).
type IndexTable []uint32

// Count returns the number of records described by the table.
func (t IndexTable) Count() int {
	if len(t) == 0 {
		return 0
	}

	return len(t) - 1
}

// Range returns the byte range of record i.
func (t IndexTable) Range(i int) (start, end int) {
	return int(t[i]), int(t[i+1])
}

// ReadIndex reads the first index entry of buf.
//
// The first entry holds the byte offset at which record data begins, which is
// also the total length of the index region; dividing it by the returned
// stride gives the record count. A first entry of zero describes an empty
// container.
//
// Returns:
//   - first: Offset of the payload region
//   - stride: Bytes consumed per index entry
//   - error: ErrTruncatedRead if buf is shorter than one entry, ErrMalformedIndex
//     if the index type is unknown or the first entry is inconsistent with buf
func ReadIndex(buf []byte, it format.IndexType) (uint32, int, error) {
	first, stride, err := readFirst(buf, 0, 0, len(buf), it, endian.Default())
	if err != nil {
		return 0, 0, err
	}

	return uint32(first), stride, nil //nolint:gosec
}

// readFirst reads the first entry of the index at indexStart, whose stored
// offsets are relative to origin, and returns the absolute payload offset.
// A stored zero yields 0. The index region [indexStart, first) must lie within
// end and hold a whole number of entries.
func readFirst(buf []byte, indexStart, origin, end int, it format.IndexType, engine endian.EndianEngine) (int64, int, error) {
	stride := it.EntryWidth()
	if stride == 0 {
		return 0, 0, fmt.Errorf("%w: unknown index type %d", errs.ErrMalformedIndex, it)
	}

	entry, err := ParseIndexEntry(buf[indexStart:end], it, engine)
	if err != nil {
		return 0, 0, err
	}
	if entry.Offset == 0 {
		return 0, stride, nil
	}

	first := int64(entry.Offset) + int64(origin)
	if first < int64(indexStart) || first > int64(end) {
		return 0, 0, fmt.Errorf("%w: payload offset %d outside [%d, %d]", errs.ErrMalformedIndex, first, indexStart, end)
	}
	if regionLen := first - int64(indexStart); regionLen%int64(stride) != 0 {
		return 0, 0, fmt.Errorf("%w: index region of %d bytes is not a multiple of stride %d",
			errs.ErrMalformedIndex, regionLen, stride)
	}

	return first, stride, nil
}

// ReadIndexTable reads the complete index of a container whose index region
// begins at start. Offsets in the index are absolute within buf, so the whole
// buffer must be supplied even when start skips leading bytes.
//
// The returned table always ends with len(buf) as sentinel.
func ReadIndexTable(buf []byte, start int, it format.IndexType) (IndexTable, error) {
	if start < 0 || start > len(buf) {
		return nil, fmt.Errorf("%w: start %d outside buffer of %d bytes", errs.ErrInvalidSegment, start, len(buf))
	}

	return readTable(buf, start, 0, len(buf), it)
}

// ReadSectionIndex reads the I16_X2 index of a macro dictionary section that
// starts at base and ends at end. Offsets stored in a section are relative to
// base; the returned table holds absolute offsets and ends with end.
func ReadSectionIndex(buf []byte, base, end int) (IndexTable, error) {
	if base < 0 || end < base || end > len(buf) {
		return nil, fmt.Errorf("%w: section [%d, %d) outside buffer of %d bytes",
			errs.ErrMalformedMacroDict, base, end, len(buf))
	}

	return readTable(buf, base, base, end, MacroSectionIndexType)
}

// readTable reads the index at indexStart. Stored offsets are relative to
// origin and every resulting absolute offset must lie within [indexStart, end].
func readTable(buf []byte, indexStart, origin, end int, it format.IndexType) (IndexTable, error) {
	engine := endian.Default()

	first, stride, err := readFirst(buf, indexStart, origin, end, it, engine)
	if err != nil {
		return nil, err
	}
	if first == 0 {
		return IndexTable{uint32(end)}, nil //nolint:gosec
	}

	count := int(first-int64(indexStart)) / stride
	table := make(IndexTable, count+1)
	table[0] = uint32(first) //nolint:gosec

	for i := 1; i < count; i++ {
		pos := indexStart + i*stride
		e, err := ParseIndexEntry(buf[pos:end], it, engine)
		if err != nil {
			return nil, fmt.Errorf("failed to parse index entry %d: %w", i, err)
		}

		abs := int64(e.Offset) + int64(origin)
		if abs < int64(table[i-1]) || abs > int64(end) {
			return nil, fmt.Errorf("%w: entry %d offset %d outside [%d, %d]",
				errs.ErrMalformedIndex, i, abs, table[i-1], end)
		}
		table[i] = uint32(abs) //nolint:gosec
	}
	table[count] = uint32(end) //nolint:gosec

	return table, nil
}

// IndexBufferSize returns the number of bytes WriteIndices produces for count records.
func IndexBufferSize(count int, it format.IndexType) int {
	if count < 1 {
		count = 1
	}

	return count * it.EntryWidth()
}

// WriteIndices serializes the index for records laid out in order directly
// after it. Record i starts at len(records)*stride plus the lengths of all
// records before it.
//
// An empty record list produces a single zero entry, which reads back as a
// container with no records.
//
// Returns:
//   - []byte: Index bytes to be written before the concatenated records
//   - error: ErrMalformedIndex for an unknown index type, ErrIndexOverflow if an
//     offset does not fit the entry width
func WriteIndices(records [][]byte, it format.IndexType) ([]byte, error) {
	stride := it.EntryWidth()
	if stride == 0 {
		return nil, fmt.Errorf("%w: unknown index type %d", errs.ErrMalformedIndex, it)
	}

	engine := endian.Default()
	out := make([]byte, IndexBufferSize(len(records), it))
	if len(records) == 0 {
		return out, nil
	}

	offset := uint64(len(records) * stride) //nolint:gosec
	for i, rec := range records {
		if offset > uint64(^uint32(0)) {
			return nil, fmt.Errorf("%w: record %d at offset %d", errs.ErrIndexOverflow, i, offset)
		}

		entry := IndexEntry{Offset: uint32(offset), Mirror: uint32(offset)}
		if err := entry.WriteToSlice(out[i*stride:], it, engine); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		offset += uint64(len(rec))
	}

	return out, nil
}
