package section

import (
	"fmt"

	"github.com/arloliu/dedit/endian"
	"github.com/arloliu/dedit/errs"
)

// MacroDictHeader represents the fixed 64-byte header of a macro dictionary.
//
// Only the first SectionCount slots are honoured; the remaining slots are
// treated as absent regardless of their content. A zero offset always means
// "section absent", never "section at byte 0", because byte 0 is header space.
type MacroDictHeader struct {
	// SectionOffsets holds the start offset of each section, 0 when absent.
	SectionOffsets [MacroDictMaxSections]uint32
	// SectionCount is the number of slots honoured by this format generation.
	SectionCount int
}

// NewMacroDictHeader creates an empty header for the given format generation.
func NewMacroDictHeader(sectionCount int) (*MacroDictHeader, error) {
	if !ValidSectionCount(sectionCount) {
		return nil, fmt.Errorf("%w: section count %d", errs.ErrInvalidOption, sectionCount)
	}

	return &MacroDictHeader{SectionCount: sectionCount}, nil
}

// Parse parses the header from the start of data.
// SectionCount must be set before calling Parse.
func (h *MacroDictHeader) Parse(data []byte) error {
	if !ValidSectionCount(h.SectionCount) {
		return fmt.Errorf("%w: section count %d", errs.ErrMalformedMacroDict, h.SectionCount)
	}
	if len(data) < MacroDictHeaderSize {
		return fmt.Errorf("%w: header needs %d bytes, have %d", errs.ErrMalformedMacroDict, MacroDictHeaderSize, len(data))
	}

	engine := endian.Default()
	for i := range h.SectionOffsets {
		h.SectionOffsets[i] = 0
		if i < h.SectionCount {
			h.SectionOffsets[i] = engine.Uint32(data[i*MacroDictSlotSize:])
		}
	}

	return nil
}

// Bytes serializes the header into a 64-byte slice.
func (h *MacroDictHeader) Bytes() []byte {
	b := make([]byte, MacroDictHeaderSize)

	engine := endian.Default()
	for i := 0; i < h.SectionCount && i < MacroDictMaxSections; i++ {
		engine.PutUint32(b[i*MacroDictSlotSize:], h.SectionOffsets[i])
	}

	return b
}

// Present returns the indexes of all sections with a non-zero offset.
func (h *MacroDictHeader) Present() []int {
	present := make([]int, 0, h.SectionCount)
	for i := 0; i < h.SectionCount; i++ {
		if h.SectionOffsets[i] != 0 {
			present = append(present, i)
		}
	}

	return present
}

// Validate checks every present offset against a dictionary of total bytes.
// It fails if no section is present or if an offset points into the header
// or past the end of the dictionary.
func (h *MacroDictHeader) Validate(total int) error {
	present := h.Present()
	if len(present) == 0 {
		return fmt.Errorf("%w: no sections present", errs.ErrMalformedMacroDict)
	}

	for _, i := range present {
		off := int64(h.SectionOffsets[i])
		if off < MacroDictHeaderSize || off > int64(total) {
			return fmt.Errorf("%w: section %d offset 0x%X outside [0x%X, 0x%X]",
				errs.ErrMalformedMacroDict, i, off, MacroDictHeaderSize, total)
		}
	}

	return nil
}

// Boundaries returns the honoured section offsets followed by total, the
// implicit start of a pseudo section after the last real one. The trailing
// value guarantees every present section a closing boundary.
func (h *MacroDictHeader) Boundaries(total int) []uint32 {
	bounds := make([]uint32, 0, h.SectionCount+1)
	bounds = append(bounds, h.SectionOffsets[:h.SectionCount]...)

	return append(bounds, uint32(total)) //nolint:gosec
}

// NextPresent returns the first non-zero offset in offsets, skipping absent
// sections. It fails with ErrUnresolvableSection when every value is zero.
func NextPresent(offsets []uint32) (uint32, error) {
	for _, off := range offsets {
		if off != 0 {
			return off, nil
		}
	}

	return 0, fmt.Errorf("%w: no non-zero offset among %d candidates", errs.ErrUnresolvableSection, len(offsets))
}
