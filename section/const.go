package section

import "github.com/arloliu/dedit/format"

// Macro dictionary layout.
const (
	MacroDictHeaderSize  = 0x40 // fixed header size in bytes
	MacroDictSlotSize    = 4    // one little-endian uint32 section offset per slot
	MacroDictMaxSections = MacroDictHeaderSize / MacroDictSlotSize

	// MacroSectionIndexType is the only index layout used inside macro dictionary sections.
	MacroSectionIndexType = format.IndexI16X2
)

// Format generations of the macro dictionary differ in how many header slots they honour.
const (
	SectionCountGen1 = 10
	SectionCountGen2 = 11
	SectionCountGen3 = MacroDictMaxSections
)

// ValidSectionCount reports whether n is a section count used by a known format generation.
func ValidSectionCount(n int) bool {
	return n == SectionCountGen1 || n == SectionCountGen2 || n == SectionCountGen3
}
