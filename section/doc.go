// Package section defines the low-level binary structures of dialogue
// containers and macro dictionaries.
//
// # Container Structure
//
// A container is an index region followed by a payload region:
//
//	┌──────────────────────────────────────────────────────┐
//	│ Index (N × entry width, fixed by format.IndexType)   │
//	│  - entry 0 = byte offset where the payload begins    │
//	│  - entries are absolute, non-decreasing offsets      │
//	├──────────────────────────────────────────────────────┤
//	│ Payload (variable)                                   │
//	│  - record i occupies [index[i], index[i+1])          │
//	│  - index[N] is the buffer length                     │
//	└──────────────────────────────────────────────────────┘
//
// The record count is never stored; it is derived as entry0 / stride.
//
// # Index Entry Layouts
//
//	Type    | Width | Bytes
//	--------|-------|-----------------------------------------
//	I16_X2  | 2     | uint16 offset
//	I16_X4  | 4     | uint16 offset, uint16 mirror
//	I32_X4  | 4     | uint32 offset
//	I32_X8  | 8     | uint32 offset, uint32 mirror
//
// Mirror halves are written equal to the offset and ignored when read.
//
// # Macro Dictionary Structure
//
//	┌──────────────────────────────────────────────────────┐
//	│ Header (64 bytes)                                    │
//	│  - 16 × uint32 section start offsets, 0 = absent     │
//	├──────────────────────────────────────────────────────┤
//	│ Section payloads (any order, may be non-contiguous)  │
//	│  - each one an I16_X2 container whose offsets are    │
//	│    relative to the section start                     │
//	└──────────────────────────────────────────────────────┘
//
// A section ends at the next non-zero header offset, or at the end of the
// buffer when no later section is present.
//
// All multi-byte values are little-endian (see endian.Default).
package section
