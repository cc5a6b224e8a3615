// Package hash fingerprints containers and macro dictionaries.
package hash

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint computes the xxHash64 of data.
func Fingerprint(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// FingerprintString computes the xxHash64 of s.
func FingerprintString(s string) uint64 {
	return xxhash.Sum64String(s)
}

// Format renders a fingerprint as 16 lowercase hex digits for logs and reports.
func Format(fp uint64) string {
	return fmt.Sprintf("%016x", fp)
}
