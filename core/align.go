package core

const (
	// CacheLineSize is a common cache line size, typically 64 bytes.
	CacheLineSize = 64
)

// Align32 rounds n up to the nearest 32-byte boundary: the row-stride
// padding spec.md §4.4's sparse/bitmask connectivity layouts require so a
// row's device-memory span starts and ends on a 32-byte boundary regardless
// of the strategy's own unpadded RowStride.
func Align32(n int) int { return (n + 31) &^ 31 }
