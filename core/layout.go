package core

// Memory layout constants for thread/block padding.
const (
	PageSize = 4096
	// WarpSize is the CUDA warp width; GPU backends pad per-population
	// thread counts up to a multiple of it so that no warp straddles two
	// populations.
	WarpSize = 32
)

// AlignSize rounds size up to the specified alignment boundary
func AlignSize(size, align int) int {
	return (size + align - 1) &^ (align - 1)
}

// AlignCacheLine rounds size up to cache line boundary
func AlignCacheLine(size int) int {
	return AlignSize(size, CacheLineSize)
}

// AlignPage rounds size up to page boundary
func AlignPage(size int) int {
	return AlignSize(size, PageSize)
}

// AlignWarp rounds a thread count up to a multiple of WarpSize. Used by
// backend.CUDABackend to pad per-group thread counts for
// Backend.GenParallelGroup so that no warp spans two populations.
func AlignWarp(threads int) int {
	return AlignSize(threads, WarpSize)
}

// AlignBlock rounds a thread count up to a multiple of blockSize. Used by
// backends whose parallel dispatch is grouped into fixed-size blocks.
func AlignBlock(threads, blockSize int) int {
	if blockSize <= 0 {
		return threads
	}
	return AlignSize(threads, blockSize)
}

// PadToAlignment adds padding bytes to reach alignment
func PadToAlignment(data []byte, align int) []byte {
	currentLen := len(data)
	alignedLen := AlignSize(currentLen, align)
	if alignedLen == currentLen {
		return data
	}

	padded := make([]byte, alignedLen)
	copy(padded, data)
	return padded
}
