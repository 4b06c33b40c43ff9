// Package types holds small generic containers and helpers shared across the
// service.
package types

// Chunk partitions items into consecutive slices of at most size elements,
// preserving order. The final chunk holds the remainder. A nil or empty
// input yields no chunks; size must be positive.
//
// The returned chunks are subslices of items, not copies.
func Chunk[T any](items []T, size int) [][]T {
	if size <= 0 || len(items) == 0 {
		return nil
	}

	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		chunks = append(chunks, items[start:end])
	}

	return chunks
}
