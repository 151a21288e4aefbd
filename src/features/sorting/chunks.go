package sorting

// DefaultChunkSize caps how many unsorted images enter one work queue.
// Chunking bounds peak memory on classes with very large unsorted
// populations and keeps the largest-first ordering cheap per chunk.
const DefaultChunkSize = 2000

// Chunks partitions a class's full unsorted-image list into fixed-size
// slices. Chunk boundaries are recomputed on every enumeration and are not
// stable identifiers across directory changes.
type Chunks struct {
	paths []string
	size  int
}

func NewChunks(paths []string, size int) *Chunks {
	if size <= 0 {
		size = DefaultChunkSize
	}
	return &Chunks{paths: paths, size: size}
}

// Count returns the number of chunks; an empty class still has one (empty)
// chunk.
func (c *Chunks) Count() int {
	if len(c.paths) == 0 {
		return 1
	}
	return (len(c.paths) + c.size - 1) / c.size
}

// Clamp bounds a chunk index to [0, Count()-1].
func (c *Chunks) Clamp(index int) int {
	if index < 0 {
		return 0
	}
	if max := c.Count() - 1; index > max {
		return max
	}
	return index
}

// Slice returns the paths of the chunk at index (clamped).
func (c *Chunks) Slice(index int) []string {
	index = c.Clamp(index)
	start := index * c.size
	if start >= len(c.paths) {
		return nil
	}
	end := start + c.size
	if end > len(c.paths) {
		end = len(c.paths)
	}
	return append([]string(nil), c.paths[start:end]...)
}

// Total returns the total number of unsorted paths across all chunks.
func (c *Chunks) Total() int {
	return len(c.paths)
}
