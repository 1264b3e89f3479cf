package source

import (
	"sort"
	"sync"
)

// SourceMap is a bidirectional, cached translator between byte offsets and
// (line, column) positions for a single document's text. Unlike FileSet,
// which tracks files loaded for compilation, a SourceMap is built directly
// from in-memory document text (LSP buffers) and keeps two memoizing caches
// on top of the precomputed line table, per the document/registry model.
type SourceMap struct {
	lineStarts []uint32 // byte offset of the start of each line, 0-based
	length     uint32

	mu        sync.RWMutex
	posCache  map[uint32]LineCol
	offCache  map[LineCol]uint32
}

// NewSourceMap builds a SourceMap over text.
func NewSourceMap(text string) *SourceMap {
	starts := []uint32{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, uint32(i+1))
		}
	}
	return &SourceMap{
		lineStarts: starts,
		length:     uint32(len(text)),
		posCache:   make(map[uint32]LineCol),
		offCache:   make(map[LineCol]uint32),
	}
}

// ToPosition converts a byte offset to a 1-based (line, column) position.
func (sm *SourceMap) ToPosition(offset uint32) LineCol {
	sm.mu.RLock()
	if pos, ok := sm.posCache[offset]; ok {
		sm.mu.RUnlock()
		return pos
	}
	sm.mu.RUnlock()

	line := sort.Search(len(sm.lineStarts), func(i int) bool {
		return sm.lineStarts[i] > offset
	}) - 1
	if line < 0 {
		line = 0
	}
	pos := LineCol{
		Line: uint32(line) + 1,
		Col:  offset - sm.lineStarts[line] + 1,
	}

	sm.mu.Lock()
	sm.posCache[offset] = pos
	sm.offCache[pos] = offset
	sm.mu.Unlock()
	return pos
}

// ToOffset converts a 1-based (line, column) position to a byte offset.
// Reports false if the position lies outside the document.
func (sm *SourceMap) ToOffset(pos LineCol) (uint32, bool) {
	sm.mu.RLock()
	if off, ok := sm.offCache[pos]; ok {
		sm.mu.RUnlock()
		return off, true
	}
	sm.mu.RUnlock()

	if pos.Line == 0 || int(pos.Line) > len(sm.lineStarts) {
		return 0, false
	}
	lineStart := sm.lineStarts[pos.Line-1]
	off := lineStart + pos.Col - 1
	if off > sm.length {
		return 0, false
	}

	sm.mu.Lock()
	sm.offCache[pos] = off
	sm.posCache[off] = pos
	sm.mu.Unlock()
	return off, true
}

// Len returns the length of the underlying text in bytes.
func (sm *SourceMap) Len() uint32 {
	return sm.length
}
