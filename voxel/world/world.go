package world

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/oriumgames/voxelcore/voxel/block"
)

// ErrChunkUnavailable is returned by SetWorld when the target chunk is
// absent, still generating, or currently locked by another writer.
var ErrChunkUnavailable = errors.New("world: chunk unavailable or locked")

// entry is one chunk slot in the world map. chunk is nil while the
// position is in the Generating state; mu mediates all access to chunk,
// since Chunk itself carries no lock of its own.
type entry struct {
	mu    sync.RWMutex
	chunk *Chunk
}

// World is the non-blocking concurrent map of chunks keyed by chunk
// position, backed by a fixed worker pool that generates chunk contents
// off the calling thread. Per the storage core's concurrency model, the
// map's insertions and removals happen only in LoadChunk and PollChunks;
// Get/GetMut/SetWorld only ever read the map, never mutate it.
type World struct {
	registry *block.BlockRegistry

	mapMu  sync.RWMutex
	chunks map[ChunkPos]*entry

	jobs    *jobRunner
	loading atomic.Int64
}

// NewWorld creates an empty world backed by a pool of the given size
// (clamped to at least 1) generating chunks with gen.
func NewWorld(reg *block.BlockRegistry, gen Generator, workers int) *World {
	return &World{
		registry: reg,
		chunks:   make(map[ChunkPos]*entry),
		jobs:     newJobRunner(workers, gen, reg),
	}
}

// Registry returns the block registry this world was built with.
func (w *World) Registry() *block.BlockRegistry {
	return w.registry
}

// LoadChunk enqueues generation for cpos and marks it Generating, unless a
// chunk is already present (Generating or Loaded) there, in which case the
// call is a no-op.
func (w *World) LoadChunk(cpos ChunkPos) {
	w.mapMu.Lock()
	if _, ok := w.chunks[cpos]; ok {
		w.mapMu.Unlock()
		return
	}
	w.chunks[cpos] = &entry{}
	w.mapMu.Unlock()

	w.loading.Add(1)
	w.jobs.submit(cpos)
}

// NumChunksLoading returns the number of generation jobs still in flight.
func (w *World) NumChunksLoading() int {
	return int(w.loading.Load())
}

// PollChunks moves every currently finished chunk from the job pipeline
// into the world map, without blocking when none are ready.
func (w *World) PollChunks() {
	for {
		select {
		case res := <-w.jobs.results:
			w.install(res)
		default:
			return
		}
	}
}

// PollChunksBlocking waits for at least one in-flight job to finish (if
// any are), installs it, then drains whatever else is immediately ready.
func (w *World) PollChunksBlocking() {
	if w.NumChunksLoading() == 0 {
		return
	}
	w.install(<-w.jobs.results)
	w.PollChunks()
}

func (w *World) install(res chunkResult) {
	w.mapMu.RLock()
	e, ok := w.chunks[res.pos]
	w.mapMu.RUnlock()
	if !ok {
		// The position was unloaded before its generation job completed;
		// drop the result.
		return
	}
	e.mu.Lock()
	e.chunk = res.chunk
	e.mu.Unlock()
	w.loading.Add(-1)
}

func (w *World) lookup(cpos ChunkPos) (*entry, bool) {
	w.mapMu.RLock()
	e, ok := w.chunks[cpos]
	w.mapMu.RUnlock()
	return e, ok
}

// Get returns the Object at a world position. Non-blocking: it returns
// false if the containing chunk is absent, still generating, or currently
// locked by a writer elsewhere, rather than waiting for the lock.
func (w *World) Get(pos WorldPos) (block.Object, bool) {
	cpos, local := pos.ToChunk()
	e, ok := w.lookup(cpos)
	if !ok {
		return nil, false
	}
	if !e.mu.TryRLock() {
		return nil, false
	}
	defer e.mu.RUnlock()
	if e.chunk == nil {
		return nil, false
	}
	return e.chunk.Get(local[0], local[1], local[2])
}

// GetMut returns a mutable Object handle at a world position together with
// a release function the caller must invoke exactly once when finished.
// Non-blocking in the same sense as Get; on failure the returned release
// function is a no-op, so it is always safe to defer.
func (w *World) GetMut(pos WorldPos) (block.Object, bool, func()) {
	cpos, local := pos.ToChunk()
	e, ok := w.lookup(cpos)
	if !ok {
		return nil, false, func() {}
	}
	if !e.mu.TryLock() {
		return nil, false, func() {}
	}
	if e.chunk == nil {
		e.mu.Unlock()
		return nil, false, func() {}
	}
	obj, ok := e.chunk.GetMut(local[0], local[1], local[2])
	if !ok {
		e.mu.Unlock()
		return nil, false, func() {}
	}
	return obj, true, e.mu.Unlock
}

// SetWorld writes blk at pos: it behaves as GetMut followed by a
// chunk-level Set, reporting ErrChunkUnavailable instead of blocking when
// the target chunk is absent, generating, or locked.
func SetWorld[T block.Block](w *World, pos WorldPos, blk T) error {
	cpos, local := pos.ToChunk()
	e, ok := w.lookup(cpos)
	if !ok {
		return ErrChunkUnavailable
	}
	if !e.mu.TryLock() {
		return ErrChunkUnavailable
	}
	defer e.mu.Unlock()
	if e.chunk == nil {
		return ErrChunkUnavailable
	}
	return Set(e.chunk, local[0], local[1], local[2], blk)
}

// WithMutWorld downcasts the Object at a world position and lets fn
// mutate it in place, committing the result before returning.
func WithMutWorld[T block.Block](w *World, pos WorldPos, fn func(*T)) error {
	obj, ok, release := w.GetMut(pos)
	if !ok {
		return ErrChunkUnavailable
	}
	defer release()

	ref, ok := block.CastMut[T](obj)
	if !ok {
		return errUnexpectedType
	}
	fn(ref.Value())
	ref.Release()
	return nil
}

var errUnexpectedType = errors.New("world: cell is not the requested type")
