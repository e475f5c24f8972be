package world

import (
	"testing"
	"time"

	"github.com/oriumgames/voxelcore/voxel/block"
)

func flatTerrain(height int) func(x, z int) int {
	return func(x, z int) int { return height }
}

func TestLoadChunkThenPollInstallsIt(t *testing.T) {
	reg, _ := newTestChunkRegistry()
	gen := HeightmapGenerator(flatTerrain(8), func() plankBlock { return plankBlock{Plain: true} })
	w := NewWorld(reg, gen, 2)

	cpos := ChunkPos{X: 0, Y: 0, Z: 0}
	w.LoadChunk(cpos)

	if n := w.NumChunksLoading(); n != 1 {
		t.Fatalf("NumChunksLoading = %d, want 1 right after LoadChunk", n)
	}

	w.PollChunksBlocking()

	if n := w.NumChunksLoading(); n != 0 {
		t.Fatalf("NumChunksLoading = %d, want 0 after the job finishes", n)
	}

	obj, ok := w.Get(WorldPos{X: 0, Y: 0, Z: 0})
	if !ok {
		t.Fatalf("Get on a loaded chunk returned not-ok")
	}
	ref, ok := block.Cast[plankBlock](obj)
	if !ok || !ref.Get().Plain {
		t.Fatalf("generated column did not contain the configured solid block")
	}

	// Above the configured height the column should still read air.
	obj, ok = w.Get(WorldPos{X: 0, Y: 20, Z: 0})
	if !ok {
		t.Fatalf("Get above terrain height returned not-ok")
	}
	if obj.ID() != "vanilla:air" {
		t.Fatalf("cell above terrain height = %q, want air", obj.ID())
	}
}

func TestGetAbsentChunkIsNonBlocking(t *testing.T) {
	reg, _ := newTestChunkRegistry()
	gen := HeightmapGenerator(flatTerrain(0), func() plankBlock { return plankBlock{} })
	w := NewWorld(reg, gen, 1)

	if _, ok := w.Get(WorldPos{X: 100, Y: 0, Z: 0}); ok {
		t.Fatalf("Get on an absent chunk should return false")
	}
	if err := SetWorld(w, WorldPos{X: 100, Y: 0, Z: 0}, plankBlock{}); err != ErrChunkUnavailable {
		t.Fatalf("SetWorld on an absent chunk = %v, want ErrChunkUnavailable", err)
	}
}

// gatedGenerator blocks inside Generate until release is closed, so a test
// can observe the Generating state deterministically instead of racing a
// worker that might finish instantly.
type gatedGenerator struct {
	inner   Generator
	release chan struct{}
}

func (g *gatedGenerator) Generate(pos ChunkPos, reg *block.BlockRegistry) *Chunk {
	<-g.release
	return g.inner.Generate(pos, reg)
}

func TestGetWhileGeneratingReturnsFalse(t *testing.T) {
	reg, _ := newTestChunkRegistry()
	gate := &gatedGenerator{
		inner:   HeightmapGenerator(flatTerrain(4), func() plankBlock { return plankBlock{} }),
		release: make(chan struct{}),
	}
	w := NewWorld(reg, gate, 1)

	cpos := ChunkPos{X: 5, Y: 0, Z: 0}
	w.LoadChunk(cpos)

	// The worker is blocked in Generate, so the position is still
	// Generating: reads must report false rather than block.
	if _, ok := w.Get(WorldPos{X: 5 * ChunkSize, Y: 0, Z: 0}); ok {
		t.Fatalf("Get during Generating should return false")
	}

	close(gate.release)
	w.PollChunksBlocking()
	if _, ok := w.Get(WorldPos{X: 5 * ChunkSize, Y: 0, Z: 0}); !ok {
		t.Fatalf("Get after poll should succeed once generation finished")
	}
}

func TestLoadChunkIdempotent(t *testing.T) {
	reg, _ := newTestChunkRegistry()
	gen := HeightmapGenerator(flatTerrain(0), func() plankBlock { return plankBlock{} })
	w := NewWorld(reg, gen, 1)

	cpos := ChunkPos{X: 1, Y: 1, Z: 1}
	w.LoadChunk(cpos)
	w.LoadChunk(cpos)

	if n := w.NumChunksLoading(); n != 1 {
		t.Fatalf("NumChunksLoading = %d after duplicate LoadChunk, want 1", n)
	}
}

func TestConcurrentLoadAndPoll(t *testing.T) {
	reg, _ := newTestChunkRegistry()
	gen := HeightmapGenerator(flatTerrain(16), func() plankBlock { return plankBlock{Plain: true} })
	w := NewWorld(reg, gen, 4)

	const n = 20
	for i := 0; i < n; i++ {
		w.LoadChunk(ChunkPos{X: i, Y: 0, Z: 0})
	}

	deadline := time.Now().Add(2 * time.Second)
	for w.NumChunksLoading() > 0 && time.Now().Before(deadline) {
		w.PollChunks()
	}

	if left := w.NumChunksLoading(); left != 0 {
		t.Fatalf("NumChunksLoading = %d after draining, want 0", left)
	}
	for i := 0; i < n; i++ {
		if _, ok := w.Get(WorldPos{X: i * ChunkSize, Y: 0, Z: 0}); !ok {
			t.Fatalf("chunk %d missing after concurrent load+poll", i)
		}
	}
}

func TestWithMutWorldCommits(t *testing.T) {
	reg, _ := newTestChunkRegistry()
	gen := HeightmapGenerator(flatTerrain(0), func() plankBlock { return plankBlock{} })
	w := NewWorld(reg, gen, 1)

	cpos := ChunkPos{}
	w.LoadChunk(cpos)
	w.PollChunksBlocking()

	if err := SetWorld(w, WorldPos{X: 2, Y: 2, Z: 2}, plankBlock{Plain: false}); err != nil {
		t.Fatalf("SetWorld: %v", err)
	}
	if err := WithMutWorld(w, WorldPos{X: 2, Y: 2, Z: 2}, func(p *plankBlock) { p.Plain = true }); err != nil {
		t.Fatalf("WithMutWorld: %v", err)
	}
	obj, ok := w.Get(WorldPos{X: 2, Y: 2, Z: 2})
	if !ok {
		t.Fatalf("Get after WithMutWorld not-ok")
	}
	ref, ok := block.Cast[plankBlock](obj)
	if !ok || !ref.Get().Plain {
		t.Fatalf("WithMutWorld did not commit")
	}
}
