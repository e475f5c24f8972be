package world

import "github.com/oriumgames/voxelcore/voxel/block"

// Generator produces a chunk's contents for a newly requested position.
// Workers call Generate off the engine thread; implementations must not
// touch anything shared with the World beyond the registry they're handed.
type Generator interface {
	Generate(pos ChunkPos, reg *block.BlockRegistry) *Chunk
}

// HeightmapGenerator builds a Generator that samples a height per (x,z)
// column with terrain and fills every cell at or below that height with a
// fresh instance of a single solid block type, per the chunk generation
// job's contract. solid is a factory rather than a single value so that a
// Heap block type doesn't end up with every filled cell aliasing the same
// boxed instance.
func HeightmapGenerator[T block.Block](terrain func(x, z int) int, solid func() T) Generator {
	return &heightmapGenerator[T]{terrain: terrain, solid: solid}
}

type heightmapGenerator[T block.Block] struct {
	terrain func(x, z int) int
	solid   func() T
}

func (g *heightmapGenerator[T]) Generate(pos ChunkPos, reg *block.BlockRegistry) *Chunk {
	c := NewChunk(pos, reg)
	for x := 0; x < ChunkSize; x++ {
		for z := 0; z < ChunkSize; z++ {
			h := g.terrain(pos.X*ChunkSize+x, pos.Z*ChunkSize+z)
			for y := 0; y < ChunkSize; y++ {
				if y+pos.Y*ChunkSize <= h {
					Set(c, x, y, z, g.solid())
				}
			}
		}
	}
	return c
}

// chunkJob is a unit of work submitted to the pool: generate the chunk at
// pos and report it back on the results channel.
type chunkJob struct {
	pos ChunkPos
}

// chunkResult is what a worker publishes once a job completes. Delivery is
// by channel rather than a shared slot, per the storage core's design
// notes: workers never reach into the world's chunk map directly.
type chunkResult struct {
	pos   ChunkPos
	chunk *Chunk
}

// jobRunner is a fixed-size worker pool, grounded on the same
// channel-fed-by-goroutines shape the teacher uses for its background save
// worker: a buffered job queue feeding N goroutines that each push finished
// work onto a results channel for the owning thread to drain.
type jobRunner struct {
	jobs    chan chunkJob
	results chan chunkResult
}

func newJobRunner(workers int, gen Generator, reg *block.BlockRegistry) *jobRunner {
	if workers < 1 {
		workers = 1
	}
	jr := &jobRunner{
		jobs:    make(chan chunkJob, 64),
		results: make(chan chunkResult, 64),
	}
	for i := 0; i < workers; i++ {
		go jr.worker(gen, reg)
	}
	return jr
}

func (jr *jobRunner) worker(gen Generator, reg *block.BlockRegistry) {
	for job := range jr.jobs {
		c := gen.Generate(job.pos, reg)
		jr.results <- chunkResult{pos: job.pos, chunk: c}
	}
}

func (jr *jobRunner) submit(pos ChunkPos) {
	jr.jobs <- chunkJob{pos: pos}
}
