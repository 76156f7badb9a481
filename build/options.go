package build

import (
	"io"
	"os"
	"runtime"

	"github.com/geodb-project/geodb/progress"
)

// Option configures a Run invocation. See WithWorkers, WithChunkSize,
// WithProgressEvery, and WithProgressWriter.
type Option func(*config)

// ChunkSize is the number of TSV lines assigned to one parse chunk; chunks
// are the unit of bounded-parallel dispatch within phases 1 and 4.
const ChunkSize = 200_000

// ProgressEvery is the default Tick modulus for the per-phase progress
// reporters.
const ProgressEvery = 500_000

type config struct {
	workers       int
	chunkSize     int
	progressEvery uint64
	progress      io.Writer
}

func defaultConfig() *config {
	return &config{
		workers:       runtime.GOMAXPROCS(0),
		chunkSize:     ChunkSize,
		progressEvery: ProgressEvery,
		progress:      os.Stderr,
	}
}

// WithWorkers overrides the bounded worker-pool size used by each chunked
// parse phase. The default is runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithChunkSize overrides the number of lines grouped into one parse chunk.
// The default is ChunkSize.
func WithChunkSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.chunkSize = n
		}
	}
}

// WithProgressEvery overrides the Tick modulus for the build's progress
// reporters. A zero value disables Tick output; Done still prints.
func WithProgressEvery(n uint64) Option {
	return func(c *config) {
		c.progressEvery = n
	}
}

// WithProgressWriter redirects the build's diagnostic stream from its
// os.Stderr default to w.
func WithProgressWriter(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.progress = w
		}
	}
}

func (c *config) newReporter(label string) *progress.Reporter {
	return progress.New(c.progress, label, c.progressEvery)
}
