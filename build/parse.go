package build

import (
	"bufio"
	"context"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/geodb-project/geodb/geo"
	"github.com/geodb-project/geodb/internal/geoparse"
)

// chunkLines drains r line by line, invoking onChunk once per batch of up to
// chunkSize lines, in file order. onChunk itself is responsible for any
// within-chunk parallelism; chunkLines never runs two onChunk calls
// concurrently, preserving chunk arrival order.
func chunkLines(r io.Reader, chunkSize int, onChunk func(lines []string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	chunk := make([]string, 0, chunkSize)
	for sc.Scan() {
		chunk = append(chunk, sc.Text())
		if len(chunk) == chunkSize {
			if err := onChunk(chunk); err != nil {
				return err
			}
			chunk = make([]string, 0, chunkSize)
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	if len(chunk) > 0 {
		return onChunk(chunk)
	}
	return nil
}

// parseAllCountriesChunk parses lines across a bounded worker pool and
// returns the admitted records in line order. Worker count is capped at
// workers, and at len(lines) when the chunk is the final, partial one.
func parseAllCountriesChunk(ctx context.Context, lines []string, minPop uint32, workers int) ([]geo.Record, error) {
	results := make([]geo.Record, len(lines))
	admitted := make([]bool, len(lines))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range lines {
		i := i
		g.Go(func() error {
			r, ok := geoparse.ParseAllCountriesLine(lines[i], minPop)
			if ok {
				results[i] = r
				admitted[i] = true
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]geo.Record, 0, len(lines))
	for i, ok := range admitted {
		if ok {
			out = append(out, results[i])
		}
	}
	return out, nil
}

// altNamePair is one parsed (key, id) emission from an alternateNamesV2 line.
type altNamePair struct {
	altName   string
	geonameID uint32
}

// parseAltNamesChunk parses lines across a bounded worker pool and returns
// every structurally valid (altName, geonameID) pair whose geonameID is
// present in idPresent. Order is irrelevant to the caller, which only feeds
// results into the posting map.
func parseAltNamesChunk(ctx context.Context, lines []string, idPresent map[uint32]struct{}, workers int) ([]altNamePair, error) {
	perLine := make([][]altNamePair, len(lines))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range lines {
		i := i
		g.Go(func() error {
			id, altName, ok := geoparse.ParseAltNameLine(lines[i])
			if !ok {
				return nil
			}
			if _, present := idPresent[id]; !present {
				return nil
			}
			perLine[i] = []altNamePair{{altName: altName, geonameID: id}}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]altNamePair, 0, len(lines))
	for _, pairs := range perLine {
		out = append(out, pairs...)
	}
	return out, nil
}
