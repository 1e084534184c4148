package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"errfmt/internal/diag"
	"errfmt/internal/match"
	"errfmt/internal/template"
)

// chunkSize is the number of lines one worker matches per task.
const chunkSize = 256

// lineResult is the outcome for one input line.
type lineResult struct {
	d  diag.Diagnostic
	ok bool
}

// matchLines matches every line against tpl. results[i] always corresponds
// to lines[i], whatever the number of workers.
func matchLines(ctx context.Context, tpl *template.Template, lines []string, jobs int) ([]lineResult, error) {
	results := make([]lineResult, len(lines))

	if jobs <= 1 || len(lines) <= chunkSize {
		for i, line := range lines {
			if i%chunkSize == 0 {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
			}
			results[i].d, results[i].ok = match.Match(tpl, line)
		}
		return results, nil
	}

	chunks := (len(lines) + chunkSize - 1) / chunkSize

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, chunks, runtime.GOMAXPROCS(0)*4))

	for c := range chunks {
		start := c * chunkSize
		end := min(start+chunkSize, len(lines))
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			for i := start; i < end; i++ {
				results[i].d, results[i].ok = match.Match(tpl, lines[i])
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
