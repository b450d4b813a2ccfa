package analysis

import (
	"context"
	"sync"

	"github.com/san-kum/eigenmap/internal/linmap"
	"github.com/san-kum/eigenmap/internal/trajectory"
)

// Case is one basis and starting point to iterate.
type Case struct {
	Name    string
	Basis   linmap.Basis
	Initial linmap.Vec2
}

// Outcome is the result of iterating a single Case. Err is set when the
// basis could not be turned into a matrix; Report then stays zero.
type Outcome struct {
	Name   string
	Kind   linmap.FixedPoint
	Report Report
	Err    error
}

// Sweep iterates every case for up to steps steps, one goroutine per case,
// and returns outcomes in input order. It stops early when ctx is done.
func Sweep(ctx context.Context, cases []Case, steps int, window float64) ([]Outcome, error) {
	out := make([]Outcome, len(cases))

	var wg sync.WaitGroup
	for i, c := range cases {
		wg.Add(1)
		go func(idx int, c Case) {
			defer wg.Done()
			out[idx] = runCase(ctx, c, steps, window)
		}(i, c)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func runCase(ctx context.Context, c Case, steps int, window float64) Outcome {
	o := Outcome{Name: c.Name, Kind: linmap.Classify(c.Basis)}

	a, err := c.Basis.Matrix()
	if err != nil {
		o.Err = err
		return o
	}

	tr := trajectory.New(c.Initial)
	for i := 0; i < steps; i++ {
		if ctx.Err() != nil {
			break
		}
		// divergence ends the orbit; what was collected is still measured
		if _, err := tr.Step(&a); err != nil {
			break
		}
	}
	o.Report = Analyze(c.Basis, tr.Points(), window)
	return o
}
