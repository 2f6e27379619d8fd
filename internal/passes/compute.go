package passes

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/star/orbitalik/internal/transform"
)

// ComputePasses returns every complete horizon pass of model within
// [start, start+duration], in chronological order.
func ComputePasses(model Model, start time.Time, duration time.Duration, obs transform.Observer) ([]Pass, error) {
	return ScanPasses(NewOracle(model, obs, start), model.Name(), int(duration.Minutes()))
}

// ComputeFilteredPasses scans every model, keeps passes whose culmination
// reaches both minApogee and minElevation, trims each to the minElevation
// crossings and returns them sorted by rise time. Angles are radians.
//
// Models are processed in order and the first failure aborts the whole call.
// Passes with equal rise times keep the order of models.
func ComputeFilteredPasses(ctx context.Context, models []Model, start time.Time, duration time.Duration,
	minElevation, minApogee float64, obs transform.Observer) ([]Pass, error) {
	minutes := int(duration.Minutes())

	var all []Pass
	for _, model := range models {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		o := NewOracle(model, obs, start)
		found, err := ScanPasses(o, model.Name(), minutes)
		if err != nil {
			return nil, fmt.Errorf("satellite %q: %w", model.Name(), err)
		}

		for _, p := range found {
			if p.ApogeeElevation < minApogee || p.ApogeeElevation < minElevation {
				continue
			}
			if err := RefineThreshold(o, &p, minElevation); err != nil {
				return nil, fmt.Errorf("satellite %q: %w", model.Name(), err)
			}
			all = append(all, p)
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].RiseTime.Before(all[j].RiseTime)
	})
	return all, nil
}

// ComputeTrajectory returns the sub-satellite point once per second over
// [start, start+duration).
func ComputeTrajectory(model Model, start time.Time, duration time.Duration) ([]transform.Geodetic, error) {
	o := NewOracle(model, transform.Observer{}, start)
	out := make([]transform.Geodetic, 0, samples(duration))
	for d := time.Duration(0); d < duration; d += time.Second {
		g, err := o.Geodetic(o.Offset(start.Add(d)))
		if err != nil {
			return nil, fmt.Errorf("trajectory of %q at %s: %w", model.Name(), start.Add(d).Format(time.RFC3339), err)
		}
		out = append(out, g)
	}
	return out, nil
}

// ComputeObserverTrajectory returns the bearing from obs once per second over
// [start, start+duration).
func ComputeObserverTrajectory(model Model, start time.Time, duration time.Duration, obs transform.Observer) ([]transform.Bearing, error) {
	o := NewOracle(model, obs, start)
	out := make([]transform.Bearing, 0, samples(duration))
	for d := time.Duration(0); d < duration; d += time.Second {
		b, err := o.Bearing(o.Offset(start.Add(d)))
		if err != nil {
			return nil, fmt.Errorf("look angles of %q at %s: %w", model.Name(), start.Add(d).Format(time.RFC3339), err)
		}
		out = append(out, b)
	}
	return out, nil
}

func samples(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}
