package trace

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// AxisStats describes one coordinate over a run
type AxisStats struct {
	Mean, Std float64
	Min, Max  float64
}

// Range is Max - Min
func (a AxisStats) Range() float64 {
	return a.Max - a.Min
}

// ObjectSummary aggregates every captured sample of one object
type ObjectSummary struct {
	Object        string
	Samples       int
	X, Y, Z       AxisStats
	PeakAmplitude float64
}

func axisStats(v []float64) AxisStats {
	if len(v) == 0 {
		return AxisStats{}
	}
	mean, std := stat.MeanStdDev(v, nil)
	if len(v) < 2 || math.IsNaN(std) {
		std = 0
	}
	return AxisStats{Mean: mean, Std: std, Min: floats.Min(v), Max: floats.Max(v)}
}

// Summarize returns one summary per attached object, in attach order
func (r *Recorder) Summarize() []ObjectSummary {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]ObjectSummary, 0, len(r.sinks))
	for _, s := range r.sinks {
		ser := r.series[s.name]
		sum := ObjectSummary{
			Object:  s.name,
			Samples: len(ser.x),
			X:       axisStats(ser.x),
			Y:       axisStats(ser.y),
			Z:       axisStats(ser.z),
		}
		if len(ser.amp) > 0 {
			sum.PeakAmplitude = floats.Max(ser.amp)
		}
		out = append(out, sum)
	}
	return out
}
