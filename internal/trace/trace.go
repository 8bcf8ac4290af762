// Package trace records per-frame object poses for headless runs and writes
// them as CSV.
package trace

import (
	"fmt"
	"io"
	"os"
	"sync"

	"ProcMotion/internal/behaviour"
	"ProcMotion/internal/clock"
	"ProcMotion/internal/oscillator"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gocarina/gocsv"
)

// Sample is one object's pose at the end of one frame
type Sample struct {
	Frame        uint64  `csv:"frame"`
	Time         float64 `csv:"time"`
	UnscaledTime float64 `csv:"unscaled_time"`
	Object       string  `csv:"object"`

	X float32 `csv:"x"`
	Y float32 `csv:"y"`
	Z float32 `csv:"z"`

	QW float32 `csv:"qw"`
	QX float32 `csv:"qx"`
	QY float32 `csv:"qy"`
	QZ float32 `csv:"qz"`

	Amplitude float64 `csv:"amplitude"` // effective oscillation amplitude, 0 without an oscillator
}

// Sink holds the last pose pushed by the behaviour host
type Sink struct {
	name string

	mu    sync.Mutex
	pos   mgl32.Vec3
	rot   mgl32.Quat
	scale mgl32.Vec3
	amp   float64
}

func (s *Sink) Pose() (mgl32.Vec3, mgl32.Quat, mgl32.Vec3) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos, s.rot, s.scale
}

func (s *Sink) SetPose(position mgl32.Vec3, rotation mgl32.Quat, scale mgl32.Vec3) {
	s.mu.Lock()
	s.pos, s.rot, s.scale = position, rotation, scale
	s.mu.Unlock()
}

func (s *Sink) setAmplitude(amp float64) {
	s.mu.Lock()
	s.amp = amp
	s.mu.Unlock()
}

// series is everything Summarize needs for one object
type series struct {
	x, y, z, amp []float64
}

// Recorder collects samples from attached objects. Samples accumulate until
// WriteCSV drains them; summary data is kept for the whole run.
type Recorder struct {
	mu      sync.Mutex
	sinks   []*Sink
	byName  map[string]*Sink
	pending []Sample
	series  map[string]*series

	headerWritten bool
}

func NewRecorder() *Recorder {
	return &Recorder{
		byName: make(map[string]*Sink),
		series: make(map[string]*series),
	}
}

// Attach installs a sink on obj. Objects are captured in attach order.
func (r *Recorder) Attach(obj *behaviour.GameObject) *Sink {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := &Sink{name: obj.Name}
	r.sinks = append(r.sinks, s)
	r.byName[obj.Name] = s
	r.series[obj.Name] = &series{}
	obj.SetSink(s)
	return s
}

// Observe records the effective amplitude of an oscillator sample. It has
// the signature of an OscillatorScript OnSample hook. Samples with zero
// amplitude, such as those of rotation-only oscillators, are ignored; with
// several moving oscillators on one object the last one to update wins.
func (r *Recorder) Observe(obj *behaviour.GameObject, sample oscillator.Sample) {
	if sample.EffectiveAmplitude == 0 {
		return
	}
	r.mu.Lock()
	s := r.byName[obj.Name]
	r.mu.Unlock()
	if s != nil {
		s.setAmplitude(sample.EffectiveAmplitude)
	}
}

// Capture appends one sample per attached object
func (r *Recorder) Capture(frame clock.Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.sinks {
		s.mu.Lock()
		pos, rot, amp := s.pos, s.rot, s.amp
		s.mu.Unlock()

		r.pending = append(r.pending, Sample{
			Frame:        frame.Count,
			Time:         frame.Time,
			UnscaledTime: frame.UnscaledTime,
			Object:       s.name,
			X:            pos[0],
			Y:            pos[1],
			Z:            pos[2],
			QW:           rot.W,
			QX:           rot.V[0],
			QY:           rot.V[1],
			QZ:           rot.V[2],
			Amplitude:    amp,
		})

		ser := r.series[s.name]
		ser.x = append(ser.x, float64(pos[0]))
		ser.y = append(ser.y, float64(pos[1]))
		ser.z = append(ser.z, float64(pos[2]))
		ser.amp = append(ser.amp, amp)
	}
}

// Pending returns a copy of the samples not yet written
func (r *Recorder) Pending() []Sample {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Sample, len(r.pending))
	copy(out, r.pending)
	return out
}

// WriteCSV writes and drains pending samples. The header is written on the
// first call only, so repeated calls append to one stream.
func (r *Recorder) WriteCSV(w io.Writer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.pending) == 0 && r.headerWritten {
		return nil
	}

	if !r.headerWritten {
		if err := gocsv.Marshal(r.pending, w); err != nil {
			return fmt.Errorf("writing trace: %w", err)
		}
		r.headerWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(r.pending, w); err != nil {
			return fmt.Errorf("writing trace: %w", err)
		}
	}
	r.pending = r.pending[:0]
	return nil
}

// WriteFile writes pending samples to a new file at path
func (r *Recorder) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := r.WriteCSV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
