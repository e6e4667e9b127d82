package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/molvib/internal/config"
	"github.com/san-kum/molvib/internal/lab"
	"github.com/san-kum/molvib/internal/metrics"
	"github.com/san-kum/molvib/internal/molecule"
	"github.com/san-kum/molvib/internal/photon"
	"github.com/san-kum/molvib/internal/scene"
)

type Observer interface {
	OnFrame(s lab.Snapshot)
}

type ObserverFunc func(s lab.Snapshot)

func (f ObserverFunc) OnFrame(s lab.Snapshot) { f(s) }

type Result struct {
	Scenario string
	Species  molecule.Species
	FPS      int
	Times    []float64
	Atoms    [][]scene.Point
	Bonds    [][]float64
	Events   []lab.Event
	Metrics  map[string]float64
	Frames   int
}

type Option func(*Experiment)

func WithLogger(l lab.Logger) Option {
	return func(e *Experiment) { e.log = l }
}

// WithFrames overrides the scenario's frame count when n is positive.
func WithFrames(n int) Option {
	return func(e *Experiment) {
		if n > 0 {
			e.frames = n
		}
	}
}

type Experiment struct {
	cfg       *config.Config
	name      string
	species   molecule.Species
	frames    int
	emissions map[int][]photon.Kind
	metrics   []metrics.Metric
	observers []Observer
	log       lab.Logger
}

// New checks the scenario's species and photon kinds up front so Run only
// fails on cancellation.
func New(cfg *config.Config, sc *config.Scenario, opts ...Option) (*Experiment, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	species, err := molecule.Parse(sc.Species)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}
	e := &Experiment{
		cfg:       cfg,
		name:      sc.Name,
		species:   species,
		frames:    sc.Frames,
		emissions: make(map[int][]photon.Kind),
		log:       lab.NoOpLogger{},
	}
	for _, em := range sc.Emissions {
		k, err := photon.ParseKind(em.Kind)
		if err != nil {
			return nil, fmt.Errorf("scenario %s frame %d: %w", sc.Name, em.Frame, err)
		}
		e.emissions[em.Frame] = append(e.emissions[em.Frame], k)
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.frames <= 0 {
		return nil, fmt.Errorf("%w: scenario %s runs no frames", config.ErrInvalid, sc.Name)
	}
	return e, nil
}

func (e *Experiment) AddMetric(m metrics.Metric) { e.metrics = append(e.metrics, m) }
func (e *Experiment) AddObserver(o Observer)     { e.observers = append(e.observers, o) }

func (e *Experiment) Frames() int { return e.frames }

// Run plays the scenario on a fresh lab. On cancellation it returns what was
// recorded so far together with ctx.Err().
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	l, err := lab.New(e.cfg, lab.WithLogger(e.log))
	if err != nil {
		return nil, err
	}
	if err := l.Add(e.species); err != nil {
		return nil, err
	}

	result := &Result{
		Scenario: e.name,
		Species:  e.species,
		FPS:      e.cfg.FPS,
		Times:    make([]float64, 0, e.frames),
		Atoms:    make([][]scene.Point, 0, e.frames),
		Bonds:    make([][]float64, 0, e.frames),
		Metrics:  make(map[string]float64),
	}
	l.Observe(func(ev lab.Event) { result.Events = append(result.Events, ev) })

	for _, m := range e.metrics {
		m.Reset()
	}

	for i := 0; i < e.frames; i++ {
		select {
		case <-ctx.Done():
			e.collect(result)
			return result, ctx.Err()
		default:
		}

		for _, k := range e.emissions[i] {
			l.Emit(k)
		}
		l.Step()

		snap := l.Snapshot()
		result.Times = append(result.Times, snap.Time.Seconds())
		result.Atoms = append(result.Atoms, snap.Atoms)
		result.Bonds = append(result.Bonds, snap.Bonds)
		result.Frames++

		for _, m := range e.metrics {
			m.Observe(snap)
		}
		for _, o := range e.observers {
			o.OnFrame(snap)
		}
	}

	e.collect(result)
	e.log.Infof("%s: %d frames, %d absorptions", e.name, result.Frames, len(result.Events))
	return result, nil
}

func (e *Experiment) collect(r *Result) {
	for _, m := range e.metrics {
		r.Metrics[m.Name()] = m.Value()
	}
}
