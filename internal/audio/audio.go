// Package audio plays a short chime for every photon a molecule absorbs.
//
// The pitch depends on the motion the absorption drives, so a stretch, a
// rotation and a bend sound different. [Synth] is a plain sample generator;
// [Player] feeds it to the default output device through PortAudio.
package audio

import (
	"math"
	"sync"

	"github.com/gordonklaus/portaudio"
	"github.com/san-kum/molvib/internal/lab"
	"github.com/san-kum/molvib/internal/molecule"
)

const (
	SampleRate = 44100
	BufferSize = 1024
)

// Pitches in Hz, one per motion.
var Pitches = map[molecule.Motion]float64{
	molecule.Stretch: 659.25,
	molecule.Rotate:  220.00,
	molecule.Bend:    392.00,
	molecule.Breathe: 293.66,
}

type voice struct {
	freq  float64
	phase float64
	env   float64
}

// Synth mixes decaying triangle voices through a one-pole low pass and a
// short stereo delay.
type Synth struct {
	mu     sync.Mutex
	voices []*voice

	Volume float64
	Decay  float64 // envelope multiplier per sample

	filter    [2]float64
	delay     [2][]float64
	delayHead int
}

func NewSynth() *Synth {
	delayLen := int(float64(SampleRate) * 0.25)
	return &Synth{
		Volume: 0.25,
		Decay:  0.9997,
		delay:  [2][]float64{make([]float64, delayLen), make([]float64, delayLen)},
	}
}

// Trigger starts a new voice for m.
func (s *Synth) Trigger(m molecule.Motion) {
	f, ok := Pitches[m]
	if !ok {
		return
	}
	s.mu.Lock()
	s.voices = append(s.voices, &voice{freq: f, env: 1})
	s.mu.Unlock()
}

// Voices is the number of voices still sounding.
func (s *Synth) Voices() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.voices)
}

func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4.0*math.Abs(p-0.5) - 1.0
}

func lpf(sample, cutoff, dt, state float64) float64 {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	return state + alpha*(sample-state)
}

// Fill writes len(out[0]) stereo samples. It is the PortAudio callback.
func (s *Synth) Fill(out [][]float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dt := 1.0 / float64(SampleRate)
	for i := range out[0] {
		sample := 0.0
		for _, v := range s.voices {
			sample += triangle(v.phase) * v.env
			v.phase += v.freq * dt
			v.env *= s.Decay
		}

		s.filter[0] = lpf(sample, 2400, dt, s.filter[0])
		s.filter[1] = lpf(sample, 1800, dt, s.filter[1])

		dl := s.delay[0][s.delayHead]
		dr := s.delay[1][s.delayHead]
		mixL := s.filter[0] + dr*0.25
		mixR := s.filter[1] + dl*0.25
		s.delay[0][s.delayHead] = mixL * 0.5
		s.delay[1][s.delayHead] = mixR * 0.5
		s.delayHead = (s.delayHead + 1) % len(s.delay[0])

		out[0][i] = float32(mixL * s.Volume)
		if len(out) > 1 {
			out[1][i] = float32(mixR * s.Volume)
		}
	}

	live := s.voices[:0]
	for _, v := range s.voices {
		if v.env > 1e-3 {
			live = append(live, v)
		}
	}
	s.voices = live
}

// Attach triggers a voice for every absorption event of l.
func (s *Synth) Attach(l *lab.Lab) {
	l.Observe(func(ev lab.Event) { s.Trigger(ev.Motion) })
}

// Player owns the output stream.
type Player struct {
	Synth  *Synth
	stream *portaudio.Stream
}

func NewPlayer(s *Synth) *Player {
	return &Player{Synth: s}
}

func (p *Player) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return err
	}
	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, p.Synth.Fill)
	if err != nil {
		portaudio.Terminate()
		return err
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return err
	}
	p.stream = stream
	return nil
}

func (p *Player) Active() bool { return p.stream != nil }

func (p *Player) Stop() {
	if p.stream == nil {
		return
	}
	p.stream.Stop()
	p.stream.Close()
	portaudio.Terminate()
	p.stream = nil
}
