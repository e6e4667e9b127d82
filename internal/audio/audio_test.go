package audio

import (
	"testing"

	"github.com/san-kum/molvib/internal/lab"
	"github.com/san-kum/molvib/internal/molecule"
	"github.com/san-kum/molvib/internal/photon"
)

func buffers() [][]float32 {
	return [][]float32{make([]float32, BufferSize), make([]float32, BufferSize)}
}

func TestSynthVoiceDecays(t *testing.T) {
	s := NewSynth()
	s.Trigger(molecule.Stretch)
	if s.Voices() != 1 {
		t.Fatalf("voices = %d, want 1", s.Voices())
	}

	out := buffers()
	s.Fill(out)
	loud := false
	for _, v := range out[0] {
		if v != 0 {
			loud = true
			break
		}
	}
	if !loud {
		t.Error("first buffer is silent")
	}
	if s.Voices() != 1 {
		t.Errorf("voice dropped after one buffer")
	}

	for i := 0; i < 40; i++ {
		s.Fill(out)
	}
	if s.Voices() != 0 {
		t.Errorf("voices = %d after decay, want 0", s.Voices())
	}
}

func TestSynthSilentWithoutVoices(t *testing.T) {
	s := NewSynth()
	out := buffers()
	s.Fill(out)
	for i, v := range out[0] {
		if v != 0 {
			t.Fatalf("sample %d = %v, want 0", i, v)
		}
	}
}

func TestSynthUnknownMotion(t *testing.T) {
	s := NewSynth()
	s.Trigger(molecule.Motion(42))
	if s.Voices() != 0 {
		t.Errorf("voices = %d, want 0", s.Voices())
	}
}

func TestSynthAttach(t *testing.T) {
	l, err := lab.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	s := NewSynth()
	s.Attach(l)

	if err := l.Add(molecule.CO); err != nil {
		t.Fatal(err)
	}
	l.Emit(photon.IR)
	for i := 0; i < 80; i++ {
		l.Step()
	}
	if l.Absorbed() != 1 {
		t.Fatalf("absorbed = %d, want 1", l.Absorbed())
	}
	if s.Voices() != 1 {
		t.Errorf("voices = %d, want 1", s.Voices())
	}
}
