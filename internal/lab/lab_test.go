package lab_test

import (
	"bytes"
	"log"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/molvib/internal/config"
	"github.com/san-kum/molvib/internal/diagram"
	"github.com/san-kum/molvib/internal/lab"
	"github.com/san-kum/molvib/internal/molecule"
	"github.com/san-kum/molvib/internal/photon"
)

// stepUntil steps l until cond holds, giving up after max frames.
func stepUntil(l *lab.Lab, max int, cond func() bool) int {
	for i := 0; i < max; i++ {
		if cond() {
			return i
		}
		l.Step()
	}
	return max
}

var _ = Describe("Lab", func() {
	var (
		l      *lab.Lab
		events []lab.Event
	)

	BeforeEach(func() {
		var err error
		l, err = lab.New(nil)
		Expect(err).NotTo(HaveOccurred())
		events = nil
		l.Observe(func(ev lab.Event) { events = append(events, ev) })
	})

	It("starts with only its photon loop pending", func() {
		Expect(l.Current()).To(BeEmpty())
		Expect(l.Scheduler().Pending()).To(Equal(1))
		Expect(l.Scene().Len()).To(BeZero())
	})

	It("rejects invalid configs", func() {
		cfg := config.DefaultConfig()
		cfg.FPS = 0
		_, err := lab.New(cfg)
		Expect(err).To(MatchError(config.ErrInvalid))
	})

	It("rejects unknown species", func() {
		Expect(l.Add("XYZ")).To(MatchError(molecule.ErrUnknownSpecies))
		Expect(l.Current()).To(BeEmpty())
	})

	Describe("emitting before anything is built", func() {
		It("does nothing", func() {
			m, ok := l.Emit(photon.IR)
			Expect(ok).To(BeFalse())
			Expect(m).To(BeNil())
			Expect(l.Markers()).To(BeEmpty())
			Expect(l.Scene().Len()).To(BeZero())
		})

		It("logs at debug level", func() {
			var buf bytes.Buffer
			quiet, err := lab.New(nil, lab.WithLogger(lab.NewStdLogger(log.New(&buf, "", 0), lab.LevelDebug)))
			Expect(err).NotTo(HaveOccurred())
			quiet.Emit(photon.Microwave)
			Expect(buf.String()).To(ContainSubstring("[DEBUG] emitPhoton(microwave) ignored"))
		})
	})

	Describe("an IR photon through CO", func() {
		var marker *photon.Marker

		BeforeEach(func() {
			Expect(l.Add(molecule.CO)).To(Succeed())
			var ok bool
			marker, ok = l.Emit(photon.IR)
			Expect(ok).To(BeTrue())
			Expect(marker.X).To(BeZero())
			Expect(marker.Y).To(Equal(300.0))
		})

		It("draws the molecule with the marker on top", func() {
			circles, lines := l.Scene().Counts()
			Expect(circles).To(Equal(3))
			Expect(lines).To(Equal(3))
		})

		It("is absorbed inside the stretch window", func() {
			stepUntil(l, 200, func() bool { return l.Absorbed() > 0 })

			Expect(l.Markers()).To(BeEmpty())
			Expect(events).To(HaveLen(1))
			Expect(events[0].Kind).To(Equal(photon.IR))
			Expect(events[0].Motion).To(Equal(molecule.Stretch))
			Expect(events[0].Activated).To(BeTrue())
			Expect(events[0].Marker).To(Equal(marker.ID))
			Expect(events[0].X).To(BeNumerically(">=", 385))
			Expect(events[0].X).To(BeNumerically("<=", 415))

			circles, _ := l.Scene().Counts()
			Expect(circles).To(Equal(2))
			Expect(l.Diagram(molecule.CO).Animator(molecule.Stretch).State()).To(Equal(diagram.Active))
			Expect(l.Diagram(molecule.CO).Animator(molecule.Rotate).State()).To(Equal(diagram.Idle))
		})

		It("stretches the bond by ten on each side and back", func() {
			stepUntil(l, 200, func() bool { return l.Absorbed() > 0 })

			l.Step()
			snap := l.Snapshot()
			Expect(snap.Atoms[0].X).To(BeNumerically("~", 390, 1e-9))
			Expect(snap.Atoms[1].X).To(BeNumerically("~", 460, 1e-9))
			Expect(snap.Bonds[0]).To(BeNumerically("~", 70, 1e-9))
			Expect(snap.Active).To(ConsistOf(molecule.Stretch))

			// 15 frames at 60fps cross one 200ms interval but not two
			for i := 0; i < 15; i++ {
				l.Step()
			}
			snap = l.Snapshot()
			Expect(snap.Atoms[1].X).To(BeNumerically("~", 450, 1e-9))
			Expect(snap.Bonds[0]).To(BeNumerically("~", snap.Rest[0], 1e-9))
		})

		It("ignores a second IR photon while stretching", func() {
			stepUntil(l, 200, func() bool { return l.Absorbed() > 0 })
			l.Emit(photon.IR)
			stepUntil(l, 200, func() bool { return l.Absorbed() > 1 })

			Expect(events).To(HaveLen(2))
			Expect(events[1].Activated).To(BeFalse())
			Expect(l.Scheduler().Pending()).To(Equal(2))
		})

		It("rotates on a microwave photon alongside the stretch", func() {
			stepUntil(l, 200, func() bool { return l.Absorbed() > 0 })
			l.Emit(photon.Microwave)
			stepUntil(l, 200, func() bool { return l.Absorbed() > 1 })

			Expect(events[1].Motion).To(Equal(molecule.Rotate))
			Expect(l.Snapshot().Active).To(ConsistOf(molecule.Stretch, molecule.Rotate))
			Expect(l.Scheduler().Pending()).To(Equal(3))
		})

		It("stops the old loops when the species is rebuilt", func() {
			stepUntil(l, 200, func() bool { return l.Absorbed() > 0 })
			Expect(l.Scheduler().Pending()).To(Equal(2))

			Expect(l.Add(molecule.CO)).To(Succeed())
			Expect(l.Scheduler().Pending()).To(Equal(1))
			Expect(l.Diagram(molecule.CO).Active()).To(BeFalse())
		})

		It("clears the previous diagram when switching species", func() {
			Expect(l.Add(molecule.H2O)).To(Succeed())

			Expect(l.Current()).To(Equal(molecule.H2O))
			Expect(l.Diagram(molecule.CO).Built()).To(BeFalse())
			circles, lines := l.Scene().Counts()
			Expect(circles).To(Equal(4))
			Expect(lines).To(Equal(2))
			Expect(l.Markers()).To(HaveLen(1))
		})
	})

	Describe("Reset", func() {
		It("is a no-op on an empty lab", func() {
			l.Reset()
			Expect(l.Scheduler().Pending()).To(Equal(1))
			Expect(l.Current()).To(BeEmpty())
		})

		It("clears a lab in the middle of a cycle", func() {
			Expect(l.Add(molecule.CO)).To(Succeed())
			l.Emit(photon.IR)
			l.Emit(photon.Microwave)
			stepUntil(l, 200, func() bool { return l.Absorbed() > 0 })
			l.Step()

			l.Reset()

			Expect(l.Markers()).To(BeEmpty())
			Expect(l.Scene().Len()).To(BeZero())
			Expect(l.Current()).To(BeEmpty())
			Expect(l.Absorbed()).To(BeZero())
			Expect(l.Scheduler().Pending()).To(Equal(1))
			for _, s := range molecule.All {
				Expect(l.Diagram(s).Built()).To(BeFalse())
				Expect(l.Diagram(s).Active()).To(BeFalse())
			}
		})

		It("leaves the lab usable", func() {
			Expect(l.Add(molecule.CO)).To(Succeed())
			l.Emit(photon.IR)
			stepUntil(l, 200, func() bool { return l.Absorbed() > 0 })
			l.Reset()

			Expect(l.Add(molecule.CO)).To(Succeed())
			snap := l.Snapshot()
			Expect(snap.Atoms[0].X).To(Equal(400.0))
			Expect(snap.Atoms[1].X).To(Equal(450.0))

			l.Emit(photon.IR)
			stepUntil(l, 200, func() bool { return l.Absorbed() > 0 })
			Expect(events).To(HaveLen(2))
			Expect(events[1].Activated).To(BeTrue())
		})

		It("drops the rest of the frame when an observer resets", func() {
			l.Observe(func(lab.Event) { l.Reset() })
			Expect(l.Add(molecule.H2O)).To(Succeed())
			l.Emit(photon.IR)
			l.Emit(photon.IR)
			stepUntil(l, 200, func() bool { return len(events) > 0 })

			Expect(events).To(HaveLen(1))
			Expect(events[0].Species).To(Equal(molecule.H2O))
			Expect(l.Absorbed()).To(BeZero())
			Expect(l.Markers()).To(BeEmpty())
			Expect(l.Scene().Len()).To(BeZero())
			Expect(l.Current()).To(BeEmpty())
			Expect(l.Scheduler().Pending()).To(Equal(1))

			l.Step()
			Expect(events).To(HaveLen(1))
		})

		It("drops the rest of the frame when an observer swaps species", func() {
			l.Observe(func(lab.Event) { Expect(l.Add(molecule.CO)).To(Succeed()) })
			Expect(l.Add(molecule.H2O)).To(Succeed())
			l.Emit(photon.IR)
			l.Emit(photon.IR)
			stepUntil(l, 200, func() bool { return len(events) > 0 })

			Expect(events).To(HaveLen(1))
			Expect(l.Absorbed()).To(Equal(1))
			Expect(l.Current()).To(Equal(molecule.CO))
			Expect(l.Markers()).To(HaveLen(1))
		})
	})

	DescribeTable("transparent species",
		func(s molecule.Species) {
			Expect(l.Add(s)).To(Succeed())
			l.Emit(photon.IR)
			l.Emit(photon.Microwave)
			for i := 0; i < 400; i++ {
				l.Step()
			}
			Expect(l.Absorbed()).To(BeZero())
			Expect(l.Markers()).To(HaveLen(2))
			for _, m := range l.Markers() {
				Expect(m.X).To(BeNumerically("<=", 800))
			}
		},
		Entry("N2", molecule.N2),
		Entry("O2", molecule.O2),
	)

	DescribeTable("absorbing species",
		func(s molecule.Species, k photon.Kind, want molecule.Motion) {
			Expect(l.Add(s)).To(Succeed())
			l.Emit(k)
			stepUntil(l, 200, func() bool { return l.Absorbed() > 0 })
			Expect(events).To(HaveLen(1))
			Expect(events[0].Motion).To(Equal(want))
		},
		Entry("CO2 bends", molecule.CO2, photon.IR, molecule.Bend),
		Entry("NO2 bends", molecule.NO2, photon.Broadband, molecule.Bend),
		Entry("H2O bends", molecule.H2O, photon.Microwave, molecule.Bend),
		Entry("NH3 breathes", molecule.NH3, photon.IR, molecule.Breathe),
	)
})
