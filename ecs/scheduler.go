package ecs

// System updates a world once per call.
type System interface {
	Update(w *World)
}

// Scheduler runs systems in insertion order once per frame.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) Update(w *World) {
	for _, system := range s.systems {
		system.Update(w)
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}

// maxStepsPerAdvance caps catch-up work after a long frame so a stall does
// not snowball into ever longer frames.
const maxStepsPerAdvance = 5

// FixedScheduler runs its systems at a fixed simulation rate, decoupled from
// the frame rate by an accumulator.
type FixedScheduler struct {
	Scheduler
	step        float64
	accumulator float64
}

func NewFixedScheduler(step float64, systems ...System) *FixedScheduler {
	if step <= 0 {
		step = 1.0 / 50.0
	}
	fs := &FixedScheduler{step: step}
	for _, system := range systems {
		fs.Add(system)
	}
	return fs
}

// Step returns the fixed step length in seconds.
func (s *FixedScheduler) Step() float64 {
	return s.step
}

// Advance feeds dt seconds of frame time into the accumulator and runs as
// many fixed steps as fit. It returns the number of steps run.
func (s *FixedScheduler) Advance(w *World, dt float64) int {
	if dt <= 0 {
		return 0
	}
	s.accumulator += dt
	steps := 0
	for s.accumulator >= s.step && steps < maxStepsPerAdvance {
		s.Update(w)
		s.accumulator -= s.step
		steps++
	}
	if steps == maxStepsPerAdvance && s.accumulator >= s.step {
		s.accumulator = 0
	}
	return steps
}

// Alpha is the fraction of a step left in the accumulator, useful for
// interpolating rendered positions.
func (s *FixedScheduler) Alpha() float64 {
	return s.accumulator / s.step
}
