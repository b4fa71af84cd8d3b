package ui

// Signal is one outcome reported by the module.
type Signal struct {
	Success bool
	Reason  string
}

// Signals collects the module's success and failure reports so the UI can
// turn them into notifications after each trigger. It implements
// hogwarts.Reporter.
type Signals struct {
	pending []Signal
	strikes int
	solved  bool
}

func NewSignals() *Signals {
	return &Signals{}
}

func (s *Signals) ReportSuccess() {
	s.solved = true
	s.pending = append(s.pending, Signal{Success: true})
}

func (s *Signals) ReportFailure(reason string) {
	s.strikes++
	s.pending = append(s.pending, Signal{Reason: reason})
}

func (s *Signals) Strikes() int { return s.strikes }
func (s *Signals) Solved() bool { return s.solved }

// drain returns and clears the signals reported since the last call.
func (s *Signals) drain() []Signal {
	out := s.pending
	s.pending = nil
	return out
}
