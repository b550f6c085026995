package flappy

// ScoreTracker counts cleared pipes and keeps the best score.
type ScoreTracker struct {
	Current int
	Best    int
	save    func(best int)
}

// NewScoreTracker starts from a known best. save, if set, is called whenever
// the best improves.
func NewScoreTracker(best int, save func(int)) *ScoreTracker {
	return &ScoreTracker{Best: max(best, 0), save: save}
}

// OnTick awards one point per pipe whose right edge is now left of the bird
// and returns how many were awarded. Each pipe scores once.
func (s *ScoreTracker) OnTick(b *Bird, pipes []*Pipe) int {
	n := 0
	for _, p := range pipes {
		if !p.Passed && p.Right() < b.X {
			p.Passed = true
			n++
		}
	}
	if n == 0 {
		return 0
	}

	s.Current += n
	if s.Current > s.Best {
		s.Best = s.Current
		if s.save != nil {
			s.save(s.Best)
		}
	}
	return n
}

// Reset zeroes the current score and keeps the best.
func (s *ScoreTracker) Reset() {
	s.Current = 0
}
