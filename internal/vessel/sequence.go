package vessel

// Sequence hands out monotonically increasing texture ids. The host owns
// one instance and threads it through texture creation, so there is no
// package-level counter to reset between projects.
type Sequence struct {
	next int
}

// NewSequence starts a sequence that resumes after the highest id already
// in use.
func NewSequence(existing []TextureConfig) *Sequence {
	s := &Sequence{next: 1}
	for _, t := range existing {
		if t.ID >= s.next {
			s.next = t.ID + 1
		}
	}
	return s
}

// Next returns the next id.
func (s *Sequence) Next() int {
	id := s.next
	s.next++
	return id
}
