package utils

// IDSet tracks listing identifiers already handled within a fetch run, so a
// details link that appears twice on the results page is only fetched once.
type IDSet struct {
	seen map[string]struct{}
}

// NewIDSet creates an empty IDSet.
func NewIDSet() *IDSet {
	return &IDSet{seen: make(map[string]struct{})}
}

// Add returns true if the identifier was newly added, false if already present.
func (s *IDSet) Add(id string) bool {
	if _, exists := s.seen[id]; exists {
		return false
	}
	s.seen[id] = struct{}{}
	return true
}

// Size returns the number of unique identifiers tracked.
func (s *IDSet) Size() int {
	return len(s.seen)
}
