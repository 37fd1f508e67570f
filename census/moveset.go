package census

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// MoveSet collects distinct MoveStrings for one piece along with how
// often each one was produced. It only ever grows.
type MoveSet struct {
	counts map[string]int
}

func NewMoveSet() *MoveSet {
	return &MoveSet{counts: make(map[string]int)}
}

func (s *MoveSet) Add(move string) {
	s.counts[move]++
}

func (s *MoveSet) Has(move string) bool {
	_, ok := s.counts[move]
	return ok
}

func (s *MoveSet) Len() int {
	return len(s.counts)
}

// Merge adds every move and count from other.
func (s *MoveSet) Merge(other *MoveSet) {
	for m, n := range other.counts {
		s.counts[m] += n
	}
}

func (s *MoveSet) Sorted() []string {
	moves := maps.Keys(s.counts)
	slices.Sort(moves)
	return moves
}

func (s *MoveSet) Counts() map[string]int {
	return maps.Clone(s.counts)
}
