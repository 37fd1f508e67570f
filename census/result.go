package census

import (
	"fmt"

	"github.com/garlicgarrison/san-census/notation"
)

// Result is one classified piece. Iterations counts every position
// evaluated for the piece, across all king placements.
type Result struct {
	Piece      string         `json:"piece"`
	Moves      []string       `json:"moves"`
	Iterations int            `json:"iterations"`
	Total      int            `json:"total"`
	Buckets    map[string]int `json:"buckets"`
	Counts     map[string]int `json:"counts"`

	Missing    []string `json:"missing,omitempty"`
	Unexpected []string `json:"unexpected,omitempty"`
}

// BucketCount returns the number of moves in b.
func (r Result) BucketCount(b notation.Bucket) int {
	return r.Buckets[b.String()]
}

// NewResult classifies a finished move set. A move that fits no bucket,
// or more than one, is an error.
func NewResult(piece rune, set *MoveSet, iterations int) (Result, error) {
	buckets := make(map[string]int, len(notation.Buckets))
	for _, b := range notation.Buckets {
		buckets[b.String()] = 0
	}

	moves := set.Sorted()
	for _, m := range moves {
		b, err := notation.Classify(m)
		if err != nil {
			return Result{}, fmt.Errorf("classify %q: %w", m, err)
		}
		buckets[b.String()]++
	}

	return Result{
		Piece:      string(piece),
		Moves:      moves,
		Iterations: iterations,
		Total:      len(moves),
		Buckets:    buckets,
		Counts:     set.Counts(),
	}, nil
}
