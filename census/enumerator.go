package census

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/garlicgarrison/san-census/config"
	"github.com/garlicgarrison/san-census/notation"
	"github.com/garlicgarrison/san-census/oracle"
	"github.com/garlicgarrison/san-census/placement"
	"golang.org/x/sync/errgroup"
)

/*
	Enumerator places every combination of pieceCount copies of a piece on
	the square universe, once per king placement, asks an oracle for the
	legal moves and accumulates the normalized notation per piece.
*/
type Enumerator struct {
	pieces     string
	pieceCount int
	kings      []placement.KingPlacement
	universe   []placement.Square
	workers    int

	pool     *oracle.Pool
	progress *Progress
	sinks    []Sink
}

func NewEnumerator(cfg config.Config, pool *oracle.Pool, progress *Progress, sinks ...Sink) (*Enumerator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	kings, err := cfg.Kings()
	if err != nil {
		return nil, err
	}
	universe, err := cfg.Universe()
	if err != nil {
		return nil, err
	}

	return &Enumerator{
		pieces:     cfg.Pieces,
		pieceCount: cfg.PieceCount,
		kings:      kings,
		universe:   universe,
		workers:    cfg.Workers,
		pool:       pool,
		progress:   progress,
		sinks:      sinks,
	}, nil
}

func (e *Enumerator) SetProgress(p *Progress) {
	e.progress = p
}

// Positions is the number of positions evaluated per piece.
func (e *Enumerator) Positions() int {
	return len(e.kings) * placement.Binomial(len(e.universe), e.pieceCount)
}

// Run processes every piece in order. A failed piece writes nothing;
// results of earlier pieces have already reached the sinks.
func (e *Enumerator) Run(ctx context.Context) ([]Result, error) {
	results := []Result{}
	for _, piece := range e.pieces {
		set, iterations, err := e.Enumerate(ctx, piece)
		if err != nil {
			return results, fmt.Errorf("piece %c: %w", piece, err)
		}

		r, err := NewResult(piece, set, iterations)
		if err != nil {
			return results, fmt.Errorf("piece %c: %w", piece, err)
		}
		r.Missing, r.Unexpected = Compare(piece, set)

		for _, s := range e.sinks {
			if err := s.WriteResult(r); err != nil {
				return results, err
			}
		}

		log.Printf("piece %c done -- %d iters, %d moves", piece, r.Iterations, r.Total)
		results = append(results, r)
	}

	return results, nil
}

// Enumerate builds the move set of one piece over all king placements.
func (e *Enumerator) Enumerate(ctx context.Context, piece rune) (*MoveSet, int, error) {
	if e.progress != nil {
		e.progress.StartPiece(piece, e.Positions())
	}

	if e.workers <= 1 {
		set := NewMoveSet()
		iterations := 0
		for _, kings := range e.kings {
			n, err := e.withOracle(ctx, piece, kings, set, nil)
			if err != nil {
				return nil, 0, err
			}
			iterations += n
		}
		return set, iterations, nil
	}

	set := NewMoveSet()
	iterations := 0
	mutex := sync.Mutex{}
	seen := newSeenMoves()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for _, kings := range e.kings {
		g.Go(func() error {
			local := NewMoveSet()
			n, err := e.withOracle(gctx, piece, kings, local, seen)
			if err != nil {
				return err
			}

			mutex.Lock()
			set.Merge(local)
			iterations += n
			mutex.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return set, iterations, nil
}

// seenMoves is the union of the workers' local sets, kept only for
// progress output.
type seenMoves struct {
	mutex sync.Mutex
	moves map[string]bool
}

func newSeenMoves() *seenMoves {
	return &seenMoves{moves: make(map[string]bool)}
}

func (s *seenMoves) add(move string) {
	s.mutex.Lock()
	s.moves[move] = true
	s.mutex.Unlock()
}

func (s *seenMoves) Len() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return len(s.moves)
}

func (e *Enumerator) withOracle(ctx context.Context, piece rune, kings placement.KingPlacement, set *MoveSet, seen *seenMoves) (int, error) {
	instance, err := e.pool.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer e.pool.Release(instance)

	return e.enumeratePlacement(ctx, instance.Oracle, piece, kings, set, seen)
}

// enumeratePlacement adds the moves of every combination under one king
// placement to set. A non-nil seen is shared with other workers and
// receives every move new to set.
func (e *Enumerator) enumeratePlacement(ctx context.Context, o oracle.Oracle, piece rune, kings placement.KingPlacement, set *MoveSet, seen *seenMoves) (int, error) {
	combos, err := placement.Combinations(e.universe, e.pieceCount)
	if err != nil {
		return 0, err
	}

	seenLen := set.Len
	if seen != nil {
		seenLen = seen.Len
	}

	iterations := 0
	for squares, ok := combos.Next(); ok; squares, ok = combos.Next() {
		if err := ctx.Err(); err != nil {
			return iterations, err
		}

		pos := placement.Position{Piece: piece, Squares: squares, Kings: kings}
		fen, err := pos.FEN()
		if err != nil {
			return iterations, err
		}

		moves, err := o.LegalMoves(fen)
		if err != nil {
			return iterations, err
		}
		for _, san := range moves {
			m, ok := notation.Normalize(san)
			if !ok {
				continue
			}
			if seen != nil && !set.Has(m) {
				seen.add(m)
			}
			set.Add(m)
		}

		iterations++
		if e.progress != nil {
			e.progress.Step(fen, seenLen)
		}
	}

	return iterations, nil
}
