package census

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/garlicgarrison/san-census/config"
	"github.com/garlicgarrison/san-census/notation"
	"github.com/garlicgarrison/san-census/oracle"
	"github.com/garlicgarrison/san-census/placement"
)

var (
	knightSquares = []string{"c2", "e2", "c6", "e6"}
	inertSquares  = []string{"a1", "c2", "e2", "c6", "e6", "h8"}
)

func rookSquares() []string {
	squares := []string{}
	for f := 'a'; f <= 'h'; f++ {
		squares = append(squares, string(f)+"1")
	}
	for r := '2'; r <= '8'; r++ {
		squares = append(squares, "a"+string(r))
	}
	return squares
}

func smallConfig(pieces string, count int, squares []string, workers int) config.Config {
	cfg := config.Default()
	cfg.Pieces = pieces
	cfg.PieceCount = count
	cfg.Squares = squares
	cfg.Workers = workers
	cfg.ProgressEvery = 0
	cfg.DrawBoard = false
	return cfg
}

func run(t *testing.T, cfg config.Config, sinks ...Sink) []Result {
	pool, err := oracle.NewPool(cfg.Oracle, cfg.Workers)
	if err != nil {
		t.Fatalf("err -- %s", err)
	}

	e, err := NewEnumerator(cfg, pool, nil, sinks...)
	if err != nil {
		t.Fatalf("err -- %s", err)
	}

	results, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("err -- %s", err)
	}
	return results
}

func checkInvariants(t *testing.T, r Result) {
	sum := 0
	for _, b := range notation.Buckets {
		sum += r.BucketCount(b)
	}
	if sum != r.Total || r.Total != len(r.Moves) {
		t.Errorf("%s: total %d, buckets sum %d, moves %d", r.Piece, r.Total, sum, len(r.Moves))
	}

	for _, m := range r.Moves {
		if strings.HasPrefix(m, "K") || strings.HasPrefix(m, "k") {
			t.Errorf("%s: king move %q", r.Piece, m)
		}
		if strings.ContainsAny(m, "x+#") {
			t.Errorf("%s: move %q not normalized", r.Piece, m)
		}
		if _, err := notation.Classify(m); err != nil {
			t.Errorf("%s: %q -- %s", r.Piece, m, err)
		}
	}
}

func TestKnightShapes(t *testing.T) {
	results := run(t, smallConfig("N", 3, knightSquares, 1))
	r := results[0]
	log.Printf("knight moves: %v", r.Moves)
	checkInvariants(t, r)

	// every placement contributes its own C(4,3) positions
	if r.Iterations != 3*4 {
		t.Fatalf("iterations = %d, want 12", r.Iterations)
	}
	for _, b := range notation.Buckets {
		if r.BucketCount(b) == 0 {
			t.Errorf("no %s knight moves", b)
		}
	}

	set := map[string]bool{}
	for _, m := range r.Moves {
		set[m] = true
	}
	for _, want := range []string{"Nc2d4", "Ncd4", "N2d4", "Nd8"} {
		if !set[want] {
			t.Errorf("missing %s", want)
		}
	}
}

func TestRookNormalCoversBoard(t *testing.T) {
	results := run(t, smallConfig("R", 3, rookSquares(), 1))
	r := results[0]
	checkInvariants(t, r)

	if r.BucketCount(notation.Normal) != 64 {
		t.Fatalf("normal rook moves = %d, want 64", r.BucketCount(notation.Normal))
	}
	set := map[string]bool{}
	for _, m := range r.Moves {
		set[m] = true
	}
	for _, sq := range placement.AllSquares() {
		if !set["R"+sq.String()] {
			t.Errorf("missing R%s", sq)
		}
	}
}

func TestDefaultKingsLeaveCornersOpen(t *testing.T) {
	results := run(t, smallConfig("BQ", 3, []string{"a1", "a4", "a8", "e8", "h1"}, 1))

	want := map[string]string{"B": "Ba8c6", "Q": "Qa1h8"}
	for _, r := range results {
		checkInvariants(t, r)
		found := false
		for _, m := range r.Moves {
			if m == want[r.Piece] {
				found = true
			}
		}
		if !found {
			t.Errorf("%s: missing %s in %v", r.Piece, want[r.Piece], r.Moves)
		}
	}
}

func TestTwoPiecesAreStrictSubset(t *testing.T) {
	two := run(t, smallConfig("N", 2, inertSquares, 1))[0]
	three := run(t, smallConfig("N", 3, inertSquares, 1))[0]

	set := map[string]bool{}
	for _, m := range three.Moves {
		set[m] = true
	}
	for _, m := range two.Moves {
		if !set[m] {
			t.Errorf("%s found with two knights but not with three", m)
		}
	}
	if len(two.Moves) >= len(three.Moves) {
		t.Fatalf("two knights gave %d moves, three gave %d", len(two.Moves), len(three.Moves))
	}
	if two.BucketCount(notation.RankFileDisambiguated) != 0 {
		t.Fatalf("two knights cannot need both file and rank")
	}
}

func TestIdempotent(t *testing.T) {
	a := run(t, smallConfig("NB", 3, inertSquares, 1))
	b := run(t, smallConfig("NB", 3, inertSquares, 1))

	for i := range a {
		if strings.Join(a[i].Moves, ",") != strings.Join(b[i].Moves, ",") {
			t.Fatalf("%s differs between runs", a[i].Piece)
		}
	}
}

func TestWorkersMatchSequential(t *testing.T) {
	seq := run(t, smallConfig("NQ", 3, inertSquares, 1))
	par := run(t, smallConfig("NQ", 3, inertSquares, 3))

	for i := range seq {
		if strings.Join(seq[i].Moves, ",") != strings.Join(par[i].Moves, ",") {
			t.Errorf("%s: parallel run differs", seq[i].Piece)
		}
		if seq[i].Iterations != par[i].Iterations {
			t.Errorf("%s: iterations %d vs %d", seq[i].Piece, seq[i].Iterations, par[i].Iterations)
		}
	}
}

func TestMoveSetMonotonic(t *testing.T) {
	cfg := smallConfig("N", 3, inertSquares, 1)
	universe, _ := cfg.Universe()
	combos, err := placement.Combinations(universe, 3)
	if err != nil {
		t.Fatalf("err -- %s", err)
	}

	o := oracle.GoChess{}
	set := NewMoveSet()
	last := 0
	for squares, ok := combos.Next(); ok; squares, ok = combos.Next() {
		fen, err := placement.Position{Piece: 'N', Squares: squares, Kings: placement.DefaultKingPlacements[0]}.FEN()
		if err != nil {
			t.Fatalf("err -- %s", err)
		}
		moves, err := o.LegalMoves(fen)
		if err != nil {
			t.Fatalf("err -- %s", err)
		}
		for _, san := range moves {
			if m, ok := notation.Normalize(san); ok {
				set.Add(m)
			}
		}
		if set.Len() < last {
			t.Fatalf("move set shrank from %d to %d", last, set.Len())
		}
		last = set.Len()
	}
}

func TestMoveSet(t *testing.T) {
	a := NewMoveSet()
	a.Add("Rb1")
	a.Add("Ra1")
	a.Add("Ra1")

	b := NewMoveSet()
	b.Add("Ra1")
	b.Add("Rc1")

	a.Merge(b)
	if a.Len() != 3 || !a.Has("Rc1") {
		t.Fatalf("unexpected merge result %v", a.Sorted())
	}
	if strings.Join(a.Sorted(), " ") != "Ra1 Rb1 Rc1" {
		t.Fatalf("unexpected order %v", a.Sorted())
	}
	if a.Counts()["Ra1"] != 3 {
		t.Fatalf("Ra1 count = %d, want 3", a.Counts()["Ra1"])
	}
}

func TestWriterFormat(t *testing.T) {
	set := NewMoveSet()
	set.Add("Nbd2")
	set.Add("Na1")
	r, err := NewResult('N', set, 12)
	if err != nil {
		t.Fatalf("err -- %s", err)
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.WriteResult(r); err != nil {
		t.Fatalf("err -- %s", err)
	}

	want := "-------- N --------\n" +
		"['Na1', 'Nbd2']\n" +
		"\n" +
		"12 iters\n" +
		"\n" +
		"2 total moves\n" +
		"1 normal moves\n" +
		"1 file disambiguated moves\n" +
		"0 rank disambiguated moves\n" +
		"0 rank&file disambiguated moves\n" +
		"\n" +
		"\n"
	if buf.String() != want {
		t.Fatalf("unexpected block:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestNewResultRejectsUnclassified(t *testing.T) {
	set := NewMoveSet()
	set.Add("Rxa1")
	if _, err := NewResult('R', set, 1); !errors.Is(err, notation.ErrUnclassified) {
		t.Fatalf("expected %v, got %v", notation.ErrUnclassified, err)
	}
}

type failingOracle struct {
	oracle.GoChess
}

func (f failingOracle) LegalMoves(fen string) ([]string, error) {
	if strings.Contains(fen, "B") {
		return nil, oracle.ErrOracleFailure
	}
	return f.GoChess.LegalMoves(fen)
}

func TestOracleFailureKeepsEarlierBlocks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "possibilities.txt")
	w, err := CreateWriter(path)
	if err != nil {
		t.Fatalf("err -- %s", err)
	}

	pool, err := oracle.NewPoolOf(failingOracle{})
	if err != nil {
		t.Fatalf("err -- %s", err)
	}
	e, err := NewEnumerator(smallConfig("RB", 3, knightSquares, 1), pool, nil, w)
	if err != nil {
		t.Fatalf("err -- %s", err)
	}

	results, err := e.Run(context.Background())
	if !errors.Is(err, oracle.ErrOracleFailure) {
		t.Fatalf("expected %v, got %v", oracle.ErrOracleFailure, err)
	}
	if len(results) != 1 || results[0].Piece != "R" {
		t.Fatalf("unexpected results %+v", results)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("err -- %s", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("err -- %s", err)
	}
	if !strings.Contains(string(b), "-------- R --------") || strings.Contains(string(b), "-------- B --------") {
		t.Fatalf("unexpected file content:\n%s", b)
	}
}

func TestRunCancelled(t *testing.T) {
	pool, err := oracle.NewPool(oracle.GoChessName, 1)
	if err != nil {
		t.Fatalf("err -- %s", err)
	}
	e, err := NewEnumerator(smallConfig("N", 3, knightSquares, 1), pool, nil)
	if err != nil {
		t.Fatalf("err -- %s", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := e.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected %v, got %v", context.Canceled, err)
	}
}

func TestJSONWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "possibilities.json")
	j := NewJSONWriter(path, "run", oracle.GoChessName)
	results := run(t, smallConfig("N", 3, knightSquares, 1), j)

	report, err := ReadReport(path)
	if err != nil {
		t.Fatalf("err -- %s", err)
	}
	if report.RunID != "run" || len(report.Results) != 1 {
		t.Fatalf("unexpected report %+v", report)
	}
	if report.Results[0].Total != results[0].Total {
		t.Fatalf("report total %d, want %d", report.Results[0].Total, results[0].Total)
	}
}

func TestParallelProgressCountsWholePiece(t *testing.T) {
	// each default king placement hides one of e1, f8 and b5
	cfg := smallConfig("N", 3, []string{"c2", "e2", "c6", "e6", "e1", "f8", "b5"}, 3)
	cfg.ProgressEvery = 1

	pool, err := oracle.NewPool(cfg.Oracle, cfg.Workers)
	if err != nil {
		t.Fatalf("err -- %s", err)
	}
	e, err := NewEnumerator(cfg, pool, nil)
	if err != nil {
		t.Fatalf("err -- %s", err)
	}
	var buf bytes.Buffer
	e.SetProgress(NewProgress(&buf, cfg.ProgressEvery, false, e.Positions()))

	results, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("err -- %s", err)
	}

	last := -1
	for _, line := range strings.Split(buf.String(), "\n") {
		var n int
		if _, err := fmt.Sscanf(line, "N: %d moves seen", &n); err == nil {
			last = n
		}
	}
	if last != results[0].Total {
		t.Fatalf("last progress line saw %d moves, piece has %d", last, results[0].Total)
	}
}
