package census

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

/*
	Catalogue predicts, per piece, which normalized notations can occur at
	all, from board geometry alone. The census is brute force; the
	catalogue is only used to report where the two disagree.
*/
func Catalogue(piece rune) map[string]bool {
	switch piece {
	case 'R':
		return rookCatalogue()
	case 'Q':
		return queenCatalogue()
	case 'N':
		return knightCatalogue()
	case 'B':
		return bishopCatalogue()
	default:
		return nil
	}
}

// Compare lists predicted moves the census never produced and produced
// moves the catalogue does not predict.
func Compare(piece rune, set *MoveSet) (missing, unexpected []string) {
	predicted := Catalogue(piece)
	if predicted == nil {
		return nil, nil
	}

	for m := range predicted {
		if !set.Has(m) {
			missing = append(missing, m)
		}
	}
	for _, m := range maps.Keys(set.counts) {
		if !predicted[m] {
			unexpected = append(unexpected, m)
		}
	}

	slices.Sort(missing)
	slices.Sort(unexpected)
	return missing, unexpected
}

func file(f int) string { return string(rune('a' + f)) }
func rank(r int) string { return string(rune('1' + r)) }
func sq(f, r int) string { return file(f) + rank(r) }

func onBoard(f, r int) bool {
	return f >= 0 && f < 8 && r >= 0 && r < 8
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func destinations(piece string, out map[string]bool) {
	for f := 0; f < 8; f++ {
		for r := 0; r < 8; r++ {
			out[piece+sq(f, r)] = true
		}
	}
}

// any source file works: the second piece can always come along the rank
func allFiles(piece string, out map[string]bool) {
	for sf := 0; sf < 8; sf++ {
		for f := 0; f < 8; f++ {
			for r := 0; r < 8; r++ {
				out[piece+file(sf)+sq(f, r)] = true
			}
		}
	}
}

func rookCatalogue() map[string]bool {
	out := make(map[string]bool)
	destinations("R", out)
	allFiles("R", out)

	// nothing can sit beyond the first or last rank, and a rook on the
	// destination rank is told apart by its file
	for sr := 0; sr < 8; sr++ {
		for f := 0; f < 8; f++ {
			for r := 1; r < 7; r++ {
				if sr == r {
					continue
				}
				out["R"+rank(sr)+sq(f, r)] = true
			}
		}
	}
	return out
}

func diagonalRanks(f, r int) map[int]bool {
	ranks := make(map[int]bool)
	for sf := 0; sf < 8; sf++ {
		for sr := 0; sr < 8; sr++ {
			if (sf != f || sr != r) && abs(sf-f) == abs(sr-r) {
				ranks[sr] = true
			}
		}
	}
	return ranks
}

func queenCatalogue() map[string]bool {
	out := make(map[string]bool)
	destinations("Q", out)
	allFiles("Q", out)

	for f := 0; f < 8; f++ {
		for r := 0; r < 8; r++ {
			diag := diagonalRanks(f, r)
			for sr := 0; sr < 8; sr++ {
				if (r == 0 || r == 7) && !(diag[sr] || sr == r) {
					continue
				}
				out["Q"+rank(sr)+sq(f, r)] = true
			}
		}
	}

	for sf := 0; sf < 8; sf++ {
		for sr := 0; sr < 8; sr++ {
			for f := 0; f < 8; f++ {
				for r := 0; r < 8; r++ {
					if sf == f && sr == r {
						continue
					}
					if sf != f && sr != r && abs(sf-f) != abs(sr-r) {
						continue
					}

					edgeRank := r == 0 || r == 7
					edgeFile := f == 0 || f == 7
					switch {
					case edgeRank && edgeFile:
						if sf == f || sr == r {
							continue
						}
					case edgeRank:
						if sf == f {
							continue
						}
					case edgeFile:
						if sr == r {
							continue
						}
					}
					out["Q"+sq(sf, sr)+sq(f, r)] = true
				}
			}
		}
	}
	return out
}

var knightJumps = [][2]int{{1, 2}, {2, 1}, {-1, 2}, {-2, 1}, {1, -2}, {2, -1}, {-1, -2}, {-2, -1}}

func knightCatalogue() map[string]bool {
	out := make(map[string]bool)
	destinations("N", out)

	for f := 0; f < 8; f++ {
		for r := 0; r < 8; r++ {
			for d := -2; d <= 2; d++ {
				if d == 0 {
					continue
				}
				if onBoard(f+d, r) {
					out["N"+file(f+d)+sq(f, r)] = true
				}
				// the second knight mirrors the first across the destination rank
				if onBoard(f, r+d) && onBoard(f, r-d) {
					out["N"+rank(r+d)+sq(f, r)] = true
				}
			}
		}
	}

	// three corners of a 5x3 rectangle around the destination
	for f := 1; f < 7; f++ {
		for r := 1; r < 7; r++ {
			if (f == 1 || f == 6) && (r == 1 || r == 6) {
				continue
			}
			for _, j := range knightJumps {
				if onBoard(f+j[0], r+j[1]) {
					out["N"+sq(f+j[0], r+j[1])+sq(f, r)] = true
				}
			}
		}
	}
	return out
}

func bishopCatalogue() map[string]bool {
	out := make(map[string]bool)
	destinations("B", out)

	for f := 0; f < 8; f++ {
		for r := 0; r < 8; r++ {
			// a corner has a single diagonal
			if (f == 0 || f == 7) && (r == 0 || r == 7) {
				continue
			}
			for sf := 0; sf < 8; sf++ {
				d := abs(sf - f)
				if d != 0 && (onBoard(sf, r+d) || onBoard(sf, r-d)) {
					out["B"+file(sf)+sq(f, r)] = true
				}
			}
		}
	}

	// the two bishops on one file sit the same distance above and below
	for f := 0; f < 8; f++ {
		for r := 1; r < 7; r++ {
			reach := r
			if 7-r < reach {
				reach = 7 - r
			}
			for d := 1; d <= reach; d++ {
				out["B"+rank(r-d)+sq(f, r)] = true
				out["B"+rank(r+d)+sq(f, r)] = true
			}
		}
	}

	// corners of a 3x3, 5x5 or 7x7 square around the destination
	for _, dim := range []int{3, 5, 7} {
		h := (dim - 1) / 2
		for f := h; f < 8-h; f++ {
			for r := h; r < 8-h; r++ {
				for _, cf := range []int{f - h, f + h} {
					for _, cr := range []int{r - h, r + h} {
						out["B"+sq(cf, cr)+sq(f, r)] = true
					}
				}
			}
		}
	}
	return out
}
