package placement

import (
	"errors"
	"fmt"
)

var ErrKingsAdjacent = errors.New("kings stand on adjacent squares")

type KingPlacement struct {
	Black Square
	White Square
}

// DefaultKingPlacements samples a few relative king positions. They do not
// cover every check or mate, which is why normalization drops +/# suffixes.
// Between them every square is free of kings in at least two placements.
var DefaultKingPlacements = []KingPlacement{
	{Black: NewSquare(5, 7), White: NewSquare(7, 7)}, // f8, h8
	{Black: NewSquare(1, 2), White: NewSquare(1, 4)}, // b3, b5
	{Black: NewSquare(4, 0), White: NewSquare(7, 3)}, // e1, h4
}

func (k KingPlacement) Validate() error {
	if !k.Black.Valid() || !k.White.Valid() {
		return fmt.Errorf("%w: kings %d/%d", ErrInvalidSquare, k.Black, k.White)
	}
	if k.Black == k.White {
		return ErrKingsCollide
	}

	df := k.Black.File() - k.White.File()
	dr := k.Black.Rank() - k.White.Rank()
	if df >= -1 && df <= 1 && dr >= -1 && dr <= 1 {
		return ErrKingsAdjacent
	}
	return nil
}

func (k KingPlacement) String() string {
	return fmt.Sprintf("k%s K%s", k.Black, k.White)
}

// ParseKingPlacement reads a pair of square names, black king first.
func ParseKingPlacement(black, white string) (KingPlacement, error) {
	b, err := ParseSquare(black)
	if err != nil {
		return KingPlacement{}, err
	}
	w, err := ParseSquare(white)
	if err != nil {
		return KingPlacement{}, err
	}

	k := KingPlacement{Black: b, White: w}
	return k, k.Validate()
}
