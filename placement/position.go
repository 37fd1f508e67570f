package placement

import (
	"errors"
	"fmt"
	"strings"
)

// Pieces enumerated by the census, in report order.
const Pieces = "RBNQ"

var (
	ErrInvalidPiece  = errors.New("piece must be one of R, B, N, Q")
	ErrInvalidSquare = errors.New("square out of range")
	ErrKingsCollide  = errors.New("kings share a square")
)

var PieceToBit = map[rune]int8{
	'N': 2,
	'B': 3,
	'R': 4,
	'Q': 5,
	'K': 6,
	'k': 14,
}

var BitToPiece = map[int8]rune{
	2:  'N',
	3:  'B',
	4:  'R',
	5:  'Q',
	6:  'K',
	14: 'k',
}

// Square indexes the board with 0 = a1, 7 = h1 and 56 = a8.
type Square int8

const NumSquares = 64

func NewSquare(file, rank int8) Square {
	return Square(rank*8 + file)
}

func (s Square) File() int8 { return int8(s) % 8 }
func (s Square) Rank() int8 { return int8(s) / 8 }

func (s Square) Valid() bool {
	return s >= 0 && s < NumSquares
}

func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+s.File(), '1'+s.Rank())
}

// ParseSquare reads a square written as file and rank, e.g. "e4".
func ParseSquare(name string) (Square, error) {
	if len(name) != 2 || name[0] < 'a' || name[0] > 'h' || name[1] < '1' || name[1] > '8' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSquare, name)
	}
	return NewSquare(int8(name[0]-'a'), int8(name[1]-'1')), nil
}

// AllSquares returns a1..h8 in index order.
func AllSquares() []Square {
	squares := make([]Square, NumSquares)
	for i := range squares {
		squares[i] = Square(i)
	}
	return squares
}

/*
	Position is an otherwise empty board holding copies of one piece plus
	the two kings. Pieces are placed first and the kings afterwards, so a
	king overwrites a piece standing on its square.
*/
type Position struct {
	Piece   rune
	Squares []Square
	Kings   KingPlacement
}

func ValidPiece(piece rune) bool {
	return strings.ContainsRune(Pieces, piece)
}

// Board returns the position as rows from rank 8 down to rank 1.
func (p Position) Board() ([8][8]int8, error) {
	board := [8][8]int8{}
	if !ValidPiece(p.Piece) {
		return board, ErrInvalidPiece
	}
	if err := p.Kings.Validate(); err != nil {
		return board, err
	}

	for _, sq := range p.Squares {
		if !sq.Valid() {
			return board, fmt.Errorf("%w: %d", ErrInvalidSquare, sq)
		}
		row, col := rowCol(sq)
		board[row][col] = PieceToBit[p.Piece]
	}

	row, col := rowCol(p.Kings.Black)
	board[row][col] = PieceToBit['k']
	row, col = rowCol(p.Kings.White)
	board[row][col] = PieceToBit['K']

	return board, nil
}

// FEN renders the position with white to move and no castling or en passant.
func (p Position) FEN() (string, error) {
	board, err := p.Board()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	writeFEN(&sb, board)
	return sb.String(), nil
}

func rowCol(sq Square) (int8, int8) {
	return 7 - sq.Rank(), sq.File()
}

func writeFEN(sb *strings.Builder, board [8][8]int8) {
	for i, row := range board {
		empty := 0
		for _, val := range row {
			if val == 0 {
				empty++
				continue
			}
			if empty != 0 {
				sb.WriteString(fmt.Sprintf("%d", empty))
			}
			sb.WriteRune(BitToPiece[val])
			empty = 0
		}

		if empty != 0 {
			sb.WriteString(fmt.Sprintf("%d", empty))
		}
		if i != 7 {
			sb.WriteRune('/')
		}
	}

	sb.WriteString(" w - - 0 1")
}
