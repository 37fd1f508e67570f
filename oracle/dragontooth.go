package oracle

import (
	"strings"

	"github.com/dylhunn/dragontoothmg"
	"github.com/garlicgarrison/san-census/placement"
)

// Dragontooth generates legal moves with dragontoothmg, which only speaks
// UCI, and writes the SAN itself.
type Dragontooth struct{}

func (Dragontooth) Name() string { return DragontoothName }

func (d Dragontooth) LegalMoves(fen string) (moves []string, err error) {
	defer guard(d.Name(), fen, &err)

	board := dragontoothmg.ParseFen(fen)
	them := board.Black
	if !board.Wtomove {
		them = board.White
	}

	legal := []dragontoothmg.Move{}
	for _, m := range board.GenerateLegalMoves() {
		if them.Kings&bit(m.To()) != 0 {
			continue
		}
		legal = append(legal, m)
	}

	moves = make([]string, 0, len(legal))
	for _, m := range legal {
		moves = append(moves, encodeSAN(&board, legal, m))
	}
	return moves, nil
}

func bit(sq uint8) uint64 {
	return uint64(1) << sq
}

func sides(b *dragontoothmg.Board) (us, them *dragontoothmg.Bitboards) {
	if b.Wtomove {
		return &b.White, &b.Black
	}
	return &b.Black, &b.White
}

func pieceAt(bb *dragontoothmg.Bitboards, sq uint8) dragontoothmg.Piece {
	mask := bit(sq)
	switch {
	case bb.Pawns&mask != 0:
		return dragontoothmg.Pawn
	case bb.Knights&mask != 0:
		return dragontoothmg.Knight
	case bb.Bishops&mask != 0:
		return dragontoothmg.Bishop
	case bb.Rooks&mask != 0:
		return dragontoothmg.Rook
	case bb.Queens&mask != 0:
		return dragontoothmg.Queen
	case bb.Kings&mask != 0:
		return dragontoothmg.King
	default:
		return dragontoothmg.Nothing
	}
}

var pieceLetters = map[dragontoothmg.Piece]string{
	dragontoothmg.Knight: "N",
	dragontoothmg.Bishop: "B",
	dragontoothmg.Rook:   "R",
	dragontoothmg.Queen:  "Q",
	dragontoothmg.King:   "K",
}

func squareName(sq uint8) string {
	return placement.Square(sq).String()
}

/*
	encodeSAN writes m in short algebraic notation. The origin is added
	only when another piece of the same kind can legally reach the same
	square: its file if that is unique, else its rank, else both.
*/
func encodeSAN(b *dragontoothmg.Board, legal []dragontoothmg.Move, m dragontoothmg.Move) string {
	us, them := sides(b)
	from, to := m.From(), m.To()
	piece := pieceAt(us, from)

	var sb strings.Builder
	fileDiff := int(to%8) - int(from%8)
	switch {
	case piece == dragontoothmg.King && fileDiff == 2:
		sb.WriteString("O-O")
	case piece == dragontoothmg.King && fileDiff == -2:
		sb.WriteString("O-O-O")
	case piece == dragontoothmg.Pawn:
		// diagonal pawn moves are captures, en passant included
		if fileDiff != 0 {
			sb.WriteString(squareName(from)[:1])
			sb.WriteString("x")
		}
		sb.WriteString(squareName(to))
		if promo, ok := pieceLetters[m.Promote()]; ok {
			sb.WriteString("=" + promo)
		}
	default:
		sb.WriteString(pieceLetters[piece])
		sb.WriteString(disambiguation(us, legal, m, piece))
		if them.All&bit(to) != 0 {
			sb.WriteString("x")
		}
		sb.WriteString(squareName(to))
	}

	unapply := b.Apply(m)
	if b.OurKingInCheck() {
		if len(b.GenerateLegalMoves()) == 0 {
			sb.WriteString("#")
		} else {
			sb.WriteString("+")
		}
	}
	unapply()

	return sb.String()
}

func disambiguation(us *dragontoothmg.Bitboards, legal []dragontoothmg.Move, m dragontoothmg.Move, piece dragontoothmg.Piece) string {
	if piece == dragontoothmg.King {
		return ""
	}

	from, to := m.From(), m.To()
	var clash, sameFile, sameRank bool
	for _, other := range legal {
		if other.To() != to || other.From() == from || pieceAt(us, other.From()) != piece {
			continue
		}
		clash = true
		if other.From()%8 == from%8 {
			sameFile = true
		}
		if other.From()/8 == from/8 {
			sameRank = true
		}
	}

	origin := squareName(from)
	switch {
	case !clash:
		return ""
	case !sameFile:
		return origin[:1]
	case !sameRank:
		return origin[1:]
	default:
		return origin
	}
}
