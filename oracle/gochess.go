package oracle

import (
	"fmt"

	chess "github.com/garlicgarrison/go-chess"
)

// GoChess asks go-chess for legal moves and its SAN encoder for notation.
type GoChess struct{}

func (GoChess) Name() string { return GoChessName }

func (g GoChess) LegalMoves(fen string) (moves []string, err error) {
	defer guard(g.Name(), fen, &err)

	f, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrOracleFailure, err)
	}

	game := chess.NewGame(f)
	position := game.Position()
	board := position.Board()
	notation := chess.AlgebraicNotation{}

	validMoves := game.ValidMoves()
	moves = make([]string, 0, len(validMoves))
	for _, m := range validMoves {
		// taking the king only exists because the side not to move is in check
		if board.Piece(m.S2()).Type() == chess.King {
			continue
		}
		moves = append(moves, notation.Encode(position, m))
	}

	return moves, nil
}

// Draw renders the board of a FEN for progress output.
func Draw(fen string) (string, error) {
	f, err := chess.FEN(fen)
	if err != nil {
		return "", err
	}
	return chess.NewGame(f).Position().Board().Draw(), nil
}
