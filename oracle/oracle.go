package oracle

import (
	"errors"
	"fmt"
)

var (
	ErrOracleFailure = errors.New("oracle failure")
	ErrUnknownOracle = errors.New("unknown oracle")
)

const (
	GoChessName     = "gochess"
	DragontoothName = "dragontooth"
)

// Oracle lists the legal moves of the side to move in standard algebraic notation.
type Oracle interface {
	Name() string
	LegalMoves(fen string) ([]string, error)
}

// New returns a fresh oracle instance by name.
func New(name string) (Oracle, error) {
	switch name {
	case GoChessName, "":
		return GoChess{}, nil
	case DragontoothName:
		return Dragontooth{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOracle, name)
	}
}

// guard turns a panic inside a rules library into an error.
func guard(name, fen string, err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: %s on %q: %v", ErrOracleFailure, name, fen, r)
	}
}
