package census

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/garlicgarrison/san-census/oracle"
)

const barWidth = 40

// Progress prints a periodic snapshot: the board being evaluated, the
// number of distinct moves seen so far and completion bars.
type Progress struct {
	out       io.Writer
	every     int
	drawBoard bool

	mutex      sync.Mutex
	piece      rune
	pieceDone  int
	pieceTotal int
	runDone    int
	runTotal   int
}

func NewProgress(out io.Writer, every int, drawBoard bool, runTotal int) *Progress {
	return &Progress{
		out:       out,
		every:     every,
		drawBoard: drawBoard,
		runTotal:  runTotal,
	}
}

func (p *Progress) StartPiece(piece rune, total int) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.piece = piece
	p.pieceDone = 0
	p.pieceTotal = total
}

// Step records one evaluated position. seen reports the distinct moves
// found so far and is only called when a snapshot is due.
func (p *Progress) Step(fen string, seen func() int) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.pieceDone++
	p.runDone++
	if p.every <= 0 || p.pieceDone%p.every != 0 {
		return
	}

	if p.drawBoard {
		if drawing, err := oracle.Draw(fen); err == nil {
			fmt.Fprint(p.out, drawing)
		}
	}
	fmt.Fprintf(p.out, "%c: %d moves seen\n", p.piece, seen())
	fmt.Fprintf(p.out, "piece %s\n", bar(p.pieceDone, p.pieceTotal))
	fmt.Fprintf(p.out, "total %s\n", bar(p.runDone, p.runTotal))
}

func bar(done, total int) string {
	if total <= 0 {
		return fmt.Sprintf("[%s] 100.0%%", strings.Repeat("#", barWidth))
	}

	filled := done * barWidth / total
	if filled > barWidth {
		filled = barWidth
	}
	pct := float64(done) * 100 / float64(total)
	return fmt.Sprintf("[%s%s] %5.1f%%", strings.Repeat("#", filled), strings.Repeat(".", barWidth-filled), pct)
}
