package census

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"

	svg "github.com/ajstarks/svgo"
	"github.com/garlicgarrison/san-census/notation"
)

const (
	cellSize    = 40
	boardMargin = 30
)

// Heatmap draws, for every finished piece, an 8x8 board where each square
// shows how many distinct disambiguated notations land on it.
type Heatmap struct {
	path    string
	results []Result
}

func NewHeatmap(path string) *Heatmap {
	return &Heatmap{path: path}
}

func (h *Heatmap) WriteResult(r Result) error {
	h.results = append(h.results, r)

	var buf bytes.Buffer
	if err := RenderHeatmap(&buf, h.results); err != nil {
		return err
	}

	err := ioutil.WriteFile(h.path, buf.Bytes(), 0644)
	if err != nil {
		return fmt.Errorf("write %s: %w", h.path, err)
	}
	return nil
}

func (h *Heatmap) Close() error {
	return nil
}

// DisambiguatedByDestination counts non-normal moves per destination,
// indexed [file][rank].
func DisambiguatedByDestination(moves []string) ([8][8]int, error) {
	grid := [8][8]int{}
	for _, m := range moves {
		b, err := notation.Classify(m)
		if err != nil {
			return grid, fmt.Errorf("classify %q: %w", m, err)
		}
		if b == notation.Normal {
			continue
		}

		dest := m[len(m)-2:]
		grid[dest[0]-'a'][dest[1]-'1']++
	}
	return grid, nil
}

func RenderHeatmap(w io.Writer, results []Result) error {
	boardSize := 8*cellSize + 2*boardMargin
	width := boardSize * len(results)
	if width == 0 {
		width = boardSize
	}

	canvas := svg.New(w)
	canvas.Start(width, boardSize)
	canvas.Rect(0, 0, width, boardSize, "fill:white")

	for i, r := range results {
		grid, err := DisambiguatedByDestination(r.Moves)
		if err != nil {
			return err
		}

		peak := 1
		for _, col := range grid {
			for _, n := range col {
				if n > peak {
					peak = n
				}
			}
		}

		x0 := i*boardSize + boardMargin
		y0 := boardMargin
		canvas.Text(x0, y0-10, fmt.Sprintf("%s (%d moves)", r.Piece, r.Total), "font-family:monospace;font-size:14px")
		for f := 0; f < 8; f++ {
			for rk := 0; rk < 8; rk++ {
				n := grid[f][rk]
				x := x0 + f*cellSize
				y := y0 + (7-rk)*cellSize
				shade := 255 - n*200/peak
				canvas.Rect(x, y, cellSize, cellSize, fmt.Sprintf("fill:rgb(255,%d,%d);stroke:gray", shade, shade))
				canvas.Text(x+cellSize/2, y+cellSize/2+5, fmt.Sprintf("%d", n), "text-anchor:middle;font-family:monospace;font-size:12px")
			}
		}
	}

	canvas.End()
	return nil
}
