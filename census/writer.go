package census

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/garlicgarrison/san-census/notation"
)

// Sink receives each finished piece. It must make the result durable
// before returning.
type Sink interface {
	WriteResult(r Result) error
	Close() error
}

/*
	Writer appends one text block per piece, e.g.

		-------- R --------
		['Ra1', 'Raa1']

		124992 iters

		2 total moves
		1 normal moves
		...

	followed by two blank lines, and flushes after every block. The iters
	line is the number of positions evaluated for the piece summed over
	all king placements.
*/
type Writer struct {
	w      *bufio.Writer
	closer io.Closer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// CreateWriter truncates path and writes blocks to it.
func CreateWriter(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}

	return &Writer{w: bufio.NewWriter(f), closer: f}, nil
}

func (w *Writer) WriteResult(r Result) error {
	quoted := make([]string, len(r.Moves))
	for i, m := range r.Moves {
		quoted[i] = "'" + m + "'"
	}

	fmt.Fprintf(w.w, "-------- %s --------\n", r.Piece)
	fmt.Fprintf(w.w, "[%s]\n\n", strings.Join(quoted, ", "))
	fmt.Fprintf(w.w, "%d iters\n\n", r.Iterations)
	fmt.Fprintf(w.w, "%d total moves\n", r.Total)
	for _, b := range notation.Buckets {
		fmt.Fprintf(w.w, "%d %s moves\n", r.BucketCount(b), b)
	}
	fmt.Fprintf(w.w, "\n\n")

	return w.w.Flush()
}

func (w *Writer) Close() error {
	err := w.w.Flush()
	if w.closer == nil {
		return err
	}
	if cerr := w.closer.Close(); err == nil {
		err = cerr
	}
	return err
}

type Report struct {
	RunID   string   `json:"run_id"`
	Oracle  string   `json:"oracle"`
	Results []Result `json:"results"`
}

// JSONWriter rewrites the whole report file each time a piece finishes.
type JSONWriter struct {
	path   string
	report Report
}

func NewJSONWriter(path, runID, oracleName string) *JSONWriter {
	return &JSONWriter{
		path: path,
		report: Report{
			RunID:   runID,
			Oracle:  oracleName,
			Results: []Result{},
		},
	}
}

func (j *JSONWriter) WriteResult(r Result) error {
	j.report.Results = append(j.report.Results, r)

	b, err := json.MarshalIndent(j.report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	err = ioutil.WriteFile(j.path, b, 0644)
	if err != nil {
		return fmt.Errorf("write %s: %w", j.path, err)
	}
	return nil
}

func (j *JSONWriter) Close() error {
	return nil
}

// ReadReport loads a report written by JSONWriter.
func ReadReport(path string) (*Report, error) {
	f, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	r := &Report{}
	err = json.Unmarshal(f, r)
	if err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", path, err)
	}
	return r, nil
}
