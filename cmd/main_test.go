package main

import (
	"bytes"
	"log"
	"testing"

	"github.com/garlicgarrison/san-census/census"
)

func TestCountDestinations(t *testing.T) {
	report := &census.Report{
		Results: []census.Result{
			{Piece: "N", Counts: map[string]int{"Nc2d4": 2, "Nd4": 5, "N2b4": 1}},
			{Piece: "R", Counts: map[string]int{"Rad1": 3}},
		},
	}

	counts, err := countDestinations(report)
	if err != nil {
		t.Fatalf("err -- %s", err)
	}
	if counts["Nd4"] != 7 || counts["Nb4"] != 1 || counts["Rd1"] != 3 || len(counts) != 3 {
		t.Fatalf("unexpected counts %v", counts)
	}

	var buf bytes.Buffer
	if err := writeSortedCounts(&buf, counts); err != nil {
		t.Fatalf("err -- %s", err)
	}
	log.Printf("counts: %s", buf.String())

	want := "{\n    \"Nd4\": 7,\n    \"Rd1\": 3,\n    \"Nb4\": 1\n}\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestCountRejectsBadMove(t *testing.T) {
	report := &census.Report{
		Results: []census.Result{{Piece: "N", Counts: map[string]int{"??": 1}}},
	}
	if _, err := countDestinations(report); err == nil {
		t.Fatalf("expected an error")
	}
}

func TestRootFlags(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"config", "output", "oracle", "workers"} {
		if root.Flags().Lookup(name) == nil {
			t.Fatalf("missing flag --%s", name)
		}
	}

	count, _, err := root.Find([]string{"count"})
	if err != nil || count.Name() != "count" {
		t.Fatalf("count subcommand not found -- %v", err)
	}
}
