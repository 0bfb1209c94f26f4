// Command contenders reads a week's contention input as JSON and prints
// whether each member can still win it.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/omarshaarawi/bigdogpool/internal/contention"
)

type document struct {
	contention.Input
	AllowTies *bool `json:"allowTies,omitempty"`
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		slog.Error("Error computing contenders", "error", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	flags := flag.NewFlagSet("contenders", flag.ContinueOnError)
	exhaustive := flags.Bool("exhaustive", false, "Walk every outcome instead of the pruned search")
	maxGames := flags.Int("max-games", contention.DefaultMaxRemainingGames, "Refuse inputs with more remaining games than this")
	workers := flags.Int("workers", 1, "Parallel search workers")
	if err := flags.Parse(args); err != nil {
		return err
	}

	in := stdin
	if path := flags.Arg(0); path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		in = f
	}

	var doc document
	if err := json.NewDecoder(in).Decode(&doc); err != nil {
		return fmt.Errorf("decoding input: %w", err)
	}

	opts := contention.Options{
		AllowTies:         true,
		MaxRemainingGames: *maxGames,
		Workers:           *workers,
	}
	if doc.AllowTies != nil {
		opts.AllowTies = *doc.AllowTies
	}

	compute := contention.Compute
	if *exhaustive {
		compute = contention.Exhaustive
	}
	result, err := compute(doc.Input, opts)
	if err != nil {
		return err
	}

	seen := make(map[string]bool, len(doc.Members))
	for _, m := range doc.Members {
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		status := "eliminated"
		if result[m.ID] {
			status = "alive"
		}
		if _, err := fmt.Fprintf(stdout, "%s\t%s\t%s\n", m.ID, m.Name, status); err != nil {
			return err
		}
	}
	return nil
}
