package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/danielpatrickdp/adaptive-ui/go-engine/internal/journal"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to transitions journal database")
	last := flag.Int("last", 20, "show N most recent transitions")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/journal.db [--last N] [--json]")
		os.Exit(2)
	}

	store, err := journal.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := runListMode(store, *last, *jsonOut); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region list-mode

type listRow struct {
	TransitionID string  `json:"transition_id"`
	From         string  `json:"from"`
	To           string  `json:"to"`
	Confidence   float64 `json:"confidence"`
	ErrorRate    float64 `json:"error_rate"`
	Variety      int     `json:"action_variety"`
	CreatedAt    string  `json:"created_at"`
}

func runListMode(store *journal.Store, last int, jsonOut bool) error {
	entries, err := store.List(last)
	if err != nil {
		return err
	}

	rows := make([]listRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, listRow{
			TransitionID: e.TransitionID,
			From:         string(e.Previous),
			To:           string(e.Next),
			Confidence:   e.Confidence,
			ErrorRate:    e.Metrics.ErrorRate,
			Variety:      e.Metrics.ActionVariety,
			CreatedAt:    e.CreatedAt.Format(time.RFC3339),
		})
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	fmt.Printf("%-36s  %-12s  %-12s  %5s  %5s  %s\n",
		"TRANSITION", "FROM", "TO", "CONF", "ERR", "CREATED")
	for _, r := range rows {
		fmt.Printf("%-36s  %-12s  %-12s  %5.2f  %5.2f  %s\n",
			r.TransitionID, r.From, r.To, r.Confidence, r.ErrorRate, r.CreatedAt)
	}
	return nil
}

// #endregion list-mode
