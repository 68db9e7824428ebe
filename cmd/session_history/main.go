package main

import (
	"flag"
	"fmt"
	"log"

	"whoannex/database"
	"whoannex/internal/config"
)

// История запусков извлечения: список сессий и сравнение значений
// между двумя запусками.
func main() {
	dbPath := flag.String("db", "", "path to the session database (default from config)")
	limit := flag.Int("limit", 20, "number of sessions to list")
	diffOld := flag.String("diff-old", "", "older session id for a diff")
	diffNew := flag.String("diff-new", "", "newer session id for a diff")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *dbPath == "" {
		*dbPath = cfg.SessionDBPath
	}

	store, err := database.OpenSessionStore(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open session store: %v", err)
	}
	defer store.Close()

	if *diffOld != "" || *diffNew != "" {
		if *diffOld == "" || *diffNew == "" {
			log.Fatalf("Both -diff-old and -diff-new are required for a diff")
		}
		runDiff(store, *diffOld, *diffNew)
		return
	}

	sessions, err := store.ListSessions(*limit)
	if err != nil {
		log.Fatalf("Failed to list sessions: %v", err)
	}
	if len(sessions) == 0 {
		fmt.Println("No extraction sessions recorded yet")
		return
	}

	fmt.Printf("%-36s  %-19s  %-9s  %9s  %10s  %7s\n",
		"SESSION", "STARTED", "STATUS", "COUNTRIES", "INDICATORS", "SKIPPED")
	for _, s := range sessions {
		fmt.Printf("%-36s  %-19s  %-9s  %9d  %10d  %7d\n",
			s.ID, s.StartedAt.Format("2006-01-02 15:04:05"), s.Status,
			s.Countries, s.Indicators, s.SkippedRows)
	}
}

// runDiff печатает изменения значений между двумя сессиями
func runDiff(store *database.SessionStore, oldID, newID string) {
	changes, err := store.DiffSessions(oldID, newID)
	if err != nil {
		log.Fatalf("Failed to diff sessions: %v", err)
	}
	if len(changes) == 0 {
		fmt.Println("No changes between sessions")
		return
	}

	fmt.Printf("%d changes between sessions:\n\n", len(changes))
	for _, change := range changes {
		switch {
		case change.OldValue == nil:
			fmt.Printf("+ %s (%s) %s = %v\n",
				change.LocationCode, change.CountryName, change.Indicator, *change.NewValue)
		case change.NewValue == nil:
			fmt.Printf("- %s (%s) %s (was %v)\n",
				change.LocationCode, change.CountryName, change.Indicator, *change.OldValue)
		default:
			fmt.Printf("~ %s (%s) %s: %v -> %v\n",
				change.LocationCode, change.CountryName, change.Indicator,
				*change.OldValue, *change.NewValue)
		}
	}
}
