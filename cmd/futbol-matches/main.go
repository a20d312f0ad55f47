package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/dimitrije/futbol-api/internal/apperr"
	"github.com/dimitrije/futbol-api/internal/collection"
	"github.com/dimitrije/futbol-api/internal/config"
	"github.com/dimitrije/futbol-api/internal/match"
	"github.com/dimitrije/futbol-api/internal/models"
	"github.com/google/uuid"
)

const usage = `Usage: futbol-matches <command> [args]

Commands:
  overview                          available matches and your matches by state
  create <venue-id> <RFC3339 time>  schedule a match as local team
  join <match-id>
  leave <match-id>
  delete <match-id>
  result <match-id> <local> <visiting>
  confirm <match-id>
  reject <match-id>`

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	cfg, err := config.LoadClient()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Token == "" {
		log.Fatal("FUTBOL_TOKEN is required")
	}

	svc := collection.NewService(collection.NewClient(cfg), cfg.CacheMaxAge)
	ctx := context.Background()

	cmd, args := os.Args[1], os.Args[2:]
	if cmd == "overview" {
		overview, err := svc.Overview(ctx)
		if err != nil {
			fail(err)
		}
		printCategories("Available", overview.Available)
		printCategories("Mine", overview.Mine)
		return
	}

	m, err := run(ctx, svc, cmd, args)
	if err != nil {
		fail(err)
	}
	if m == nil {
		fmt.Println("done")
		return
	}
	printMatch(*m)
}

func run(ctx context.Context, svc *collection.Service, cmd string, args []string) (*models.Match, error) {
	switch cmd {
	case "create":
		if len(args) != 2 {
			return nil, usageError()
		}
		venueID, err := uuid.Parse(args[0])
		if err != nil {
			return nil, fmt.Errorf("invalid venue id: %w", err)
		}
		at, err := time.Parse(time.RFC3339, args[1])
		if err != nil {
			return nil, fmt.Errorf("invalid time: %w", err)
		}
		return svc.CreateMatch(ctx, venueID, at)

	case "result":
		if len(args) != 3 {
			return nil, usageError()
		}
		id, err := uuid.Parse(args[0])
		if err != nil {
			return nil, fmt.Errorf("invalid match id: %w", err)
		}
		local, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, fmt.Errorf("invalid local goals: %w", err)
		}
		visiting, err := strconv.Atoi(args[2])
		if err != nil {
			return nil, fmt.Errorf("invalid visiting goals: %w", err)
		}
		return svc.SubmitResult(ctx, id, models.Result{GoalsLocal: local, GoalsVisiting: visiting})
	}

	if len(args) != 1 {
		return nil, usageError()
	}
	id, err := uuid.Parse(args[0])
	if err != nil {
		return nil, fmt.Errorf("invalid match id: %w", err)
	}

	switch cmd {
	case "join":
		return svc.Join(ctx, id)
	case "leave":
		return svc.Leave(ctx, id)
	case "confirm":
		return svc.Confirm(ctx, id)
	case "reject":
		return svc.Reject(ctx, id)
	case "delete":
		return nil, svc.Delete(ctx, id)
	default:
		return nil, usageError()
	}
}

func usageError() error {
	return errors.New(usage)
}

func fail(err error) {
	if apperr.Retryable(err) {
		log.Fatalf("%v\nThe outcome is unknown. Run overview before trying again.", err)
	}
	if code := apperr.CodeOf(err); code != "" {
		log.Fatalf("%s: %v", code, err)
	}
	log.Fatal(err)
}

func printCategories(title string, groups collection.Categories) {
	fmt.Printf("%s:\n", title)
	for _, s := range match.States() {
		for _, m := range groups[s] {
			printMatch(m)
		}
	}
}

func printMatch(m models.Match) {
	line := fmt.Sprintf("  %s  %s  %-22s", m.ID, m.ScheduledAt.Local().Format("2006-01-02 15:04"), match.Derive(&m))
	if m.Result != nil {
		line += fmt.Sprintf("  %d-%d", m.Result.GoalsLocal, m.Result.GoalsVisiting)
	}
	fmt.Println(line)
}
