package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/meltforce/repwave/internal/catalog"
	"github.com/meltforce/repwave/internal/logbook"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: repwave-log <command> [flags]

Commands:
  set        record a set locally (queued until sync)
  max        record a max-effort test (sent immediately)
  readiness  record a morning readiness score (sent immediately)
  sync       send queued sets to the server
  pending    list queued sets

Server URL and API key come from -server/-key or the REPWAVE_SERVER and
REPWAVE_API_KEY environment variables.
`)
	os.Exit(1)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	state, err := openState()
	if err != nil {
		log.Error("failed to open local queue", "error", err)
		os.Exit(1)
	}
	defer state.Close()

	switch os.Args[1] {
	case "set":
		cmdSet(state, os.Args[2:])
	case "max":
		cmdMax(os.Args[2:], log)
	case "readiness":
		cmdReadiness(os.Args[2:], log)
	case "sync":
		cmdSync(state, os.Args[2:], log)
	case "pending":
		cmdPending(state)
	case "version":
		fmt.Println("repwave-log", Version)
	default:
		usage()
	}
}

func openState() (*logbook.StateDB, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolving home directory: %w", err)
	}
	return logbook.OpenStateDB(filepath.Join(homeDir, ".repwave-log"))
}

// serverFlags registers the connection flags shared by the networked commands.
func serverFlags(fs *flag.FlagSet) (server, key *string) {
	server = fs.String("server", os.Getenv("REPWAVE_SERVER"), "RepWave server URL")
	key = fs.String("key", os.Getenv("REPWAVE_API_KEY"), "API key for write endpoints")
	return server, key
}

func newClient(server, key string) *logbook.Client {
	if server == "" {
		fmt.Fprintln(os.Stderr, "Error: -server or REPWAVE_SERVER is required")
		os.Exit(1)
	}
	return logbook.NewClient(strings.TrimRight(server, "/"), key)
}

func parseDay(s string) string {
	if s == "" {
		return time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid date %q (want YYYY-MM-DD)\n", s)
		os.Exit(1)
	}
	return s
}

func parseCategory(s string) string {
	cat, err := catalog.ParseCategory(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return string(cat)
}

func cmdSet(state *logbook.StateDB, args []string) {
	fs := flag.NewFlagSet("set", flag.ExitOnError)
	category := fs.String("category", "", "movement category (push, pull, legs)")
	reps := fs.Int("reps", 0, "reps performed")
	rpe := fs.Int("rpe", 0, "perceived exertion 1-10 (0 = not recorded)")
	date := fs.String("date", "", "training day (YYYY-MM-DD, default today)")
	fs.Parse(args)

	if *reps <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -reps must be positive")
		os.Exit(1)
	}
	set := logbook.PendingSet{
		Category: parseCategory(*category),
		Day:      parseDay(*date),
		Reps:     *reps,
	}
	if *rpe != 0 {
		if *rpe < 1 || *rpe > 10 {
			fmt.Fprintln(os.Stderr, "Error: -rpe must be 1-10")
			os.Exit(1)
		}
		set.RPE = rpe
	}

	if _, err := state.Enqueue(set); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("queued: %s %d reps on %s (run 'repwave-log sync' to upload)\n",
		set.Category, set.Reps, set.Day)
}

func cmdMax(args []string, log *slog.Logger) {
	fs := flag.NewFlagSet("max", flag.ExitOnError)
	category := fs.String("category", "", "movement category (push, pull, legs)")
	reps := fs.Int("reps", 0, "max-effort reps")
	date := fs.String("date", "", "test day (YYYY-MM-DD, default today)")
	server, key := serverFlags(fs)
	fs.Parse(args)

	if *reps <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -reps must be positive")
		os.Exit(1)
	}
	cat := parseCategory(*category)
	day := parseDay(*date)

	client := newClient(*server, *key)
	if err := client.SendMaxEffort(cat, day, *reps); err != nil {
		log.Error("sending max-effort test failed", "error", err)
		os.Exit(1)
	}
	fmt.Printf("recorded: %s max-effort test, %d reps on %s\n", cat, *reps, day)
}

func cmdReadiness(args []string, log *slog.Logger) {
	fs := flag.NewFlagSet("readiness", flag.ExitOnError)
	score := fs.Int("score", 0, "readiness score 1-5")
	date := fs.String("date", "", "day (YYYY-MM-DD, default today)")
	server, key := serverFlags(fs)
	fs.Parse(args)

	if *score < 1 || *score > 5 {
		fmt.Fprintln(os.Stderr, "Error: -score must be 1-5")
		os.Exit(1)
	}
	day := parseDay(*date)

	client := newClient(*server, *key)
	if err := client.SendReadiness(day, *score); err != nil {
		log.Error("sending readiness failed", "error", err)
		os.Exit(1)
	}
	fmt.Printf("recorded: readiness %d on %s\n", *score, day)
}

func cmdSync(state *logbook.StateDB, args []string, log *slog.Logger) {
	fs := flag.NewFlagSet("sync", flag.ExitOnError)
	dryRun := fs.Bool("dry-run", false, "show what would be sent without sending")
	purgeDays := fs.Int("purge-days", 30, "delete synced rows older than this many days")
	server, key := serverFlags(fs)
	fs.Parse(args)

	var client *logbook.Client
	if !*dryRun {
		client = newClient(*server, *key)
	}

	syncer := logbook.NewSyncer(client, state, *dryRun, log)
	stats, err := syncer.Run()
	if err != nil {
		log.Error("sync failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("pending: %d, batches sent: %d, sets synced: %d, batches failed: %d\n",
		stats.Pending, stats.BatchesSent, stats.SetsSynced, stats.BatchesFailed)
	if stats.BatchesFailed > 0 {
		os.Exit(1)
	}

	if !*dryRun && *purgeDays > 0 {
		cutoff := time.Now().AddDate(0, 0, -*purgeDays)
		if purged, err := state.PurgeSynced(cutoff); err == nil && purged > 0 {
			fmt.Printf("purged %d old synced rows\n", purged)
		}
	}
}

func cmdPending(state *logbook.StateDB) {
	pending, err := state.Pending()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(pending) == 0 {
		fmt.Println("no pending sets")
		return
	}
	for _, set := range pending {
		rpe := "-"
		if set.RPE != nil {
			rpe = fmt.Sprintf("%d", *set.RPE)
		}
		fmt.Printf("%s  %-5s  %3d reps  rpe %s\n", set.Day, set.Category, set.Reps, rpe)
	}
}
