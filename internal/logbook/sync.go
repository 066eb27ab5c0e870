package logbook

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"
)

// Stats tracks sync progress.
type Stats struct {
	Pending       int
	BatchesSent   int
	BatchesFailed int
	SetsSynced    int
}

// Syncer drains the local queue into the server, one batch per category and
// day so the server assigns contiguous set numbers within each training day.
type Syncer struct {
	client *Client
	state  *StateDB
	dryRun bool
	log    *slog.Logger
	stats  Stats
}

// NewSyncer creates a new Syncer.
func NewSyncer(client *Client, state *StateDB, dryRun bool, log *slog.Logger) *Syncer {
	return &Syncer{client: client, state: state, dryRun: dryRun, log: log}
}

type batchKey struct {
	category string
	day      string
}

// Run executes the sync pipeline.
func (s *Syncer) Run() (*Stats, error) {
	pending, err := s.state.Pending()
	if err != nil {
		return &s.stats, fmt.Errorf("loading pending sets: %w", err)
	}
	s.stats.Pending = len(pending)
	if len(pending) == 0 {
		return &s.stats, nil
	}

	batches := make(map[batchKey][]PendingSet)
	for _, set := range pending {
		k := batchKey{category: set.Category, day: set.Day}
		batches[k] = append(batches[k], set)
	}

	// Stable order so retries after a partial failure replay the same way.
	keys := make([]batchKey, 0, len(batches))
	for k := range batches {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].day != keys[j].day {
			return keys[i].day < keys[j].day
		}
		return keys[i].category < keys[j].category
	})

	for _, k := range keys {
		batch := batches[k]
		if s.dryRun {
			s.log.Info("would sync batch",
				"category", k.category, "day", k.day, "sets", len(batch))
			continue
		}

		if err := s.client.SendSets(k.category, k.day, batch); err != nil {
			s.stats.BatchesFailed++
			s.log.Error("syncing batch failed",
				"category", k.category, "day", k.day, "error", err)
			continue
		}

		ids := make([]uuid.UUID, 0, len(batch))
		for _, set := range batch {
			ids = append(ids, set.ID)
		}
		if err := s.state.MarkSynced(ids); err != nil {
			return &s.stats, fmt.Errorf("marking batch synced: %w", err)
		}

		s.stats.BatchesSent++
		s.stats.SetsSynced += len(batch)
		s.log.Info("synced batch",
			"category", k.category, "day", k.day, "sets", len(batch))
	}

	return &s.stats, nil
}
