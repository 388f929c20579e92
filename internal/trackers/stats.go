package trackers

import (
	"context"
	"log"
	"time"

	"github.com/shubGupta10/notenest/internal/docstore"
)

// Stats summarizes one tracker's entries for a single month.
type Stats struct {
	Total             int     `json:"total"`
	Success           int     `json:"success"`
	Missed            int     `json:"missed"`
	SuccessPercentage float64 `json:"successPercentage"`
	MissedPercentage  float64 `json:"missedPercentage"`
}

// StatsResult is the soft-failure envelope for a stats query.
type StatsResult struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
	Data    Stats  `json:"data"`
}

// Aggregator computes monthly statistics over recorded entries. The month
// window goes by when the entry was recorded, not the day it describes.
type Aggregator struct {
	store docstore.Store
}

func NewAggregator(store docstore.Store) *Aggregator {
	return &Aggregator{store: store}
}

// MonthlyStats counts the tracker's entries recorded in the given month and
// year. An empty month answers all-zero stats, not a failure.
func (aggregator *Aggregator) MonthlyStats(ctx context.Context, trackerID string, month time.Month, year int) StatsResult {
	documents, err := aggregator.store.List(ctx, collectionEntries, map[string]any{"trackerId": trackerID})
	if err != nil {
		log.Printf("trackers: monthly stats: %v", err)
		return StatsResult{OK: false, Message: "Failed to fetch stats."}
	}

	stats := Stats{}
	for _, document := range documents {
		recorded := document.CreatedAt
		if recorded.Month() != month || recorded.Year() != year {
			continue
		}
		stats.Total++
		if document.Bool("status") {
			stats.Success++
		} else {
			stats.Missed++
		}
	}

	if stats.Total > 0 {
		stats.SuccessPercentage = float64(stats.Success) / float64(stats.Total) * 100
		stats.MissedPercentage = float64(stats.Missed) / float64(stats.Total) * 100
	}
	return StatsResult{OK: true, Data: stats}
}
