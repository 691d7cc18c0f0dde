package api

import (
	"context"
	"time"

	"github.com/posetrank/posetrank/pkg/order/rank"
	"github.com/posetrank/posetrank/pkg/pipeline"
)

// Analysis is a stored analysis run. Exact statistics are absent when
// enumeration hit its limits; the rank intervals are always present.
// Stores define their own wire form; see MongoStore's analysisDoc.
type Analysis struct {
	ID           string           `json:"id"`
	CreatedAt    time.Time        `json:"created_at"`
	Options      pipeline.Options `json:"options"`
	RelationHash string           `json:"relation_hash"`
	Labels       []string         `json:"labels"`
	Intervals    []rank.Interval  `json:"intervals"`
	Stats        *rank.Result     `json:"stats,omitempty"`
	Intractable  bool             `json:"intractable,omitempty"`
	Detail       string           `json:"detail,omitempty"`
}

// Store persists analyses. Implementations must be safe for concurrent use.
type Store interface {
	// Put stores an analysis under its ID.
	Put(ctx context.Context, a *Analysis) error

	// Get retrieves an analysis. A missing ID yields an error with code
	// [errors.ErrCodeAnalysisNotFound].
	Get(ctx context.Context, id string) (*Analysis, error)

	// Close releases any resources held by the store.
	Close(ctx context.Context) error
}
