package store

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/mindflow/internal/profile"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ProfileRepo persists full student records keyed by name.
type ProfileRepo interface {
	// Get loads a profile by student name. Returns ErrNotFound if the
	// student has no record.
	Get(ctx context.Context, name string) (*profile.Profile, error)

	// GetOrCreate loads the existing profile for name, or creates an
	// empty one if none exists. An existing record is never replaced;
	// concurrent creators all receive the first stored record.
	GetOrCreate(ctx context.Context, name string) (*profile.Profile, error)

	// Save writes the full record for p.Name, replacing any previous
	// record for that student.
	Save(ctx context.Context, p *profile.Profile) error

	// List returns all stored profiles ordered by name.
	List(ctx context.Context) ([]*profile.Profile, error)

	// Delete removes the record for name. Returns ErrNotFound if the
	// student has no record.
	Delete(ctx context.Context, name string) error
}

// LLMRequestEventData captures a single LLM API call for the event log.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int64
	Timestamp time.Time
	LLMRequestEventData
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // id > After
	Before  int64     // id < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // exact purpose match ("" = any)

	// Descending returns newest events first.
	Descending bool
}

// UsageRow is one line of an aggregated usage report.
type UsageRow struct {
	Key          string // purpose or model, depending on the grouping
	Requests     int
	InputTokens  int64
	OutputTokens int64
	Failures     int
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events in id order, oldest first unless
	// opts.Descending is set.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns a single event by id, or ErrNotFound.
	GetLLMEvent(ctx context.Context, id int64) (*LLMEvent, error)

	// LLMUsageByPurpose aggregates token usage grouped by purpose.
	LLMUsageByPurpose(ctx context.Context) ([]UsageRow, error)

	// LLMUsageByModel aggregates token usage grouped by model.
	LLMUsageByModel(ctx context.Context) ([]UsageRow, error)
}
