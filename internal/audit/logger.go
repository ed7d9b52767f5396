package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/material-rental/internal/infra/docstore"
	"github.com/BruksfildServices01/material-rental/internal/models"
	"github.com/BruksfildServices01/material-rental/internal/timezone"
)

const collection = "audit"

type Logger struct {
	store docstore.Store
}

func New(store docstore.Store) *Logger {
	return &Logger{store: store}
}

func (l *Logger) Log(
	ctx context.Context,
	actor string,
	action string,
	entity string,
	entityID string,
	metadata any,
) error {

	entry := models.AuditLog{
		ID:        uuid.NewString(),
		Actor:     actor,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Metadata:  metadata,
		CreatedAt: timezone.Now(),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("audit: marshal: %w", err)
	}
	return l.store.Set(ctx, collection, entry.ID, data)
}

// List returns the audit trail, oldest first.
func (l *Logger) List(ctx context.Context) ([]models.AuditLog, error) {
	docs, err := l.store.List(ctx, collection)
	if err != nil {
		return nil, err
	}

	out := make([]models.AuditLog, 0, len(docs))
	for _, d := range docs {
		var e models.AuditLog
		if err := json.Unmarshal(d.Data, &e); err != nil {
			return nil, fmt.Errorf("audit %s: %w", d.Key, err)
		}
		out = append(out, e)
	}
	sortByTime(out)
	return out, nil
}

type Filter struct {
	Action string
	Entity string
	From   time.Time
	To     time.Time
	Offset int
	Limit  int
}

// Query returns one page of the trail, newest first, and the number of
// entries matching the filter.
func (l *Logger) Query(ctx context.Context, f Filter) ([]models.AuditLog, int, error) {
	all, err := l.List(ctx)
	if err != nil {
		return nil, 0, err
	}

	matched := make([]models.AuditLog, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		e := all[i]
		switch {
		case f.Action != "" && e.Action != f.Action:
			continue
		case f.Entity != "" && e.Entity != f.Entity:
			continue
		case !f.From.IsZero() && e.CreatedAt.Before(f.From):
			continue
		case !f.To.IsZero() && !e.CreatedAt.Before(f.To):
			continue
		}
		matched = append(matched, e)
	}

	total := len(matched)
	if f.Offset >= total {
		return []models.AuditLog{}, total, nil
	}
	end := total
	if f.Limit > 0 && f.Offset+f.Limit < end {
		end = f.Offset + f.Limit
	}
	return matched[f.Offset:end], total, nil
}
