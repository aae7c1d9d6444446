package memory

import (
	"context"
	"log/slog"
	"sync"

	appoutbox "pousada/internal/app/outbox"
)

// Outbox buffers records until Flush and then logs them. There is no broker in memory mode.
type Outbox struct {
	mu        sync.Mutex
	logger    *slog.Logger
	records   []appoutbox.EventRecord
	published []appoutbox.EventRecord
}

func NewOutbox(logger *slog.Logger) *Outbox {
	if logger == nil {
		logger = slog.Default()
	}
	return &Outbox{logger: logger}
}

func (o *Outbox) Add(ctx context.Context, record appoutbox.EventRecord) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.records = append(o.records, record)
	return nil
}

func (o *Outbox) Flush(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, rec := range o.records {
		o.logger.InfoContext(ctx, "event recorded", "event", rec.Name, "aggregate", rec.Aggregate, "id", rec.ID)
	}
	o.published = append(o.published, o.records...)
	o.records = nil
	return nil
}

// Published returns every flushed record in order.
func (o *Outbox) Published() []appoutbox.EventRecord {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]appoutbox.EventRecord, len(o.published))
	copy(out, o.published)
	return out
}

var _ appoutbox.Outbox = (*Outbox)(nil)
