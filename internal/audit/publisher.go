package audit

import (
	"context"
	"log/slog"
	"sync"

	"biblio/pkg/domain"
	"biblio/pkg/requestcontext"
)

// Publisher fans events into a Store, synchronously by default or through a
// buffered channel when async mode is enabled. Emit never blocks domain
// operations on sink failures; a full async buffer drops the event and logs.
type Publisher struct {
	store  Store
	logger *slog.Logger

	buffer  chan Event
	done    chan struct{}
	closeMu sync.Once
}

type PublisherOption func(*Publisher)

// WithAsyncBuffer enables asynchronous emission with the given buffer size.
func WithAsyncBuffer(size int) PublisherOption {
	return func(p *Publisher) {
		if size > 0 {
			p.buffer = make(chan Event, size)
		}
	}
}

func WithLogger(logger *slog.Logger) PublisherOption {
	return func(p *Publisher) {
		if logger != nil {
			p.logger = logger
		}
	}
}

func NewPublisher(store Store, opts ...PublisherOption) *Publisher {
	p := &Publisher{
		store:  store,
		logger: slog.Default(),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.buffer != nil {
		go p.drain()
	}
	return p
}

// Emit records an event, stamping the request time if unset.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if p.buffer == nil {
		return p.store.Append(ctx, event)
	}
	select {
	case p.buffer <- event:
		return nil
	default:
		p.logger.Warn("audit buffer full, dropping event", "action", event.Action)
		return nil
	}
}

// List exposes stored events, mainly for tests and admin inspection.
func (p *Publisher) List(ctx context.Context, patronID domain.PatronID) ([]Event, error) {
	return p.store.ListByPatron(ctx, patronID)
}

// Close stops the async drain loop, flushing buffered events first.
func (p *Publisher) Close() {
	p.closeMu.Do(func() {
		if p.buffer != nil {
			close(p.buffer)
			<-p.done
		}
	})
}

func (p *Publisher) drain() {
	defer close(p.done)
	for event := range p.buffer {
		if err := p.store.Append(context.Background(), event); err != nil {
			p.logger.Error("failed to append audit event", "action", event.Action, "error", err)
		}
	}
}
