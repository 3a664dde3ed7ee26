package messaging

import (
	"context"
	"errors"

	"github.com/Haleralex/branchledger/internal/application/ports"
	"github.com/Haleralex/branchledger/internal/domain/events"
)

// Compile-time check
var _ ports.EventPublisher = (*FanoutPublisher)(nil)

// FanoutPublisher отдаёт каждое событие всем publishers.
// Ошибка одного не мешает остальным; ошибки объединяются через errors.Join.
type FanoutPublisher struct {
	publishers []ports.EventPublisher
}

// NewFanoutPublisher создаёт FanoutPublisher. nil-элементы пропускаются.
func NewFanoutPublisher(publishers ...ports.EventPublisher) *FanoutPublisher {
	f := &FanoutPublisher{}
	for _, p := range publishers {
		if p != nil {
			f.publishers = append(f.publishers, p)
		}
	}
	return f
}

func (f *FanoutPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	var errs []error
	for _, p := range f.publishers {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f *FanoutPublisher) PublishBatch(ctx context.Context, evts []events.DomainEvent) error {
	var errs []error
	for _, p := range f.publishers {
		if err := p.PublishBatch(ctx, evts); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
