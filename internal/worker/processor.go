package worker

import (
	"fmt"

	"storefront/internal/events"
	"storefront/internal/logger"
)

// ViewCounter is the slice of the database the worker writes.
type ViewCounter interface {
	IncrementViews(productID string) error
}

type Processor struct {
	counter ViewCounter
	logger  *logger.Logger
}

func NewProcessor(counter ViewCounter, logger *logger.Logger) *Processor {
	return &Processor{
		counter: counter,
		logger:  logger,
	}
}

func (p *Processor) Process(event events.Event) error {
	switch event.Type {
	case events.TypeProductViewed:
		if event.ProductID == "" {
			return fmt.Errorf("product.viewed event without product id")
		}
		return p.counter.IncrementViews(event.ProductID)
	case events.TypeAddedToCart:
		p.logger.Debug("Product %s added to cart by session %s", event.ProductID, event.SessionID)
		return nil
	default:
		p.logger.Debug("Ignoring event type %s", event.Type)
		return nil
	}
}
