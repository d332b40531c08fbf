package deliver

import (
	"context"
	"errors"
	"log/slog"
)

// MultiDeliverer hands each delivery to several targets.
type MultiDeliverer struct {
	Deliverers []Deliverer
	Logger     *slog.Logger
}

// NewMultiDeliverer creates a deliverer that fans out to deliverers.
// A failing target is logged and does not stop the others.
func NewMultiDeliverer(deliverers ...Deliverer) *MultiDeliverer {
	return &MultiDeliverer{
		Deliverers: deliverers,
		Logger:     slog.Default(),
	}
}

// Deliver implements Deliverer. It returns all target errors joined.
func (m *MultiDeliverer) Deliver(ctx context.Context, d Delivery) error {
	var errs []error
	for _, target := range m.Deliverers {
		if err := target.Deliver(ctx, d); err != nil {
			errs = append(errs, err)
			if m.Logger != nil {
				m.Logger.Warn("deliverer failed",
					"error", err,
					"session_id", d.SessionID,
				)
			}
		}
	}
	return errors.Join(errs...)
}

// NopDeliverer discards every delivery.
type NopDeliverer struct{}

// Deliver implements Deliverer.
func (NopDeliverer) Deliver(context.Context, Delivery) error {
	return nil
}
