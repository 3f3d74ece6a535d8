package orders

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"concierge/models"
)

// allowedTransitions is the lifecycle table. Completed and cancelled are
// terminal; nothing leaves them.
var allowedTransitions = map[models.Status][]models.Status{
	models.StatusPending:    {models.StatusConfirmed, models.StatusInProgress, models.StatusCompleted, models.StatusCancelled},
	models.StatusConfirmed:  {models.StatusInProgress, models.StatusCompleted, models.StatusCancelled},
	models.StatusInProgress: {models.StatusCompleted, models.StatusCancelled},
	models.StatusCompleted:  {},
	models.StatusCancelled:  {},
}

// CanTransition reports whether the lifecycle allows from -> to.
func CanTransition(from, to models.Status) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// TransitionManager validates status changes and routes each update to the
// adapter owning the booking's source type. Updates are optimistic: the local
// status flips before the remote call and rolls back on failure.
type TransitionManager struct {
	Sources Registry
	Logger  *zap.Logger
}

// NewTransitionManager wires the manager over the source registry.
func NewTransitionManager(sources Registry, logger *zap.Logger) *TransitionManager {
	return &TransitionManager{Sources: sources, Logger: logger}
}

// Transition applies target to the booking. On a guard rejection no network
// call is issued and the booking is untouched. On success the echoed upstream
// record is re-normalized and returned, so server-side effects (timestamps and
// the like) are reflected rather than trusting the optimistic copy.
func (m *TransitionManager) Transition(ctx context.Context, booking *models.Booking, target models.Status) (models.Booking, error) {
	if !CanTransition(booking.Status, target) {
		return models.Booking{}, &InvalidTransitionError{From: booking.Status, To: target}
	}

	source, ok := m.Sources[booking.SourceType]
	if !ok {
		return models.Booking{}, fmt.Errorf("no source registered for type %q", booking.SourceType)
	}

	previous := booking.Status
	booking.Status = target

	updated, err := source.UpdateStatus(ctx, booking.ID, target)
	if err != nil {
		booking.Status = previous
		m.Logger.Warn("status update failed, rolled back",
			zap.String("bookingId", booking.ID),
			zap.String("source", string(booking.SourceType)),
			zap.String("from", string(previous)),
			zap.String("to", string(target)),
			zap.Error(err),
		)
		return models.Booking{}, err
	}

	*booking = updated
	m.Logger.Info("booking status updated",
		zap.String("bookingId", booking.ID),
		zap.String("source", string(booking.SourceType)),
		zap.String("from", string(previous)),
		zap.String("to", string(updated.Status)),
	)
	return updated, nil
}
