// Package service holds the integrity rules and the hydrating read façade
// that sit between the HTTP handlers and the repositories.
package service

import (
	"context"
	"log/slog"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/notifications"
	"inkwell/internal/observability"
)

// publish sends ev after a committed write. Failures are logged and dropped;
// the write has already happened.
func publish(ctx context.Context, p notifications.Publisher, ev notifications.Event) {
	if p == nil {
		return
	}
	if err := p.PublishEvent(ctx, ev); err != nil {
		middleware.Logger.WarnContext(ctx, "Failed to publish event",
			slog.String("event_type", ev.Type),
			slog.Uint64("entity_id", uint64(ev.EntityID)),
			slog.String("error", err.Error()),
		)
	}
}

func deletedEvent(eventType, entity string, id uint, res models.DeleteResult) notifications.Event {
	ev := notifications.NewEvent(eventType, entity, id)
	if len(res.Posts) > 0 || len(res.Comments) > 0 {
		ev.Cascade = &notifications.Cascade{Posts: res.Posts, Comments: res.Comments}
	}
	return ev
}

// rejectValidation counts and wraps an input validation failure.
func rejectValidation(resource string, err error) error {
	observability.RecordRejection(resource, observability.ReasonValidation)
	return models.NewValidationError(err.Error())
}

// resolve looks up a referenced row and turns NOT_FOUND into INVALID_REFERENCE.
func resolve(ctx context.Context, resource, refName string, id uint, get func(context.Context, uint) error) error {
	err := get(ctx, id)
	if err == nil {
		return nil
	}
	if models.HasCode(err, models.CodeNotFound) {
		observability.RecordRejection(resource, observability.ReasonInvalidReference)
		return models.NewInvalidReferenceError(refName, id)
	}
	return err
}

// remapConstraint turns a store-level foreign key rejection, which can only
// happen when a referenced row vanished between resolve and the write, into
// INVALID_REFERENCE. recheck names the missing reference when it can.
func remapConstraint(ctx context.Context, resource string, err error, recheck func(context.Context) error) error {
	if !models.HasCode(err, models.CodeConstraintViolation) {
		return err
	}
	observability.RecordRejection(resource, observability.ReasonConstraintRace)
	if recheck != nil {
		if rerr := recheck(ctx); models.HasCode(rerr, models.CodeInvalidReference) {
			return rerr
		}
	}
	return &models.AppError{
		Code:    models.CodeInvalidReference,
		Message: "referenced row no longer exists",
		Err:     err,
	}
}
