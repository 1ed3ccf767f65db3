package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Kariqs/confectionary-api/events"
	"gorm.io/gorm"
)

// Controllers map these onto HTTP status codes; wrap them with %w.
var (
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrUnprocessable      = errors.New("unprocessable entity")
	ErrValidation         = errors.New("validation failed")
)

func notFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// lookupError turns gorm's record-not-found into ErrNotFound and passes anything else through.
func lookupError(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(format, args...)
	}
	return err
}

// publish never fails the caller; the write it describes has already been committed.
func publish(ctx context.Context, publisher events.Publisher, topic, key string, payload any) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, topic, key, payload); err != nil {
		log.Printf("Failed to publish %s event: %v", topic, err)
	}
}
