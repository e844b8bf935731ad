package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrValidation = errors.New("validation") // 400
	ErrNotFound   = errors.New("not found")  // 404
	ErrConflict   = errors.New("conflict")   // 409
)

var (
	ErrInvalidLocation   = fmt.Errorf("%w: invalid location", ErrValidation)
	ErrStoreClosed       = fmt.Errorf("%w: store is closed", ErrValidation)
	ErrInvalidTransition = fmt.Errorf("%w: invalid status transition", ErrConflict)
	ErrInsufficientStock = fmt.Errorf("%w: insufficient stock", ErrConflict)
	ErrStoreExists       = fmt.Errorf("%w: store already registered", ErrConflict)
)

// notFound maps gorm.ErrRecordNotFound onto ErrNotFound and passes other errors through.
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	}
	return err
}
