package application

import (
	"errors"
	"fmt"

	"github.com/pawfectmatch/adoption-api/internal/domains/listings/domain"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid listing input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrEmptyBreed) ||
		errors.Is(err, domain.ErrEmptyAge) ||
		errors.Is(err, domain.ErrEmptyType) ||
		errors.Is(err, domain.ErrEmptyLocation) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
