package application

import (
	"errors"
	"fmt"

	"github.com/pawfectmatch/adoption-api/internal/domains/adoptions/domain"
)

var (
	// ErrInvalidInput wraps domain validation failures surfaced by use cases.
	ErrInvalidInput = errors.New("invalid application input")
	// ErrListingUnavailable rejects submissions against listings that are not adoptable.
	ErrListingUnavailable = errors.New("listing is not available for adoption")
	// ErrInvalidDecision rejects verdicts other than approved or rejected.
	ErrInvalidDecision = errors.New("decision must be approved or rejected")
)

func mapError(err error) error {
	switch {
	case errors.Is(err, domain.ErrEmptyApplicantName),
		errors.Is(err, domain.ErrEmptyApplicantEmail),
		errors.Is(err, domain.ErrEmptyApplicantPhone),
		errors.Is(err, domain.ErrEmptyPetID),
		errors.Is(err, domain.ErrInvalidLivingSituation):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	default:
		return err
	}
}
