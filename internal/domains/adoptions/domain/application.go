package domain

import (
	"errors"
	"strings"
	"time"
)

// Status models the lifecycle of an adoption application.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// LivingSituation enumerates the applicant's housing type.
type LivingSituation string

const (
	LivingHouse     LivingSituation = "house"
	LivingApartment LivingSituation = "apartment"
	LivingOther     LivingSituation = "other"
)

var (
	ErrEmptyApplicantName     = errors.New("applicant name must not be empty")
	ErrEmptyApplicantEmail    = errors.New("applicant email must not be empty")
	ErrEmptyApplicantPhone    = errors.New("applicant phone must not be empty")
	ErrEmptyPetID             = errors.New("pet id must not be empty")
	ErrInvalidLivingSituation = errors.New("living situation must be house, apartment, or other")
	ErrNotPending             = errors.New("application is no longer pending")
)

// Application is a buyer's request to adopt one pet. PetName is a snapshot
// taken at submission time; the referenced listing may be edited or removed
// afterwards without rewriting the application.
type Application struct {
	ID                string
	PetID             string
	PetName           string
	ApplicantName     string
	ApplicantEmail    string
	ApplicantPhone    string
	Address           string
	Experience        string
	LivingSituation   LivingSituation
	HasYard           bool
	OtherPets         string
	ReasonForAdoption string
	Status            Status
	CreatedAt         time.Time
}

// NewApplication validates the submission and returns a pending application.
func NewApplication(id, petID, petName, applicantName, applicantEmail, applicantPhone string, createdAt time.Time) (*Application, error) {
	if strings.TrimSpace(petID) == "" {
		return nil, ErrEmptyPetID
	}
	if strings.TrimSpace(applicantName) == "" {
		return nil, ErrEmptyApplicantName
	}
	if strings.TrimSpace(applicantEmail) == "" {
		return nil, ErrEmptyApplicantEmail
	}
	if strings.TrimSpace(applicantPhone) == "" {
		return nil, ErrEmptyApplicantPhone
	}
	return &Application{
		ID:              id,
		PetID:           petID,
		PetName:         petName,
		ApplicantName:   applicantName,
		ApplicantEmail:  applicantEmail,
		ApplicantPhone:  applicantPhone,
		LivingSituation: LivingOther,
		Status:          StatusPending,
		CreatedAt:       createdAt,
	}, nil
}

// SetLivingSituation applies the enumerated housing type.
func (a *Application) SetLivingSituation(situation LivingSituation) error {
	switch situation {
	case LivingHouse, LivingApartment, LivingOther:
		a.LivingSituation = situation
		return nil
	case "":
		a.LivingSituation = LivingOther
		return nil
	}
	return ErrInvalidLivingSituation
}

// SetNarrative fills the free-text portions of the form.
func (a *Application) SetNarrative(address, experience, otherPets, reason string, hasYard bool) {
	a.Address = address
	a.Experience = experience
	a.OtherPets = otherPets
	a.ReasonForAdoption = reason
	a.HasYard = hasYard
}

// IsPending reports whether the application can still be decided.
func (a *Application) IsPending() bool {
	return a.Status == StatusPending
}

// Approve transitions a pending application into its approved terminal state.
func (a *Application) Approve() error {
	if !a.IsPending() {
		return ErrNotPending
	}
	a.Status = StatusApproved
	return nil
}

// Reject transitions a pending application into its rejected terminal state.
func (a *Application) Reject() error {
	if !a.IsPending() {
		return ErrNotPending
	}
	a.Status = StatusRejected
	return nil
}

// Clone returns a deep copy so callers cannot mutate stored state.
func (a *Application) Clone() *Application {
	if a == nil {
		return nil
	}
	copy := *a
	return &copy
}
