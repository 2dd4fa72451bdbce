package types

import "github.com/pawfectmatch/adoption-api/internal/domains/adoptions/domain"

// ApplicationForm carries the buyer-supplied fields of a submission.
type ApplicationForm struct {
	ApplicantName     string
	ApplicantEmail    string
	ApplicantPhone    string
	Address           string
	Experience        string
	LivingSituation   string
	HasYard           bool
	OtherPets         string
	ReasonForAdoption string
}

// SubmitApplicationInput identifies the listing and the form to submit for it.
type SubmitApplicationInput struct {
	PetID string
	Form  ApplicationForm
}

// DecideApplicationInput carries the seller's verdict on a pending application.
type DecideApplicationInput struct {
	ID     string
	Status domain.Status
}

// ListApplicationsInput narrows the application listing. Zero value lists everything.
type ListApplicationsInput struct {
	// ExcludeOrphans hides applications whose listing no longer resolves.
	ExcludeOrphans bool
	// PetID restricts results to applications for one listing.
	PetID string
	// ApplicantEmail restricts results to one buyer's applications.
	ApplicantEmail string
}

// ApplicationIdentifier addresses one application by id.
type ApplicationIdentifier struct {
	ID string
}
