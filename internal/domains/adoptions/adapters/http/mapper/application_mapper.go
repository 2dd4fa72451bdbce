package mapper

import (
	"time"

	adoptiontypes "github.com/pawfectmatch/adoption-api/internal/domains/adoptions/application/types"
	"github.com/pawfectmatch/adoption-api/internal/domains/adoptions/domain"
)

// ApplicationForm captures the inbound submission payload.
type ApplicationForm struct {
	ApplicantName     string `json:"applicantName"`
	ApplicantEmail    string `json:"applicantEmail"`
	ApplicantPhone    string `json:"applicantPhone"`
	Address           string `json:"address,omitempty"`
	Experience        string `json:"experience,omitempty"`
	LivingSituation   string `json:"livingSituation,omitempty"`
	HasYard           bool   `json:"hasYard,omitempty"`
	OtherPets         string `json:"otherPets,omitempty"`
	ReasonForAdoption string `json:"reasonForAdoption,omitempty"`
}

// Application is the HTTP representation of an adoption application.
type Application struct {
	ID                string    `json:"id"`
	PetID             string    `json:"petId"`
	PetName           string    `json:"petName"`
	ApplicantName     string    `json:"applicantName"`
	ApplicantEmail    string    `json:"applicantEmail"`
	ApplicantPhone    string    `json:"applicantPhone"`
	Address           string    `json:"address,omitempty"`
	Experience        string    `json:"experience,omitempty"`
	LivingSituation   string    `json:"livingSituation"`
	HasYard           bool      `json:"hasYard"`
	OtherPets         string    `json:"otherPets,omitempty"`
	ReasonForAdoption string    `json:"reasonForAdoption,omitempty"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt,omitempty"`
}

// Decision captures the inbound verdict payload.
type Decision struct {
	Status string `json:"status"`
}

// ToSubmitInput converts a transport form into the application submit input.
func ToSubmitInput(petID string, form ApplicationForm) adoptiontypes.SubmitApplicationInput {
	return adoptiontypes.SubmitApplicationInput{
		PetID: petID,
		Form: adoptiontypes.ApplicationForm{
			ApplicantName:     form.ApplicantName,
			ApplicantEmail:    form.ApplicantEmail,
			ApplicantPhone:    form.ApplicantPhone,
			Address:           form.Address,
			Experience:        form.Experience,
			LivingSituation:   form.LivingSituation,
			HasYard:           form.HasYard,
			OtherPets:         form.OtherPets,
			ReasonForAdoption: form.ReasonForAdoption,
		},
	}
}

// ToDecideInput converts a transport decision into the application decide input.
func ToDecideInput(id string, decision Decision) adoptiontypes.DecideApplicationInput {
	return adoptiontypes.DecideApplicationInput{
		ID:     id,
		Status: domain.Status(decision.Status),
	}
}

// FromDomainApplication maps a domain aggregate into a transport application.
func FromDomainApplication(a *domain.Application) Application {
	return Application{
		ID:                a.ID,
		PetID:             a.PetID,
		PetName:           a.PetName,
		ApplicantName:     a.ApplicantName,
		ApplicantEmail:    a.ApplicantEmail,
		ApplicantPhone:    a.ApplicantPhone,
		Address:           a.Address,
		Experience:        a.Experience,
		LivingSituation:   string(a.LivingSituation),
		HasYard:           a.HasYard,
		OtherPets:         a.OtherPets,
		ReasonForAdoption: a.ReasonForAdoption,
		Status:            string(a.Status),
		CreatedAt:         a.CreatedAt,
	}
}

// FromProjection maps a projection into a transport application enriched with metadata.
func FromProjection(projection *adoptiontypes.ApplicationProjection) Application {
	app := FromDomainApplication(projection.Application)
	app.UpdatedAt = projection.Metadata.UpdatedAt
	return app
}

// FromProjectionList maps a slice of projections into transport applications.
func FromProjectionList(list []*adoptiontypes.ApplicationProjection) []Application {
	result := make([]Application, 0, len(list))
	for _, projection := range list {
		result = append(result, FromProjection(projection))
	}
	return result
}
