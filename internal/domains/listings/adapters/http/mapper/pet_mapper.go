package mapper

import (
	"time"

	listingtypes "github.com/pawfectmatch/adoption-api/internal/domains/listings/application/types"
	"github.com/pawfectmatch/adoption-api/internal/domains/listings/domain"
)

// Traits is the HTTP representation of a listing's physical attributes.
type Traits struct {
	Size       string `json:"size,omitempty"`
	Gender     string `json:"gender,omitempty"`
	Vaccinated bool   `json:"vaccinated,omitempty"`
	Neutered   bool   `json:"neutered,omitempty"`
}

// Pet is the HTTP representation used for mapping between transport and domain responses.
type Pet struct {
	ID          string    `json:"id,omitempty"`
	Name        string    `json:"name"`
	Breed       string    `json:"breed"`
	Age         string    `json:"age"`
	Description string    `json:"description,omitempty"`
	Type        string    `json:"type"`
	Location    string    `json:"location"`
	Images      []string  `json:"images"`
	Available   bool      `json:"available"`
	Traits      *Traits   `json:"traits,omitempty"`
	Shelter     string    `json:"shelter,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

// MutationPet captures inbound payloads for create/update flows while preserving field presence.
type MutationPet struct {
	Name        *string   `json:"name,omitempty"`
	Breed       *string   `json:"breed,omitempty"`
	Age         *string   `json:"age,omitempty"`
	Description *string   `json:"description,omitempty"`
	Type        *string   `json:"type,omitempty"`
	Location    *string   `json:"location,omitempty"`
	Images      *[]string `json:"images,omitempty"`
	Available   *bool     `json:"available,omitempty"`
	Traits      *Traits   `json:"traits,omitempty"`
	Shelter     *string   `json:"shelter,omitempty"`
}

// ToListingDraft converts a mutation payload into an application draft.
func ToListingDraft(model MutationPet) listingtypes.ListingDraft {
	draft := listingtypes.ListingDraft{}
	if model.Name != nil {
		draft.Name = *model.Name
	}
	if model.Breed != nil {
		draft.Breed = *model.Breed
	}
	if model.Age != nil {
		draft.Age = *model.Age
	}
	if model.Description != nil {
		draft.Description = *model.Description
	}
	if model.Type != nil {
		draft.Type = *model.Type
	}
	if model.Location != nil {
		draft.Location = *model.Location
	}
	if model.Images != nil {
		draft.Images = append([]string{}, (*model.Images)...)
	}
	if model.Traits != nil {
		draft.Size = model.Traits.Size
		draft.Gender = model.Traits.Gender
		draft.Vaccinated = model.Traits.Vaccinated
		draft.Neutered = model.Traits.Neutered
	}
	if model.Shelter != nil {
		draft.Shelter = *model.Shelter
	}
	return draft
}

// ToUpdateInput converts a mutation payload into the application update input.
func ToUpdateInput(id string, model MutationPet) listingtypes.UpdateListingInput {
	input := listingtypes.UpdateListingInput{ID: id, Draft: ToListingDraft(model)}
	if model.Available != nil {
		available := *model.Available
		input.Available = &available
	}
	return input
}

// FromDomainPet maps a domain aggregate into a transport Pet.
func FromDomainPet(p *domain.Pet) Pet {
	var traits *Traits
	if p.Traits != (domain.Traits{}) {
		traits = &Traits{
			Size:       p.Traits.Size,
			Gender:     p.Traits.Gender,
			Vaccinated: p.Traits.Vaccinated,
			Neutered:   p.Traits.Neutered,
		}
	}
	return Pet{
		ID:          p.ID,
		Name:        p.Name,
		Breed:       p.Breed,
		Age:         p.Age,
		Description: p.Description,
		Type:        p.Type,
		Location:    p.Location,
		Images:      append([]string{}, p.Images...),
		Available:   p.Available,
		Traits:      traits,
		Shelter:     p.Shelter,
	}
}

// FromProjection maps a projection into a transport pet enriched with metadata.
func FromProjection(projection *listingtypes.ListingProjection) Pet {
	pet := FromDomainPet(projection.Pet)
	pet.CreatedAt = projection.Metadata.CreatedAt
	pet.UpdatedAt = projection.Metadata.UpdatedAt
	return pet
}

// FromProjectionList maps a slice of projections into transport pets with metadata.
func FromProjectionList(list []*listingtypes.ListingProjection) []Pet {
	result := make([]Pet, 0, len(list))
	for _, projection := range list {
		result = append(result, FromProjection(projection))
	}
	return result
}
