package application

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/pawfectmatch/adoption-api/internal/domains/listings/application/types"
)

type normalizedAddListingInput struct {
	Name        string   `json:"name"`
	Breed       string   `json:"breed"`
	Age         string   `json:"age"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	Location    string   `json:"location"`
	Images      []string `json:"images,omitempty"`
	Size        string   `json:"size"`
	Gender      string   `json:"gender"`
	Vaccinated  bool     `json:"vaccinated"`
	Neutered    bool     `json:"neutered"`
	Shelter     string   `json:"shelter"`
}

// FingerprintAddListing builds a deterministic hash of the create payload (excluding the idempotency key).
func FingerprintAddListing(input types.AddListingInput) (string, error) {
	normalized := normalizedAddListingInput{
		Name:        input.Draft.Name,
		Breed:       input.Draft.Breed,
		Age:         input.Draft.Age,
		Description: input.Draft.Description,
		Type:        input.Draft.Type,
		Location:    input.Draft.Location,
		Images:      input.Draft.Images,
		Size:        input.Draft.Size,
		Gender:      input.Draft.Gender,
		Vaccinated:  input.Draft.Vaccinated,
		Neutered:    input.Draft.Neutered,
		Shelter:     input.Draft.Shelter,
	}
	payload, err := json.Marshal(normalized)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
