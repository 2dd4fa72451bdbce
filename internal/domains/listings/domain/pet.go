package domain

import (
	"errors"
	"strings"
)

// Traits captures the optional descriptive attributes a shelter may publish.
type Traits struct {
	Size       string
	Gender     string
	Vaccinated bool
	Neutered   bool
}

// Pet represents the listing aggregate managed by the listings bounded context.
type Pet struct {
	ID          string
	Name        string
	Breed       string
	Age         string
	Description string
	Type        string
	Location    string
	Images      []string
	Available   bool
	Traits      Traits
	Shelter     string
}

var (
	ErrEmptyName     = errors.New("pet name is required")
	ErrEmptyBreed    = errors.New("pet breed is required")
	ErrEmptyAge      = errors.New("pet age is required")
	ErrEmptyType     = errors.New("pet type is required")
	ErrEmptyLocation = errors.New("pet location is required")
)

// NewPet validates the required invariants and builds a new Pet aggregate.
// Listings start out available.
func NewPet(id, name, breed, age, petType, location string) (*Pet, error) {
	p := &Pet{ID: id, Available: true}
	if err := p.Rename(name); err != nil {
		return nil, err
	}
	if err := p.SetBreed(breed); err != nil {
		return nil, err
	}
	if err := p.SetAge(age); err != nil {
		return nil, err
	}
	if err := p.SetType(petType); err != nil {
		return nil, err
	}
	if err := p.SetLocation(location); err != nil {
		return nil, err
	}
	return p, nil
}

// Rename mutates the pet name ensuring the invariant.
func (p *Pet) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	p.Name = name
	return nil
}

// SetBreed mutates the breed ensuring it stays non-empty.
func (p *Pet) SetBreed(breed string) error {
	if strings.TrimSpace(breed) == "" {
		return ErrEmptyBreed
	}
	p.Breed = breed
	return nil
}

// SetAge stores the free-text age description.
func (p *Pet) SetAge(age string) error {
	if strings.TrimSpace(age) == "" {
		return ErrEmptyAge
	}
	p.Age = age
	return nil
}

// SetType mutates the species/type ensuring it stays non-empty.
func (p *Pet) SetType(petType string) error {
	if strings.TrimSpace(petType) == "" {
		return ErrEmptyType
	}
	p.Type = petType
	return nil
}

// SetLocation mutates the free-text location ensuring it stays non-empty.
func (p *Pet) SetLocation(location string) error {
	if strings.TrimSpace(location) == "" {
		return ErrEmptyLocation
	}
	p.Location = location
	return nil
}

// SetDescription replaces the optional narrative.
func (p *Pet) SetDescription(description string) {
	p.Description = description
}

// ReplaceImages swaps the image URI sequence, preserving caller order.
func (p *Pet) ReplaceImages(uris []string) {
	p.Images = append([]string{}, uris...)
}

// SetAvailability flips the adoptability flag. The only transition to
// unavailable in normal operation comes from an approved application.
func (p *Pet) SetAvailability(available bool) {
	p.Available = available
}

// SetTraits replaces the optional descriptive attributes.
func (p *Pet) SetTraits(traits Traits) {
	p.Traits = traits
}

// SetShelter records the shelter name behind the listing.
func (p *Pet) SetShelter(shelter string) {
	p.Shelter = shelter
}

// Clone returns a deep copy safe to hand across store boundaries.
func (p *Pet) Clone() *Pet {
	if p == nil {
		return nil
	}
	clone := *p
	if len(p.Images) > 0 {
		clone.Images = append([]string{}, p.Images...)
	}
	return &clone
}
