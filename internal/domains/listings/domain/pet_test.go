package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPet_Defaults(t *testing.T) {
	pet, err := NewPet("1", "Buddy", "Golden Retriever", "2 years", "Dog", "Austin, TX")
	require.NoError(t, err)
	require.True(t, pet.Available)
	require.Empty(t, pet.Images)
}

func TestNewPet_Invariants(t *testing.T) {
	cases := []struct {
		name     string
		petName  string
		breed    string
		age      string
		petType  string
		location string
		want     error
	}{
		{"missing name", "", "Lab", "1 year", "Dog", "Austin", ErrEmptyName},
		{"missing breed", "Buddy", "", "1 year", "Dog", "Austin", ErrEmptyBreed},
		{"missing age", "Buddy", "Lab", "", "Dog", "Austin", ErrEmptyAge},
		{"missing type", "Buddy", "Lab", "1 year", "", "Austin", ErrEmptyType},
		{"missing location", "Buddy", "Lab", "1 year", "Dog", "", ErrEmptyLocation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewPet("1", tc.petName, tc.breed, tc.age, tc.petType, tc.location)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestPet_Clone(t *testing.T) {
	pet, err := NewPet("1", "Buddy", "Golden Retriever", "2 years", "Dog", "Austin, TX")
	require.NoError(t, err)
	pet.ReplaceImages([]string{"https://example.com/a.jpg"})

	clone := pet.Clone()
	clone.Images[0] = "https://example.com/changed.jpg"
	require.NoError(t, clone.Rename("Max"))

	require.Equal(t, "Buddy", pet.Name)
	require.Equal(t, "https://example.com/a.jpg", pet.Images[0])
}
