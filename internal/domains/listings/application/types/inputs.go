package types

// ListingDraft carries the mutable listing fields supplied by a shelter.
type ListingDraft struct {
	Name        string
	Breed       string
	Age         string
	Description string
	Type        string
	Location    string
	Images      []string
	Size        string
	Gender      string
	Vaccinated  bool
	Neutered    bool
	Shelter     string
}

// AddListingInput captures a create request. IdempotencyKey is optional; when
// present, retries with the same key and payload replay the stored result.
type AddListingInput struct {
	Draft          ListingDraft
	IdempotencyKey string
}

// UpdateListingInput replaces the mutable fields of an existing listing.
// Available is optional so callers that only edit descriptive fields do not
// clobber an availability flip performed by the approval cascade.
type UpdateListingInput struct {
	ID        string
	Draft     ListingDraft
	Available *bool
}

// SetAvailabilityInput is the internal request used by the approval cascade.
type SetAvailabilityInput struct {
	ID        string
	Available bool
}

// SearchListingsInput restricts the catalog to pets matching a free-text
// query, optionally narrowed to available listings.
type SearchListingsInput struct {
	Query         string
	AvailableOnly bool
}

// ListingIdentifier addresses a single listing.
type ListingIdentifier struct {
	ID string
}
