//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "adoption-api"
	ConsumerName = "adoption-portal"

	StateListingsBaseline = "listings baseline"
	StateListingExists    = "listing with id 101 exists"
	StateListingMissing   = "no listing with id 404"
	StateApplicationOpen  = "listing with id 101 has a pending application"
)

const (
	ExistingListingID = "101"
	MissingListingID  = "404"

	ApplicantEmail = "pact.applicant@example.com"
)

const (
	exampleImageURL    = "https://example.pact/listings/fluffy.png"
	exampleListingName = "Fluffy Pact Cat"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the adoption portal consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleListingPayload provides stable test data for pact interactions.
func ExampleListingPayload() map[string]any {
	return map[string]any{
		"name":        exampleListingName,
		"breed":       "Ragdoll",
		"age":         "3 years",
		"description": "Calm lap cat",
		"type":        "Cat",
		"location":    "Portland, OR",
		"images":      []string{exampleImageURL},
		"available":   true,
	}
}

// ExampleApplicationPayload provides stable test data for application interactions.
func ExampleApplicationPayload() map[string]any {
	return map[string]any{
		"applicantName":     "Pact Applicant",
		"applicantEmail":    ApplicantEmail,
		"applicantPhone":    "+1234567890",
		"address":           "12 Pact Lane",
		"experience":        "First-time adopter",
		"livingSituation":   "house",
		"hasYard":           true,
		"otherPets":         "None",
		"reasonForAdoption": "Companionship",
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
