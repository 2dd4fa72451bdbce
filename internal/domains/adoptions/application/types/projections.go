package types

import (
	"time"

	"github.com/pawfectmatch/adoption-api/internal/domains/adoptions/domain"
)

// ApplicationMetadata captures infrastructure timestamps associated with a persisted application.
type ApplicationMetadata struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ApplicationProjection transports a domain aggregate together with its persistence metadata.
type ApplicationProjection struct {
	Application *domain.Application
	Metadata    ApplicationMetadata
}

// NewApplicationProjection wraps an aggregate with persistence metadata.
func NewApplicationProjection(application *domain.Application, createdAt, updatedAt time.Time) *ApplicationProjection {
	if application == nil {
		return nil
	}
	return &ApplicationProjection{
		Application: application,
		Metadata: ApplicationMetadata{
			CreatedAt: createdAt,
			UpdatedAt: updatedAt,
		},
	}
}
