package listings

import (
	"go.temporal.io/sdk/workflow"

	listingtypes "github.com/pawfectmatch/adoption-api/internal/domains/listings/application/types"
	"github.com/pawfectmatch/adoption-api/internal/platform/temporal/sequences"
)

const (
	// ListingCreationWorkflowName is the public identifier for registering the workflow.
	ListingCreationWorkflowName = "listings.workflows.Creation"
	// ListingCreationTaskQueue is the queue consumed by the worker processing listing workflows.
	ListingCreationTaskQueue = "LISTING_CREATION"
)

// ListingCreationWorkflowInput captures the payload required to provision a new listing.
type ListingCreationWorkflowInput struct {
	Command listingtypes.AddListingInput
	TraceID string
}

// ListingCreationWorkflow orchestrates the activities needed to persist a listing aggregate.
func ListingCreationWorkflow(ctx workflow.Context, input ListingCreationWorkflowInput) (*listingtypes.ListingProjection, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("ListingCreationWorkflow started", withTraceID(input.TraceID, "name", input.Command.Draft.Name)...)
	projection, err := sequences.RunListingPersistenceSequence(ctx, input.Command)
	if err != nil {
		logger.Error("ListingCreationWorkflow failed", withTraceID(input.TraceID, "name", input.Command.Draft.Name, "error", err)...)
		return nil, err
	}
	if projection != nil && projection.Pet != nil {
		logger.Info("ListingCreationWorkflow completed", withTraceID(input.TraceID, "listingId", projection.Pet.ID)...)
	} else {
		logger.Info("ListingCreationWorkflow completed", withTraceID(input.TraceID)...)
	}
	return projection, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
