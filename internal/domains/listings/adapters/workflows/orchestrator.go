package workflows

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	listingtypes "github.com/pawfectmatch/adoption-api/internal/domains/listings/application/types"
	"github.com/pawfectmatch/adoption-api/internal/domains/listings/ports"
	listingworkflows "github.com/pawfectmatch/adoption-api/internal/platform/temporal/workflows/listings"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalListingWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineListingWorkflows)(nil)
)

// TemporalListingWorkflows starts listing workflows on a Temporal cluster.
type TemporalListingWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalListingWorkflows wires a Temporal client into the orchestrator.
func NewTemporalListingWorkflows(c client.Client) *TemporalListingWorkflows {
	return &TemporalListingWorkflows{client: c, taskQueue: listingworkflows.ListingCreationTaskQueue}
}

// CreateListing starts the Temporal workflow that persists a listing aggregate.
func (o *TemporalListingWorkflows) CreateListing(ctx context.Context, input listingtypes.AddListingInput) (*listingtypes.ListingProjection, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal listing workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	workflowID := buildListingCreationWorkflowID(input, traceComponent)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		listingworkflows.ListingCreationWorkflow,
		listingworkflows.ListingCreationWorkflowInput{Command: input, TraceID: traceComponent},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) && strings.TrimSpace(input.IdempotencyKey) != "" {
			existingRun := o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
			var projection listingtypes.ListingProjection
			if err := existingRun.Get(ctx, &projection); err != nil {
				return nil, err
			}
			return &projection, nil
		}
		return nil, err
	}
	var projection listingtypes.ListingProjection
	if err := run.Get(ctx, &projection); err != nil {
		return nil, err
	}
	return &projection, nil
}

// InlineListingWorkflows executes the service directly without Temporal, useful for tests or dev fallbacks.
type InlineListingWorkflows struct {
	service ports.Service
}

// NewInlineListingWorkflows wraps the listings service for synchronous execution.
func NewInlineListingWorkflows(service ports.Service) *InlineListingWorkflows {
	return &InlineListingWorkflows{service: service}
}

// CreateListing delegates to the application service without durable orchestration.
func (o *InlineListingWorkflows) CreateListing(ctx context.Context, input listingtypes.AddListingInput) (*listingtypes.ListingProjection, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline listing workflows not configured")
	}
	return o.service.AddListing(ctx, input)
}

func buildListingCreationWorkflowID(input listingtypes.AddListingInput, traceComponent string) string {
	if key := strings.TrimSpace(input.IdempotencyKey); key != "" {
		return fmt.Sprintf("listing-creation-idem-%s", hashIdempotencyKey(key))
	}
	return fmt.Sprintf("listing-creation-%d-%s", time.Now().UnixNano(), traceComponent)
}

func hashIdempotencyKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	// Use the first 16 hex chars to keep workflow IDs readable while remaining deterministic.
	return hex.EncodeToString(sum[:8])
}

func workflowTraceComponent(ctx context.Context) string {
	traceComponent := workflowTraceID(ctx)
	if traceComponent != "" {
		return traceComponent
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return ""
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	traceID := spanCtx.TraceID()
	if !traceID.IsValid() {
		return ""
	}
	return traceID.String()
}
