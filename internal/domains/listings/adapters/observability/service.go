package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	listingtypes "github.com/pawfectmatch/adoption-api/internal/domains/listings/application/types"
	"github.com/pawfectmatch/adoption-api/internal/domains/listings/ports"
)

const tracerName = "github.com/pawfectmatch/adoption-api/internal/domains/listings/adapters/observability/service"

// Service decorates a listings application port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

// AddListing persists a new listing aggregate with instrumentation.
func (s *Service) AddListing(ctx context.Context, input listingtypes.AddListingInput) (*listingtypes.ListingProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.AddListing", attribute.String("listing.name", input.Draft.Name))
	defer span.End()

	s.logInfo(ctx, "adding listing", slog.String("listing.name", input.Draft.Name))
	result, err := s.inner.AddListing(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add listing", slog.String("listing.name", input.Draft.Name))
	}
	if result != nil && result.Pet != nil {
		span.SetAttributes(attribute.String("listing.id", result.Pet.ID))
		s.metrics.recordCreated(ctx, result.Pet.Type)
		s.logInfo(ctx, "listing added", slog.String("listing.id", result.Pet.ID), slog.String("listing.type", result.Pet.Type))
	}
	return result, nil
}

// UpdateListing overrides an existing listing with new state.
func (s *Service) UpdateListing(ctx context.Context, input listingtypes.UpdateListingInput) (*listingtypes.ListingProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.UpdateListing", attribute.String("listing.id", input.ID))
	defer span.End()

	s.logInfo(ctx, "updating listing", slog.String("listing.id", input.ID))
	result, err := s.inner.UpdateListing(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update listing", slog.String("listing.id", input.ID))
	}
	if result != nil && result.Pet != nil {
		s.metrics.recordUpdated(ctx, result.Pet.Type)
		s.logInfo(ctx, "listing updated", slog.String("listing.id", result.Pet.ID), slog.Bool("listing.available", result.Pet.Available))
	}
	return result, nil
}

// GetByID loads a single listing aggregate.
func (s *Service) GetByID(ctx context.Context, input listingtypes.ListingIdentifier) (*listingtypes.ListingProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.GetByID", attribute.String("listing.id", input.ID))
	defer span.End()

	s.logInfo(ctx, "loading listing", slog.String("listing.id", input.ID))
	result, err := s.inner.GetByID(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load listing", slog.String("listing.id", input.ID))
	}
	if result != nil && result.Pet != nil {
		s.logInfo(ctx, "listing loaded", slog.String("listing.id", result.Pet.ID), slog.Bool("listing.available", result.Pet.Available))
	}
	return result, nil
}

// RemoveListing removes a listing.
func (s *Service) RemoveListing(ctx context.Context, input listingtypes.ListingIdentifier) error {
	ctx, span := s.startSpan(ctx, "Service.RemoveListing", attribute.String("listing.id", input.ID))
	defer span.End()

	s.logInfo(ctx, "removing listing", slog.String("listing.id", input.ID))
	if err := s.inner.RemoveListing(ctx, input); err != nil {
		return s.handleError(ctx, span, err, "failed to remove listing", slog.String("listing.id", input.ID))
	}
	s.metrics.recordRemoved(ctx)
	s.logInfo(ctx, "listing removed", slog.String("listing.id", input.ID))
	return nil
}

// SetAvailability flips the adoptable flag on a listing.
func (s *Service) SetAvailability(ctx context.Context, input listingtypes.SetAvailabilityInput) (*listingtypes.ListingProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.SetAvailability",
		attribute.String("listing.id", input.ID),
		attribute.Bool("listing.available", input.Available),
	)
	defer span.End()

	s.logInfo(ctx, "setting listing availability", slog.String("listing.id", input.ID), slog.Bool("available", input.Available))
	result, err := s.inner.SetAvailability(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to set listing availability", slog.String("listing.id", input.ID))
	}
	if result != nil && result.Pet != nil {
		s.metrics.recordUpdated(ctx, result.Pet.Type)
		s.logInfo(ctx, "listing availability set", slog.String("listing.id", result.Pet.ID), slog.Bool("available", result.Pet.Available))
	}
	return result, nil
}

// Search filters listings by a free-text query.
func (s *Service) Search(ctx context.Context, input listingtypes.SearchListingsInput) ([]*listingtypes.ListingProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.Search",
		attribute.String("listing.query", input.Query),
		attribute.Bool("listing.available_only", input.AvailableOnly),
	)
	defer span.End()

	s.logInfo(ctx, "searching listings", slog.String("query", input.Query))
	result, err := s.inner.Search(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to search listings", slog.String("query", input.Query))
	}
	span.SetAttributes(attribute.Int("listing.result.count", len(result)))
	s.logInfo(ctx, "searched listings", slog.Int("count", len(result)))
	return result, nil
}

// List exposes all listings for catalog or admin use cases.
func (s *Service) List(ctx context.Context) ([]*listingtypes.ListingProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.List")
	defer span.End()

	s.logInfo(ctx, "listing pets")
	result, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list pets")
	}
	span.SetAttributes(attribute.Int("listing.result.count", len(result)))
	s.logInfo(ctx, "listed pets", slog.Int("count", len(result)))
	return result, nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	listingsCreated metric.Int64Counter
	listingsUpdated metric.Int64Counter
	listingsRemoved metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	listingsCreated, _ := m.Int64Counter("listings.service.created", metric.WithDescription("Number of listings created"))
	listingsUpdated, _ := m.Int64Counter("listings.service.updated", metric.WithDescription("Number of listings updated"))
	listingsRemoved, _ := m.Int64Counter("listings.service.removed", metric.WithDescription("Number of listings removed"))
	return serviceMetrics{
		listingsCreated: listingsCreated,
		listingsUpdated: listingsUpdated,
		listingsRemoved: listingsRemoved,
	}
}

func (m serviceMetrics) recordCreated(ctx context.Context, petType string) {
	addCounter(ctx, m.listingsCreated, 1, attribute.String("listing.type", petType))
}

func (m serviceMetrics) recordUpdated(ctx context.Context, petType string) {
	addCounter(ctx, m.listingsUpdated, 1, attribute.String("listing.type", petType))
}

func (m serviceMetrics) recordRemoved(ctx context.Context) {
	addCounter(ctx, m.listingsRemoved, 1)
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
