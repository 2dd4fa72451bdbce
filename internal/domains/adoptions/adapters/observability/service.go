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

	adoptiontypes "github.com/pawfectmatch/adoption-api/internal/domains/adoptions/application/types"
	"github.com/pawfectmatch/adoption-api/internal/domains/adoptions/ports"
)

const tracerName = "github.com/pawfectmatch/adoption-api/internal/domains/adoptions/adapters/observability/service"

// Service decorates an adoptions application port with tracing, logging, and metrics.
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

// Submit records a new adoption application with instrumentation.
func (s *Service) Submit(ctx context.Context, input adoptiontypes.SubmitApplicationInput) (*adoptiontypes.ApplicationProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.Submit", attribute.String("application.pet_id", input.PetID))
	defer span.End()

	s.logInfo(ctx, "submitting application", slog.String("petId", input.PetID))
	result, err := s.inner.Submit(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to submit application", slog.String("petId", input.PetID))
	}
	if result != nil && result.Application != nil {
		span.SetAttributes(attribute.String("application.id", result.Application.ID))
		s.metrics.recordSubmitted(ctx)
		s.logInfo(ctx, "application submitted", slog.String("applicationId", result.Application.ID), slog.String("petId", input.PetID))
	}
	return result, nil
}

// Decide applies the seller's verdict with instrumentation.
func (s *Service) Decide(ctx context.Context, input adoptiontypes.DecideApplicationInput) (*adoptiontypes.ApplicationProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.Decide",
		attribute.String("application.id", input.ID),
		attribute.String("application.decision", string(input.Status)),
	)
	defer span.End()

	s.logInfo(ctx, "deciding application", slog.String("applicationId", input.ID), slog.String("decision", string(input.Status)))
	result, err := s.inner.Decide(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to decide application", slog.String("applicationId", input.ID))
	}
	if result != nil && result.Application != nil {
		s.metrics.recordDecided(ctx, string(result.Application.Status))
		s.logInfo(ctx, "application decided", slog.String("applicationId", result.Application.ID), slog.String("status", string(result.Application.Status)))
	}
	return result, nil
}

// GetByID loads a single application.
func (s *Service) GetByID(ctx context.Context, input adoptiontypes.ApplicationIdentifier) (*adoptiontypes.ApplicationProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.GetByID", attribute.String("application.id", input.ID))
	defer span.End()

	s.logInfo(ctx, "loading application", slog.String("applicationId", input.ID))
	result, err := s.inner.GetByID(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load application", slog.String("applicationId", input.ID))
	}
	return result, nil
}

// List exposes applications for the seller and buyer views.
func (s *Service) List(ctx context.Context, input adoptiontypes.ListApplicationsInput) ([]*adoptiontypes.ApplicationProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.List", attribute.Bool("application.exclude_orphans", input.ExcludeOrphans))
	defer span.End()

	s.logInfo(ctx, "listing applications")
	result, err := s.inner.List(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list applications")
	}
	span.SetAttributes(attribute.Int("application.result.count", len(result)))
	s.logInfo(ctx, "listed applications", slog.Int("count", len(result)))
	return result, nil
}

// PurgeForListing removes pending applications for a deleted listing.
func (s *Service) PurgeForListing(ctx context.Context, petID string) error {
	ctx, span := s.startSpan(ctx, "Service.PurgeForListing", attribute.String("application.pet_id", petID))
	defer span.End()

	s.logInfo(ctx, "purging applications for listing", slog.String("petId", petID))
	if err := s.inner.PurgeForListing(ctx, petID); err != nil {
		return s.handleError(ctx, span, err, "failed to purge applications", slog.String("petId", petID))
	}
	s.logInfo(ctx, "purged applications for listing", slog.String("petId", petID))
	return nil
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
	applicationsSubmitted metric.Int64Counter
	applicationsDecided   metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	applicationsSubmitted, _ := m.Int64Counter("adoptions.service.submitted", metric.WithDescription("Number of adoption applications submitted"))
	applicationsDecided, _ := m.Int64Counter("adoptions.service.decided", metric.WithDescription("Number of adoption applications decided"))
	return serviceMetrics{
		applicationsSubmitted: applicationsSubmitted,
		applicationsDecided:   applicationsDecided,
	}
}

func (m serviceMetrics) recordSubmitted(ctx context.Context) {
	addCounter(ctx, m.applicationsSubmitted, 1)
}

func (m serviceMetrics) recordDecided(ctx context.Context, status string) {
	addCounter(ctx, m.applicationsDecided, 1, attribute.String("application.status", status))
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
