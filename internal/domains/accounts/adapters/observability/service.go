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

	"github.com/pawfectmatch/adoption-api/internal/domains/accounts/domain"
	"github.com/pawfectmatch/adoption-api/internal/domains/accounts/ports"
)

const tracerName = "github.com/pawfectmatch/adoption-api/internal/domains/accounts/adapters/observability/service"

// Service decorates an accounts application port with tracing, logging, and metrics.
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

func (s *Service) Restore(ctx context.Context) (*domain.Session, error) {
	ctx, span := s.startSpan(ctx, "Service.Restore")
	defer span.End()

	session, err := s.inner.Restore(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to restore session")
	}
	span.SetAttributes(attribute.Bool("session.present", session != nil))
	if session != nil {
		s.logInfo(ctx, "session restored", slog.String("email", session.Email), slog.String("role", string(session.Role)))
	}
	return session, nil
}

func (s *Service) Login(ctx context.Context, role domain.Role, email, password string) (*domain.Session, string, error) {
	ctx, span := s.startSpan(ctx, "Service.Login", attribute.String("account.role", string(role)))
	defer span.End()

	s.logInfo(ctx, "logging in", slog.String("email", email), slog.String("role", string(role)))
	session, token, err := s.inner.Login(ctx, role, email, password)
	if err != nil {
		s.metrics.recordLogin(ctx, false)
		return nil, "", s.handleError(ctx, span, err, "login failed", slog.String("email", email))
	}
	s.metrics.recordLogin(ctx, true)
	s.logInfo(ctx, "logged in", slog.String("email", session.Email), slog.String("role", string(session.Role)))
	return session, token, nil
}

func (s *Service) Logout(ctx context.Context) error {
	ctx, span := s.startSpan(ctx, "Service.Logout")
	defer span.End()

	if err := s.inner.Logout(ctx); err != nil {
		return s.handleError(ctx, span, err, "logout failed")
	}
	s.logInfo(ctx, "logged out")
	return nil
}

func (s *Service) RegisterBuyer(ctx context.Context, name, email, password string) (*domain.Account, error) {
	ctx, span := s.startSpan(ctx, "Service.RegisterBuyer")
	defer span.End()

	s.logInfo(ctx, "registering buyer", slog.String("email", email))
	account, err := s.inner.RegisterBuyer(ctx, name, email, password)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to register buyer", slog.String("email", email))
	}
	s.metrics.recordRegistered(ctx, string(domain.RoleBuyer))
	s.logInfo(ctx, "buyer registered", slog.String("email", account.Email))
	return account, nil
}

func (s *Service) ApplyAsSeller(ctx context.Context, name, email, password string) (*domain.Account, error) {
	ctx, span := s.startSpan(ctx, "Service.ApplyAsSeller")
	defer span.End()

	s.logInfo(ctx, "filing seller application", slog.String("email", email))
	account, err := s.inner.ApplyAsSeller(ctx, name, email, password)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to file seller application", slog.String("email", email))
	}
	s.metrics.recordRegistered(ctx, string(domain.RoleSeller))
	s.logInfo(ctx, "seller application filed", slog.String("email", account.Email))
	return account, nil
}

func (s *Service) UpdateProfile(ctx context.Context, role domain.Role, email, name, password string) (*domain.Account, error) {
	ctx, span := s.startSpan(ctx, "Service.UpdateProfile", attribute.String("account.role", string(role)))
	defer span.End()

	s.logInfo(ctx, "updating profile", slog.String("email", email))
	account, err := s.inner.UpdateProfile(ctx, role, email, name, password)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update profile", slog.String("email", email))
	}
	s.logInfo(ctx, "profile updated", slog.String("email", account.Email))
	return account, nil
}

func (s *Service) DeleteAccount(ctx context.Context, role domain.Role, email string) error {
	ctx, span := s.startSpan(ctx, "Service.DeleteAccount", attribute.String("account.role", string(role)))
	defer span.End()

	s.logInfo(ctx, "deleting account", slog.String("email", email))
	if err := s.inner.DeleteAccount(ctx, role, email); err != nil {
		return s.handleError(ctx, span, err, "failed to delete account", slog.String("email", email))
	}
	s.logInfo(ctx, "account deleted", slog.String("email", email))
	return nil
}

func (s *Service) PendingSellerApplications(ctx context.Context) ([]*domain.Account, error) {
	ctx, span := s.startSpan(ctx, "Service.PendingSellerApplications")
	defer span.End()

	result, err := s.inner.PendingSellerApplications(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list pending seller applications")
	}
	span.SetAttributes(attribute.Int("account.result.count", len(result)))
	return result, nil
}

func (s *Service) ApproveSeller(ctx context.Context, email string) error {
	ctx, span := s.startSpan(ctx, "Service.ApproveSeller")
	defer span.End()

	s.logInfo(ctx, "approving seller", slog.String("email", email))
	if err := s.inner.ApproveSeller(ctx, email); err != nil {
		return s.handleError(ctx, span, err, "failed to approve seller", slog.String("email", email))
	}
	s.logInfo(ctx, "seller approved", slog.String("email", email))
	return nil
}

func (s *Service) RejectSeller(ctx context.Context, email string) error {
	ctx, span := s.startSpan(ctx, "Service.RejectSeller")
	defer span.End()

	s.logInfo(ctx, "rejecting seller", slog.String("email", email))
	if err := s.inner.RejectSeller(ctx, email); err != nil {
		return s.handleError(ctx, span, err, "failed to reject seller", slog.String("email", email))
	}
	s.logInfo(ctx, "seller rejected", slog.String("email", email))
	return nil
}

func (s *Service) ListSellers(ctx context.Context) ([]*domain.Account, error) {
	ctx, span := s.startSpan(ctx, "Service.ListSellers")
	defer span.End()

	result, err := s.inner.ListSellers(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list sellers")
	}
	span.SetAttributes(attribute.Int("account.result.count", len(result)))
	return result, nil
}

func (s *Service) RemoveSeller(ctx context.Context, email string) error {
	ctx, span := s.startSpan(ctx, "Service.RemoveSeller")
	defer span.End()

	s.logInfo(ctx, "removing seller", slog.String("email", email))
	if err := s.inner.RemoveSeller(ctx, email); err != nil {
		return s.handleError(ctx, span, err, "failed to remove seller", slog.String("email", email))
	}
	s.logInfo(ctx, "seller removed", slog.String("email", email))
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
	logins        metric.Int64Counter
	registrations metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	logins, _ := m.Int64Counter("accounts.service.logins", metric.WithDescription("Number of login attempts"))
	registrations, _ := m.Int64Counter("accounts.service.registrations", metric.WithDescription("Number of account registrations"))
	return serviceMetrics{
		logins:        logins,
		registrations: registrations,
	}
}

func (m serviceMetrics) recordLogin(ctx context.Context, success bool) {
	addCounter(ctx, m.logins, 1, attribute.Bool("account.login.success", success))
}

func (m serviceMetrics) recordRegistered(ctx context.Context, role string) {
	addCounter(ctx, m.registrations, 1, attribute.String("account.role", role))
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
