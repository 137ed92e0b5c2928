package hyperstats

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/goccy/go-json"
	fiber "github.com/gofiber/fiber/v3"
	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/hyperstats/internal/constants"
	"github.com/hyp3rd/hyperstats/internal/libs/serializer"
	"github.com/hyp3rd/hyperstats/internal/sentinel"
	"github.com/hyp3rd/hyperstats/pkg/estimator"
)

// ManagementHTTPOption configures the management HTTP server.
type ManagementHTTPOption func(*ManagementHTTPServer)

// ManagementHTTPServer exposes the collectors of a Group over HTTP for inspection.
type ManagementHTTPServer struct {
	addr         string
	app          *fiber.App
	readTimeout  time.Duration
	writeTimeout time.Duration
	authFunc     func(fiber.Ctx) error
	serializers  *serializer.Registry
	ln           net.Listener
	started      bool
}

// WithMgmtAuth sets an auth function (return error to block).
func WithMgmtAuth(fn func(fiber.Ctx) error) ManagementHTTPOption {
	return func(s *ManagementHTTPServer) { s.authFunc = fn }
}

// WithMgmtReadTimeout sets read timeout.
func WithMgmtReadTimeout(d time.Duration) ManagementHTTPOption {
	return func(s *ManagementHTTPServer) { s.readTimeout = d }
}

// WithMgmtWriteTimeout sets write timeout.
func WithMgmtWriteTimeout(d time.Duration) ManagementHTTPOption {
	return func(s *ManagementHTTPServer) { s.writeTimeout = d }
}

// WithMgmtSerializers sets the registry used to encode single snapshots.
func WithMgmtSerializers(registry *serializer.Registry) ManagementHTTPOption {
	return func(s *ManagementHTTPServer) { s.serializers = registry }
}

const (
	defaultReadTimeout  = 5 * time.Second
	defaultWriteTimeout = 5 * time.Second
)

// managementGroup is what the server needs from a Group.
type managementGroup interface {
	Snapshots(ctx context.Context) map[string]Snapshot
	Snapshot(ctx context.Context, name string) (Snapshot, error)
	Reset(ctx context.Context, name string) (Snapshot, error)
	Names() []string
	EstimatorName() string
	EstimatorConfig() estimator.Config
}

// NewManagementHTTPServer builds an HTTP server holder (lazy start).
func NewManagementHTTPServer(addr string, opts ...ManagementHTTPOption) *ManagementHTTPServer {
	srv := &ManagementHTTPServer{
		addr:         addr,
		readTimeout:  defaultReadTimeout,
		writeTimeout: defaultWriteTimeout,
	}
	for _, opt := range opts { // apply options
		opt(srv)
	}

	if srv.serializers == nil {
		srv.serializers = serializer.NewSerializerRegistry()
	}

	srv.app = fiber.New(fiber.Config{
		ReadTimeout:  srv.readTimeout,
		WriteTimeout: srv.writeTimeout,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	return srv
}

// Start mounts the routes for group and launches the listener (idempotent).
func (s *ManagementHTTPServer) Start(ctx context.Context, group managementGroup) error {
	if s.started { // idempotent
		return nil
	}

	s.mountRoutes(ctx, group)

	lc := net.ListenConfig{}

	ln, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return ewrap.Wrap(err, "mgmt listen")
	}

	s.ln = ln

	go func() { // serve in background; the listener error surfaces on Shutdown
		_ = s.app.Listener(ln)
	}()

	s.started = true

	return nil
}

// Address returns the bound address (useful when passing ":0" for ephemeral port). Empty if not started yet.
func (s *ManagementHTTPServer) Address() string {
	if s.ln == nil {
		return ""
	}

	return s.ln.Addr().String()
}

// Shutdown stops the server.
func (s *ManagementHTTPServer) Shutdown(ctx context.Context) error {
	if !s.started {
		return nil
	}

	ch := make(chan error, 1)

	go func() {
		ch <- s.app.Shutdown()
	}()

	select {
	case <-ctx.Done():
		return sentinel.ErrMgmtHTTPShutdownTimeout
	case err := <-ch:
		return err
	}
}

// mountRoutes registers endpoints onto the Fiber app.
func (s *ManagementHTTPServer) mountRoutes(ctx context.Context, group managementGroup) {
	useAuth := s.wrapAuth
	s.registerBasic(useAuth, group)
	s.registerStats(ctx, useAuth, group)
	s.registerControl(ctx, useAuth, group)
}

// wrapAuth returns an auth-wrapped handler if authFunc provided.
func (s *ManagementHTTPServer) wrapAuth(handler fiber.Handler) fiber.Handler { //nolint:ireturn
	if s.authFunc == nil {
		return handler
	}

	return func(fiberCtx fiber.Ctx) error {
		authErr := s.authFunc(fiberCtx)
		if authErr != nil {
			return authErr
		}

		return handler(fiberCtx)
	}
}

func (s *ManagementHTTPServer) registerBasic(useAuth func(fiber.Handler) fiber.Handler, group managementGroup) {
	s.app.Get("/health", useAuth(func(fiberCtx fiber.Ctx) error { return fiberCtx.SendString("ok") }))
	s.app.Get("/config", useAuth(func(fiberCtx fiber.Ctx) error {
		cfg := group.EstimatorConfig()

		return fiberCtx.JSON(fiber.Map{
			"estimator":          group.EstimatorName(),
			"minValue":           cfg.MinValue,
			"maxValue":           cfg.MaxValue,
			"significantFigures": cfg.SignificantFigures,
			"collectors":         len(group.Names()),
		})
	}))
}

func (s *ManagementHTTPServer) registerStats(ctx context.Context, useAuth func(fiber.Handler) fiber.Handler, group managementGroup) {
	s.app.Get("/stats", useAuth(func(fiberCtx fiber.Ctx) error {
		return fiberCtx.JSON(group.Snapshots(ctx))
	}))
	s.app.Get("/stats/:name", useAuth(func(fiberCtx fiber.Ctx) error {
		format := fiberCtx.Query("format", constants.DefaultSerializer)

		codec, err := s.serializers.New(format)
		if err != nil {
			return fiberCtx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		snap, err := group.Snapshot(ctx, fiberCtx.Params("name"))
		if err != nil {
			return s.writeLookupError(fiberCtx, err)
		}

		body, err := codec.Marshal(snap)
		if err != nil {
			return fiberCtx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}

		fiberCtx.Set(fiber.HeaderContentType, codec.ContentType())

		return fiberCtx.Send(body)
	}))
}

func (s *ManagementHTTPServer) registerControl(ctx context.Context, useAuth func(fiber.Handler) fiber.Handler, group managementGroup) {
	s.app.Post("/reset/:name", useAuth(func(fiberCtx fiber.Ctx) error {
		snap, err := group.Reset(ctx, fiberCtx.Params("name"))
		if err != nil {
			return s.writeLookupError(fiberCtx, err)
		}

		return fiberCtx.JSON(snap)
	}))
}

func (*ManagementHTTPServer) writeLookupError(fiberCtx fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	if errors.Is(err, sentinel.ErrCollectorNotFound) {
		status = fiber.StatusNotFound
	}

	return fiberCtx.Status(status).JSON(fiber.Map{"error": err.Error()})
}
