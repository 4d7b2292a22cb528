// Package preview serves the invoice preview modal over HTTP.
//
// Each preview is a session: an order mounted in a Modal inside its own
// Document. Closing the session, by button or Escape, unmounts the modal
// and forgets the session.
package preview

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	invoiceprint "github.com/lajutuju/go-invoiceprint"
)

// DefaultBasePath is the path prefix the preview pages are served under.
const DefaultBasePath = "/Dasbhoard/"

// Option configures a Server.
type Option func(*Server)

// WithBasePath sets the URL prefix. Missing leading or trailing slashes
// are added.
func WithBasePath(p string) Option {
	return func(s *Server) {
		s.base = normalizeBase(p)
	}
}

// WithLogger sets the request and export logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Server) {
		s.log = l
	}
}

// Server is the preview HTTP server.
type Server struct {
	app      *fiber.App
	store    OrderStore
	renderer invoiceprint.InvoiceRenderer
	base     string
	log      zerolog.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	id      string
	doc     *invoiceprint.Document
	modal   *invoiceprint.Modal
	unmount func()

	mu     sync.Mutex
	alerts []string
}

func (ss *session) alert(msg string) {
	ss.mu.Lock()
	ss.alerts = append(ss.alerts, msg)
	ss.mu.Unlock()
}

// New creates a server reading orders from store and rendering through r.
func New(store OrderStore, r invoiceprint.InvoiceRenderer, opts ...Option) *Server {
	s := &Server{
		store:    store,
		renderer: r,
		base:     DefaultBasePath,
		log:      zerolog.Nop(),
		sessions: make(map[string]*session),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "invoiceprint preview",
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})
	s.app.Use(recover.New())
	s.app.Use(requestLogger(s.log))
	s.routes()

	return s
}

func (s *Server) routes() {
	g := s.app.Group(strings.TrimSuffix(s.base, "/"))
	g.Get("/", s.listOrders)
	g.Post("/orders/:id/preview", s.openPreview)

	ss := g.Group("/sessions/:sid")
	ss.Get("/", s.loadSession, s.showSession)
	ss.Post("/template", s.loadSession, s.selectTemplate)
	ss.Get("/print", s.loadSession, s.printInvoice)
	ss.Get("/pdf", s.loadSession, s.downloadPDF)
	ss.Post("/keys", s.loadSession, s.dispatchKey)
	ss.Post("/close", s.loadSession, s.closeSession)
}

// App returns the underlying Fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// BasePath returns the normalized URL prefix.
func (s *Server) BasePath() string {
	return s.base
}

// Listen serves on addr until Shutdown.
func (s *Server) Listen(addr string) error {
	s.log.Info().Str("addr", addr).Str("base", s.base).Msg("preview server listening")
	return s.app.Listen(addr)
}

// Shutdown stops accepting requests and unmounts every open session.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.app.ShutdownWithContext(ctx)

	s.mu.Lock()
	open := make([]*session, 0, len(s.sessions))
	for _, ss := range s.sessions {
		open = append(open, ss)
	}
	s.sessions = make(map[string]*session)
	s.mu.Unlock()

	for _, ss := range open {
		ss.unmount()
	}
	return err
}

// Sessions returns the number of open preview sessions.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// newSession mounts a modal for order in a fresh document.
func (s *Server) newSession(order *invoiceprint.Order, t invoiceprint.Template) *session {
	ss := &session{
		id:  uuid.NewString(),
		doc: &invoiceprint.Document{},
	}
	ss.modal = invoiceprint.NewModal(s.renderer, order, func() { s.forget(ss) },
		invoiceprint.WithAlerter(ss.alert),
		invoiceprint.WithModalLogger(s.log.With().Str("session", ss.id).Logger()),
		invoiceprint.WithInitialTemplate(t),
	)
	ss.unmount = ss.modal.Mount(ss.doc)

	s.mu.Lock()
	s.sessions[ss.id] = ss
	s.mu.Unlock()
	return ss
}

// forget is the modal's dismissal callback.
func (s *Server) forget(ss *session) {
	ss.unmount()
	s.mu.Lock()
	delete(s.sessions, ss.id)
	s.mu.Unlock()
	s.log.Debug().Str("session", ss.id).Msg("preview closed")
}

// Alerts returns the user-facing messages raised in a session, oldest
// first. Unknown sessions have none.
func (s *Server) Alerts(sessionID string) []string {
	ss, ok := s.session(sessionID)
	if !ok {
		return nil
	}
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return append([]string(nil), ss.alerts...)
}

func (s *Server) session(id string) (*session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ss, ok := s.sessions[id]
	return ss, ok
}

func (s *Server) actions(ss *session) invoiceprint.ModalActions {
	prefix := s.base + "sessions/" + ss.id
	return invoiceprint.ModalActions{
		Template: prefix + "/template",
		Download: prefix + "/pdf",
		Close:    prefix + "/close",
		Keys:     prefix + "/keys",
		Done:     s.base,
	}
}

func (s *Server) sessionURL(ss *session) string {
	return s.base + "sessions/" + ss.id
}

// handleError maps fiber errors to plain-text responses.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError {
		s.log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.Status(code).SendString(err.Error())
}

func requestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.Debug().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
		return err
	}
}

func normalizeBase(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return "/"
	}
	return "/" + p + "/"
}
