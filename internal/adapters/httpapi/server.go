// Package httpapi exposes the storefront over HTTP for `pm serve`.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/bnema/primemall-cli/internal/application"
	"github.com/bnema/primemall-cli/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

const requestIDHeader = "X-Request-ID"

// maxBodyBytes bounds request bodies; knowledge updates are the largest.
const maxBodyBytes = 1 << 20

type Storefront interface {
	Signup(ctx context.Context, cmd application.SignupCommand) (domain.Account, error)
	Login(ctx context.Context, cmd application.LoginCommand) (domain.Account, error)
	Logout(ctx context.Context) error
	AddToCart(ctx context.Context, productID domain.ItemID) (application.CartView, error)
	RemoveFromCart(ctx context.Context, productID domain.ItemID) (application.CartView, error)
	SetQuantity(ctx context.Context, cmd application.SetQuantityCommand) (application.CartView, error)
	ClearCart(ctx context.Context) (application.CartView, error)
	Checkout(ctx context.Context) (application.CheckoutResult, error)
	Cart(ctx context.Context) (application.CartView, error)
}

type Knowledge interface {
	GetKnowledge(ctx context.Context) string
	Sections(ctx context.Context) []domain.KnowledgeSection
	Exchange(ctx context.Context, message string) (domain.ChatExchange, error)
	UpdateKnowledge(ctx context.Context, text string) error
}

type FAQ interface {
	Entries() []domain.FaqEntry
	Ask(ctx context.Context, key string) (domain.FaqEntry, error)
}

type Catalog interface {
	List(ctx context.Context) ([]domain.Product, error)
}

type Server struct {
	store     Storefront
	knowledge Knowledge
	faq       FAQ
	catalog   Catalog
	log       logrus.FieldLogger
}

func NewServer(store Storefront, knowledge Knowledge, faq FAQ, catalog Catalog, log logrus.FieldLogger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Server{
		store:     store,
		knowledge: knowledge,
		faq:       faq,
		catalog:   catalog,
		log:       log.WithField("component", "httpapi"),
	}
}

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	// Chat waits for confirmation for up to ten minutes.
	r.Use(middleware.Timeout(11 * time.Minute))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", s.handleCatalog)

		r.Get("/faq", s.handleFAQList)
		r.Get("/faq/{key}", s.handleFAQAsk)

		r.Get("/knowledge", s.handleKnowledge)
		r.Put("/knowledge", s.handleKnowledgeUpdate)
		r.Get("/knowledge/sections", s.handleSections)

		r.Post("/chat", s.handleChat)

		r.Post("/session/signup", s.handleSignup)
		r.Post("/session/login", s.handleLogin)
		r.Post("/session/logout", s.handleLogout)

		r.Get("/cart", s.handleCart)
		r.Post("/cart/items", s.handleAddItem)
		r.Put("/cart/items/{id}", s.handleSetQuantity)
		r.Delete("/cart/items/{id}", s.handleRemoveItem)
		r.Post("/cart/clear", s.handleClear)
		r.Post("/cart/checkout", s.handleCheckout)
	})

	return r
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		s.log.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"duration":   time.Since(start).String(),
			"request_id": w.Header().Get(requestIDHeader),
		}).Debug("request")
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{
			"message": msg,
			"status":  status,
		},
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidName),
		errors.Is(err, domain.ErrEmptyMessage),
		errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrFAQNotFound):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAdapterUnavailable),
		errors.Is(err, domain.ErrConfirmationTimeout),
		errors.Is(err, domain.ErrTransactionRejected):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.WithError(err).WithField("path", r.URL.Path).Error("request failed")
	}
	writeError(w, status, err.Error())
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}

	return true
}
