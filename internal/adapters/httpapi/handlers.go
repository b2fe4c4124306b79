package httpapi

import (
	"errors"
	"net/http"

	"github.com/bnema/primemall-cli/internal/application"
	"github.com/bnema/primemall-cli/internal/domain"
	"github.com/go-chi/chi/v5"
)

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

type chatRequest struct {
	Message string `json:"message"`
}

type knowledgeRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	products, err := s.catalog.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"products": toProductResponses(products)})
}

func (s *Server) handleFAQList(w http.ResponseWriter, r *http.Request) {
	entries := s.faq.Entries()
	out := make([]faqResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, toFAQResponse(entry))
	}

	writeJSON(w, http.StatusOK, map[string]any{"questions": out})
}

func (s *Server) handleFAQAsk(w http.ResponseWriter, r *http.Request) {
	entry, err := s.faq.Ask(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toFAQResponse(entry))
}

func (s *Server) handleKnowledge(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"text": s.knowledge.GetKnowledge(r.Context())})
}

func (s *Server) handleSections(w http.ResponseWriter, r *http.Request) {
	sections := s.knowledge.Sections(r.Context())
	out := make([]sectionResponse, 0, len(sections))
	for _, section := range sections {
		out = append(out, sectionResponse{Title: section.Title, Content: section.Content})
	}

	writeJSON(w, http.StatusOK, map[string]any{"sections": out})
}

func (s *Server) handleKnowledgeUpdate(w http.ResponseWriter, r *http.Request) {
	var req knowledgeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := s.knowledge.UpdateKnowledge(r.Context(), req.Text); err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			status = http.StatusBadRequest
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !decodeBody(w, r, &req) {
		return
	}

	exchange, err := s.knowledge.Exchange(r.Context(), req.Message)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyMessage) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.log.WithError(err).Warn("chat message could not be sent")
		writeError(w, http.StatusBadGateway, "could not send")
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		ID:          exchange.ID,
		UserMessage: exchange.UserMessage,
		Response:    exchange.Response,
		Intent:      string(exchange.Intent),
		At:          exchange.At,
	})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decodeBody(w, r, &req) {
		return
	}

	account, err := s.store.Signup(r.Context(), application.SignupCommand{Name: req.Name, Email: req.Email, Password: req.Password})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toAccountResponse(account))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	account, err := s.store.Login(r.Context(), application.LoginCommand{Email: req.Email, Password: req.Password})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toAccountResponse(account))
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Logout(r.Context()); err != nil {
		s.fail(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCart(w http.ResponseWriter, r *http.Request) {
	view, err := s.store.Cart(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toCartResponse(view))
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "product_id is required")
		return
	}

	s.writeCart(w, r)(s.store.AddToCart(r.Context(), domain.ItemID(req.ProductID)))
}

func (s *Server) handleSetQuantity(w http.ResponseWriter, r *http.Request) {
	var req setQuantityRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Quantity == nil {
		writeError(w, http.StatusBadRequest, "quantity is required")
		return
	}

	s.writeCart(w, r)(s.store.SetQuantity(r.Context(), application.SetQuantityCommand{
		ProductID: domain.ItemID(chi.URLParam(r, "id")),
		Quantity:  *req.Quantity,
	}))
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	s.writeCart(w, r)(s.store.RemoveFromCart(r.Context(), domain.ItemID(chi.URLParam(r, "id"))))
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.writeCart(w, r)(s.store.ClearCart(r.Context()))
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	result, err := s.store.Checkout(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, checkoutResponse{SpentCents: result.Spent, RemainingCents: result.Remaining})
}

func (s *Server) writeCart(w http.ResponseWriter, r *http.Request) func(application.CartView, error) {
	return func(view application.CartView, err error) {
		if err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toCartResponse(view))
	}
}
