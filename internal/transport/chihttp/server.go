// Package chihttp wires the use-case services into a chi router.
package chihttp

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/finlit-labs/expcards/internal/domain"
	"github.com/finlit-labs/expcards/internal/i18n"
	"github.com/finlit-labs/expcards/internal/metrics"
	adminuc "github.com/finlit-labs/expcards/internal/usecase/admin"
	askuc "github.com/finlit-labs/expcards/internal/usecase/ask"
	healthuc "github.com/finlit-labs/expcards/internal/usecase/health"
)

// Server exposes the ask, admin, and health services over HTTP.
type Server struct {
	ask      *askuc.Service
	admin    *adminuc.Service
	health   *healthuc.Service
	validate *validator.Validate
	logger   *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(
	ask *askuc.Service,
	admin *adminuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	return &Server{
		ask:      ask,
		admin:    admin,
		health:   health,
		validate: validator.New(),
		logger:   logger,
	}
}

// Routes mounts all handlers on a chi router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/ask", s.handleAsk)
	r.Post("/admin/cards", s.handleAddCard)
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

// handleAsk handles POST /ask.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.AskRequestsTotal.WithLabelValues("invalid").Inc()
		writeError(w, http.StatusBadRequest, "invalid_request", i18n.Message("", "invalid_request"))
		return
	}
	lang := req.Lang
	if lang == "" {
		lang = i18n.DefaultLang
	}
	if err := s.validate.Struct(req); err != nil {
		metrics.AskRequestsTotal.WithLabelValues("invalid").Inc()
		writeError(w, http.StatusBadRequest, "invalid_request", i18n.Message(lang, "invalid_request"))
		return
	}

	region := domain.Region(req.Region)
	if region == "" {
		region = domain.RegionCanada
	}

	res, err := s.ask.Ask(r.Context(), domain.Question{
		Text:     req.Question,
		Region:   region,
		Lang:     lang,
		Demo:     req.Demo,
		ShowMore: req.ShowMore,
	})
	if err != nil {
		s.handleAskError(w, err, lang)
		return
	}

	message := ""
	if len(res.Visible) == 0 {
		metrics.AskRequestsTotal.WithLabelValues("empty").Inc()
		message = i18n.Message(lang, "no_matches")
	} else {
		metrics.AskRequestsTotal.WithLabelValues("ok").Inc()
	}
	writeJSON(w, http.StatusOK, resultToResponse(res, message))
}

// handleAddCard handles POST /admin/cards.
func (s *Server) handleAddCard(w http.ResponseWriter, r *http.Request) {
	var req addCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", i18n.Message("", "invalid_request"))
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", i18n.Message("", "invalid_request"))
		return
	}

	card, err := s.admin.AddCard(r.Context(), adminuc.NewCard{
		Title:       req.Title,
		Category:    req.Category,
		Tags:        req.Tags,
		Content:     req.Content,
		ContentLang: req.ContentLang,
	})
	if err != nil {
		if reason := domain.RejectionReason(err); reason != "" {
			metrics.SafetyRejectionsTotal.WithLabelValues(reason).Inc()
			writeError(w, http.StatusUnprocessableEntity, reason, i18n.Message(req.ContentLang, reason))
			return
		}
		s.logger.Error("add card failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", i18n.Message("", "internal_error"))
		return
	}

	writeJSON(w, http.StatusCreated, cardResponse{
		ID:          card.ID,
		Title:       card.Title,
		Category:    card.Category,
		Tags:        card.Tags,
		Content:     card.Content,
		ContentLang: card.ContentLang,
		CreatedAt:   card.CreatedAt.Format(time.RFC3339),
	})
}

// handleHealth handles GET /healthz.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// handleAskError maps pipeline errors to HTTP responses. A safety rejection
// is a 422 with its reason code; a short question is a 400; anything else is
// a 500 with no internals leaked.
func (s *Server) handleAskError(w http.ResponseWriter, err error, lang string) {
	if errors.Is(err, domain.ErrQuestionTooShort) {
		metrics.AskRequestsTotal.WithLabelValues("invalid").Inc()
		writeError(w, http.StatusBadRequest, "question_too_short", i18n.Message(lang, "question_too_short"))
		return
	}
	if reason := domain.RejectionReason(err); reason != "" {
		metrics.AskRequestsTotal.WithLabelValues("rejected").Inc()
		metrics.SafetyRejectionsTotal.WithLabelValues(reason).Inc()
		writeError(w, http.StatusUnprocessableEntity, reason, i18n.Message(lang, reason))
		return
	}

	s.logger.Error("ask failed", zap.Error(err))
	metrics.AskRequestsTotal.WithLabelValues("invalid").Inc()
	writeError(w, http.StatusInternalServerError, "internal_error", i18n.Message(lang, "internal_error"))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
