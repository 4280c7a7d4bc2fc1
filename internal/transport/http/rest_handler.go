package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"quizgrade-service/internal/app"
	"quizgrade-service/internal/domain"
)

// RESTHandler exposes the grading use cases over JSON endpoints.
type RESTHandler struct {
	service *app.GradingService
	logger  *zap.Logger
}

func NewRESTHandler(service *app.GradingService, logger *zap.Logger) *RESTHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RESTHandler{service: service, logger: logger}
}

// Mount registers the API routes on a chi router.
func (h *RESTHandler) Mount(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/quizzes/{quizID}", h.getQuiz)
		r.Post("/quizzes/{quizID}/submit", h.submit)
		r.Get("/quizzes/{quizID}/results", h.listResults)
		r.Get("/quizzes/{quizID}/stats", h.stats)
		r.Get("/results/{resultID}", h.getResult)
	})
}

// questionView hides the answer key from test-takers.
type questionView struct {
	ID         string   `json:"id"`
	Text       string   `json:"question_text"`
	Type       string   `json:"type"`
	Options    []string `json:"options,omitempty"`
	Difficulty string   `json:"difficulty,omitempty"`
	Points     int      `json:"points"`
}

type quizView struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	TimeLimit int            `json:"time_limit"`
	Questions []questionView `json:"questions"`
}

func (h *RESTHandler) getQuiz(w http.ResponseWriter, r *http.Request) {
	quizID := chi.URLParam(r, "quizID")

	quiz, err := h.service.Quiz(r.Context(), quizID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	view := quizView{
		ID:        quiz.ID,
		Title:     quiz.Title,
		TimeLimit: quiz.TimeLimit,
		Questions: make([]questionView, 0, len(quiz.Questions)),
	}
	for _, q := range quiz.Questions {
		view.Questions = append(view.Questions, questionView{
			ID:         q.ID,
			Text:       q.Text,
			Type:       string(q.Type),
			Options:    q.Options,
			Difficulty: q.Difficulty,
			Points:     q.Points,
		})
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"quiz": view})
}

type submitRequest struct {
	UserID  string `json:"user_id"`
	Answers []any  `json:"answers"`
}

func (h *RESTHandler) submit(w http.ResponseWriter, r *http.Request) {
	quizID := chi.URLParam(r, "quizID")

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid submission payload"})
		return
	}

	// Dynamic clients sometimes post numbers or nulls; anything but strings
	// is rejected here so the engine only ever sees a strict submission.
	answers := make([]string, 0, len(req.Answers))
	for i, raw := range req.Answers {
		answer, ok := raw.(string)
		if !ok {
			h.logger.Warn("rejected non-string answer",
				zap.String("quiz_id", quizID),
				zap.Int("position", i),
			)
			h.writeJSON(w, http.StatusBadRequest, map[string]any{"error": "answers must be strings"})
			return
		}
		answers = append(answers, answer)
	}

	result, err := h.service.Submit(r.Context(), quizID, req.UserID, answers)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]any{"result": result})
}

func (h *RESTHandler) listResults(w http.ResponseWriter, r *http.Request) {
	quizID := chi.URLParam(r, "quizID")
	userID := r.URL.Query().Get("user_id")

	results, err := h.service.Results(r.Context(), quizID, userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"results": results, "total": len(results)})
}

func (h *RESTHandler) stats(w http.ResponseWriter, r *http.Request) {
	quizID := chi.URLParam(r, "quizID")

	stats, err := h.service.Stats(r.Context(), quizID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}

func (h *RESTHandler) getResult(w http.ResponseWriter, r *http.Request) {
	resultID := chi.URLParam(r, "resultID")

	result, err := h.service.Result(r.Context(), resultID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"result": result})
}

func (h *RESTHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrQuizNotFound), errors.Is(err, domain.ErrResultNotFound):
		h.writeJSON(w, http.StatusNotFound, map[string]any{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidQuiz):
		// Upstream data corruption, not a client mistake.
		h.logger.Error("unfit quiz definition", zap.Error(err))
		h.writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "quiz definition is invalid"})
	default:
		h.logger.Error("request failed", zap.Error(err))
		h.writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal error"})
	}
}

func (h *RESTHandler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("write response", zap.Error(err))
	}
}
