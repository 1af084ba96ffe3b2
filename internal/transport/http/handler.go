package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"quizcraft-service/internal/app"
	"quizcraft-service/internal/domain"
)

// Handler exposes quiz authoring over REST.
type Handler struct {
	service *app.QuizService
}

func NewHandler(service *app.QuizService) *Handler {
	return &Handler{service: service}
}

// Register mounts the quiz routes on r.
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/quizzes", h.ListQuizzes).Methods(http.MethodGet)
	r.HandleFunc("/quizzes", h.CreateQuiz).Methods(http.MethodPost)
	r.HandleFunc("/quizzes/{id}", h.GetQuiz).Methods(http.MethodGet)
	r.HandleFunc("/quizzes/{id}", h.UpdateQuiz).Methods(http.MethodPut)
	r.HandleFunc("/quizzes/{id}", h.DeleteQuiz).Methods(http.MethodDelete)
}

func (h *Handler) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.service.ListSummaries(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (h *Handler) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	var quiz domain.Quiz
	if err := json.NewDecoder(r.Body).Decode(&quiz); err != nil {
		writeJSON(w, http.StatusBadRequest, errorPayload{Error: "invalid quiz payload"})
		return
	}

	id, err := h.service.Create(r.Context(), quiz)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *Handler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	quiz, err := h.service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}

func (h *Handler) UpdateQuiz(w http.ResponseWriter, r *http.Request) {
	var quiz domain.Quiz
	if err := json.NewDecoder(r.Body).Decode(&quiz); err != nil {
		writeJSON(w, http.StatusBadRequest, errorPayload{Error: "invalid quiz payload"})
		return
	}
	quiz.ID = mux.Vars(r)["id"]

	if err := h.service.Update(r.Context(), quiz); err != nil {
		writeError(w, err)
		return
	}
	summary, err := h.service.GetSummary(r.Context(), quiz.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) DeleteQuiz(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type errorPayload struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrQuizNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidQuiz):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrStoreUnavailable), errors.Is(err, domain.ErrAtomicityUnsupported):
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, errorPayload{Error: err.Error()})
}
