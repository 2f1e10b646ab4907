package http

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"edulite-assessment-service/internal/app"
	"edulite-assessment-service/internal/domain"
)

// Handler exposes the assessment core over JSON/HTTP. All failures here are
// per-request; nothing is fatal to the process.
type Handler struct {
	attempts      *app.AttemptService
	tasks         *app.TaskService
	participation *app.ParticipationService
	catalog       *app.CatalogService
}

func NewHandler(attempts *app.AttemptService, tasks *app.TaskService, participation *app.ParticipationService, catalog *app.CatalogService) *Handler {
	return &Handler{attempts: attempts, tasks: tasks, participation: participation, catalog: catalog}
}

// Register mounts all routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("PUT /quizzes/{quizID}", h.saveQuiz)
	mux.HandleFunc("POST /quizzes/{quizID}/attempts", h.startAttempt)
	mux.HandleFunc("GET /quizzes/{quizID}/attempts", h.getAttempt)
	mux.HandleFunc("POST /attempts/{attemptID}/submit", h.submitAttempt)
	mux.HandleFunc("POST /communities/{communityID}/tasks", h.createTask)
	mux.HandleFunc("GET /communities/{communityID}/tasks", h.listTasks)
	mux.HandleFunc("PUT /communities/{communityID}/tasks/{taskID}", h.updateTask)
	mux.HandleFunc("DELETE /communities/{communityID}/tasks/{taskID}", h.deleteTask)
	mux.HandleFunc("GET /communities/{communityID}/participation", h.computeParticipation)
	mux.HandleFunc("GET /communities/{communityID}/gradebook", h.exportGradebook)
}

func (h *Handler) saveQuiz(w http.ResponseWriter, r *http.Request) {
	var quiz domain.Quiz
	if err := json.NewDecoder(r.Body).Decode(&quiz); err != nil {
		writeError(w, http.StatusBadRequest, "invalid quiz payload")
		return
	}
	quiz.ID = r.PathValue("quizID")
	if err := h.catalog.SaveQuiz(r.Context(), quiz); err != nil {
		writeDomainError(w, err, nil)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type startAttemptRequest struct {
	UserID string `json:"userId"`
}

func (h *Handler) startAttempt(w http.ResponseWriter, r *http.Request) {
	var req startAttemptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		writeError(w, http.StatusBadRequest, "missing userId")
		return
	}
	attempt, err := h.attempts.StartAttempt(r.Context(), r.PathValue("quizID"), req.UserID)
	if err != nil {
		writeDomainError(w, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, attempt)
}

func (h *Handler) getAttempt(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing userId")
		return
	}
	attempt, err := h.attempts.GetAttempt(r.Context(), r.PathValue("quizID"), userID)
	if err != nil {
		writeDomainError(w, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, attempt)
}

type submitAttemptRequest struct {
	Answers []domain.Answer `json:"answers"`
}

func (h *Handler) submitAttempt(w http.ResponseWriter, r *http.Request) {
	var req submitAttemptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid answers payload")
		return
	}
	attempt, err := h.attempts.SubmitAttempt(r.Context(), r.PathValue("attemptID"), req.Answers)
	if err != nil {
		// The duplicate-submit conflict still carries the authoritative
		// result so the caller can render it without another round trip.
		writeDomainError(w, err, &attempt)
		return
	}
	writeJSON(w, http.StatusOK, attempt)
}

func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	var task domain.AssessmentTask
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		writeError(w, http.StatusBadRequest, "invalid task payload")
		return
	}
	task.CommunityID = r.PathValue("communityID")
	created, err := h.tasks.CreateTask(r.Context(), task)
	if err != nil {
		writeDomainError(w, err, nil)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.ListTasks(r.Context(), r.PathValue("communityID"))
	if err != nil {
		writeDomainError(w, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *Handler) updateTask(w http.ResponseWriter, r *http.Request) {
	var task domain.AssessmentTask
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		writeError(w, http.StatusBadRequest, "invalid task payload")
		return
	}
	task.ID = r.PathValue("taskID")
	task.CommunityID = r.PathValue("communityID")
	updated, err := h.tasks.UpdateTask(r.Context(), task)
	if err != nil {
		writeDomainError(w, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.tasks.DeleteTask(r.Context(), r.PathValue("communityID"), r.PathValue("taskID")); err != nil {
		writeDomainError(w, err, nil)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) computeParticipation(w http.ResponseWriter, r *http.Request) {
	grouped, err := h.participation.ComputeParticipation(r.Context(), r.PathValue("communityID"), r.URL.Query().Get("studentId"))
	if err != nil {
		writeDomainError(w, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, grouped)
}

func (h *Handler) exportGradebook(w http.ResponseWriter, r *http.Request) {
	communityID := r.PathValue("communityID")
	tasks, err := h.tasks.ListTasks(r.Context(), communityID)
	if err != nil {
		writeDomainError(w, err, nil)
		return
	}
	grouped, err := h.participation.ComputeParticipation(r.Context(), communityID, "")
	if err != nil {
		writeDomainError(w, err, nil)
		return
	}

	rows := app.BuildGradebook(tasks, grouped)
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="gradebook.csv"`)
	writer := csv.NewWriter(w)
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			log.Printf("write gradebook row: %v", err)
			return
		}
	}
	writer.Flush()
}

type errorResponse struct {
	Error   string              `json:"error"`
	Attempt *domain.QuizAttempt `json:"attempt,omitempty"`
}

func writeDomainError(w http.ResponseWriter, err error, attempt *domain.QuizAttempt) {
	switch {
	case errors.Is(err, domain.ErrAlreadySubmitted):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), Attempt: attempt})
	case errors.Is(err, domain.ErrQuizNotFound),
		errors.Is(err, domain.ErrAttemptNotFound),
		errors.Is(err, domain.ErrTaskNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidTask), errors.Is(err, domain.ErrInvalidQuiz):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		log.Printf("internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	if body == nil {
		w.WriteHeader(status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("encode response: %v", err)
	}
}
