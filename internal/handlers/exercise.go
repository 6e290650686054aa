package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/crucial707/fittrack/internal/metrics"
	"github.com/crucial707/fittrack/internal/models"
	"github.com/crucial707/fittrack/internal/repo"
	"github.com/crucial707/fittrack/internal/timestamp"
)

// ==========================
// ExerciseHandler
// ==========================
type ExerciseHandler struct {
	Repo     *repo.ExerciseRepo
	Resolver timestamp.Resolver
}

// ==========================
// Add Exercise
// ==========================
// AddExercise serves both POST /api/users/{id}/exercises and
// POST /api/exercise/add. The body's userId wins over the path param when both
// are present.
func (h *ExerciseHandler) AddExercise(w http.ResponseWriter, r *http.Request) {
	var input struct {
		UserID      string `json:"userId"`
		Description string `json:"description"`
		Duration    *int   `json:"duration"`
		Date        string `json:"date"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	userID := input.UserID
	if userID == "" {
		userID = chi.URLParam(r, "id")
	}

	fields := make(map[string]string)
	if userID == "" {
		fields["userId"] = "required"
	}
	if input.Description == "" {
		fields["description"] = "required"
	}
	if input.Duration == nil {
		fields["duration"] = "required"
	}
	if len(fields) > 0 {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	date, err := h.Resolver.Resolve(r.Context(), input.Date)
	if err != nil {
		// Date resolution failure is not terminal: record on the current date.
		slog.Warn("date resolution failed, using current date", "input", input.Date, "err", err)
		metrics.TimestampFallbacks.Inc()
		date = models.Today()
	}

	exercise, err := h.Repo.Add(r.Context(), userID, input.Description, *input.Duration, date)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			JSONError(w, "user not found", http.StatusNotFound)
			return
		}
		slog.Error("add exercise", "user_id", userID, "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	metrics.ExercisesRecorded.Inc()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(exercise)
}
