package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/crucial707/fittrack/internal/models"
	"github.com/crucial707/fittrack/internal/repo"
)

// ==========================
// LogHandler
// ==========================
type LogHandler struct {
	Users     *repo.UserRepo
	Exercises *repo.ExerciseRepo
}

// ==========================
// Get Logs
// ==========================
// GetLogs serves GET /api/users/{id}/logs?from=&to=&limit=. The result's count
// is the number of exercises returned after filtering and limiting, not the
// user's lifetime count.
func (h *LogHandler) GetLogs(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, err := h.Users.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			JSONError(w, "user not found", http.StatusNotFound)
			return
		}
		slog.Error("get user for logs", "user_id", id, "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	filter := parseLogFilter(r.URL.Query())

	exercises, err := h.Exercises.ListForUser(r.Context(), user.ID, filter)
	if err != nil {
		slog.Error("list exercises", "user_id", id, "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	result := models.LogResult{
		ID:       user.ID,
		Username: user.Username,
		Count:    len(exercises),
		Log:      exercises,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// parseLogFilter reads from, to, and limit query params. Parsing is lenient:
// an unparseable date bound or a non-numeric limit imposes no constraint.
func parseLogFilter(q url.Values) repo.LogFilter {
	var filter repo.LogFilter

	if from := q.Get("from"); from != "" {
		if d, err := models.ParseDate(from); err == nil {
			filter.From = &d
		}
	}
	if to := q.Get("to"); to != "" {
		if d, err := models.ParseDate(to); err == nil {
			filter.To = &d
		}
	}
	if limit := q.Get("limit"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil && n > 0 {
			filter.Limit = n
		}
	}

	return filter
}
