package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"journal-service/internal/domain/entity"
	"journal-service/internal/domain/service"
	"journal-service/internal/transport/http/middleware"

	"go.uber.org/zap"
)

// EntryHandler handles journal entry HTTP requests
type EntryHandler struct {
	journalService service.JournalService
	locations      *locationResolver
	logger         *zap.Logger
	now            func() time.Time
}

// NewEntryHandler creates a new entry handler. userService supplies the
// profile zone when a request has no X-Timezone header.
func NewEntryHandler(journalService service.JournalService, userService service.UserService, logger *zap.Logger) *EntryHandler {
	return &EntryHandler{
		journalService: journalService,
		locations:      &locationResolver{userService: userService, logger: logger},
		logger:         logger,
		now:            time.Now,
	}
}

// RateToday sets today's rating
// @Summary Rate today
// @Tags entries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-Timezone header string false "IANA zone or UTC offset"
// @Param request body object{rating=int} true "Rating 1..5"
// @Success 200 {object} object{id=string,entry_day=string,rating=int,mood=string}
// @Failure 400 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /api/v1/entries/today/rating [put]
func (h *EntryHandler) RateToday(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Rating *int32 `json:"rating"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if req.Rating == nil {
		writeError(w, h.logger, entity.NewValidationError("rating", "is required"))
		return
	}

	userID := middleware.GetUserID(r)
	loc, err := h.locations.resolve(r, userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	entry, err := h.journalService.RateDay(r.Context(), userID, loc, *req.Rating)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toEntryResponse(entry))
}

// WriteToday saves today's journal text, optionally requesting feedback.
// A feedback failure is reported next to the saved entry with status 200.
// @Summary Write today's journal
// @Tags entries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-Timezone header string false "IANA zone or UTC offset"
// @Param feedback query bool false "Request AI feedback after saving"
// @Param request body object{journal_entry=string} true "Journal text"
// @Success 200 {object} object{entry=object,feedback=object,feedback_error=string}
// @Failure 400 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /api/v1/entries/today/journal [put]
func (h *EntryHandler) WriteToday(w http.ResponseWriter, r *http.Request) {
	var req struct {
		JournalEntry string `json:"journal_entry"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	withFeedback := false
	if raw := r.URL.Query().Get("feedback"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, h.logger, entity.NewValidationError("feedback", "must be a boolean"))
			return
		}
		withFeedback = v
	}

	userID := middleware.GetUserID(r)
	loc, err := h.locations.resolve(r, userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	result, err := h.journalService.SubmitJournal(r.Context(), userID, loc, req.JournalEntry, withFeedback)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	resp := submitResponse{
		Entry:    toEntryResponse(result.Entry),
		Feedback: toFeedbackResponse(result.Feedback),
	}
	if result.FeedbackErr != nil {
		resp.FeedbackErrorCode = errorCode(result.FeedbackErr)
		resp.FeedbackError = feedbackErrorMessage(result.FeedbackErr)
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetToday returns today's entry
// @Summary Get today's entry
// @Tags entries
// @Produce json
// @Security BearerAuth
// @Param X-Timezone header string false "IANA zone or UTC offset"
// @Success 200 {object} object{id=string,entry_day=string}
// @Failure 404 {object} object{error=string}
// @Router /api/v1/entries/today [get]
func (h *EntryHandler) GetToday(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	loc, err := h.locations.resolve(r, userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	entry, err := h.journalService.EntryForDay(r.Context(), userID, entity.DayKeyOf(h.now(), loc))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toEntryResponse(entry))
}

// ListEntries returns all entries of the user, newest first
// @Summary List past entries
// @Tags entries
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{entries=[]object,count=int}
// @Router /api/v1/entries [get]
func (h *EntryHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.journalService.ListEntries(r.Context(), middleware.GetUserID(r))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	items := make([]*entryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, toEntryResponse(e))
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"entries": items,
		"count":   len(items),
	})
}

// WeeklySummary returns the ratings of the last seven local days, oldest first
// @Summary Weekly rating summary
// @Tags entries
// @Produce json
// @Security BearerAuth
// @Param X-Timezone header string false "IANA zone or UTC offset"
// @Success 200 {object} object{days=[]object,rated_days=int,average=number}
// @Router /api/v1/entries/weekly [get]
func (h *EntryHandler) WeeklySummary(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	loc, err := h.locations.resolve(r, userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	summary, err := h.journalService.WeeklySummary(r.Context(), userID, loc)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toWeeklySummaryResponse(summary))
}

// FeedbackToday requests feedback on today's stored journal text
// @Summary Feedback on today's entry
// @Tags entries
// @Produce json
// @Security BearerAuth
// @Param X-Timezone header string false "IANA zone or UTC offset"
// @Success 200 {object} object{raw=string,commentary=string,actions=[]string}
// @Failure 404 {object} object{error=string}
// @Failure 429 {object} object{error=string}
// @Failure 502 {object} object{error=string}
// @Router /api/v1/entries/today/feedback [post]
func (h *EntryHandler) FeedbackToday(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	loc, err := h.locations.resolve(r, userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	feedback, err := h.journalService.FeedbackForDay(r.Context(), userID, entity.DayKeyOf(h.now(), loc))
	if err != nil {
		if errors.Is(err, entity.ErrQuotaExceeded) || errors.Is(err, entity.ErrCompletionFailed) {
			writeJSON(w, errorStatus(err), map[string]interface{}{
				"error": feedbackErrorMessage(err),
				"code":  errorCode(err),
			})
			return
		}
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toFeedbackResponse(feedback))
}

// feedbackErrorMessage is the user facing text of a feedback failure
func feedbackErrorMessage(err error) string {
	switch {
	case errors.Is(err, entity.ErrQuotaExceeded):
		return "Feedback is unavailable right now: the AI quota has been exceeded."
	case entity.IsValidation(err):
		return err.Error()
	default:
		return "Feedback could not be generated."
	}
}
