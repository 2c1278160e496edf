package handler

import (
	"time"

	"journal-service/internal/domain/entity"

	"github.com/google/uuid"
)

type entryResponse struct {
	ID           uuid.UUID `json:"id"`
	EntryDate    time.Time `json:"entry_date"`
	EntryDay     string    `json:"entry_day"`
	Rating       *int32    `json:"rating"`
	Mood         string    `json:"mood"`
	JournalEntry *string   `json:"journal_entry"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toEntryResponse(e *entity.JournalEntry) *entryResponse {
	return &entryResponse{
		ID:           e.ID,
		EntryDate:    e.EntryDate,
		EntryDay:     e.EntryDay,
		Rating:       e.Rating,
		Mood:         entity.MoodEmoji(e.Rating),
		JournalEntry: e.JournalText,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

type dayRatingResponse struct {
	Day      string `json:"day"`
	Weekday  string `json:"weekday"`
	Rating   *int32 `json:"rating"`
	Mood     string `json:"mood"`
	HasEntry bool   `json:"has_entry"`
}

type weeklySummaryResponse struct {
	Days      []dayRatingResponse `json:"days"`
	RatedDays int                 `json:"rated_days"`
	Average   *float64            `json:"average"`
}

func toWeeklySummaryResponse(s *entity.RatingSummary) *weeklySummaryResponse {
	resp := &weeklySummaryResponse{
		Days:      make([]dayRatingResponse, 0, len(s.Days)),
		RatedDays: s.Rated(),
	}
	for _, d := range s.Days {
		resp.Days = append(resp.Days, dayRatingResponse{
			Day:      d.Day.String(),
			Weekday:  d.Day.Weekday().String()[:3],
			Rating:   d.Rating,
			Mood:     entity.MoodEmoji(d.Rating),
			HasEntry: d.HasEntry,
		})
	}
	if avg, ok := s.Average(); ok {
		resp.Average = &avg
	}
	return resp
}

type feedbackResponse struct {
	Raw        string    `json:"raw"`
	Commentary string    `json:"commentary"`
	Actions    []string  `json:"actions"`
	CreatedAt  time.Time `json:"created_at"`
}

func toFeedbackResponse(f *entity.Feedback) *feedbackResponse {
	if f == nil {
		return nil
	}
	actions := f.Actions
	if actions == nil {
		actions = []string{}
	}
	return &feedbackResponse{
		Raw:        f.Raw,
		Commentary: f.Commentary,
		Actions:    actions,
		CreatedAt:  f.CreatedAt,
	}
}

type submitResponse struct {
	Entry             *entryResponse    `json:"entry"`
	Feedback          *feedbackResponse `json:"feedback,omitempty"`
	FeedbackError     string            `json:"feedback_error,omitempty"`
	FeedbackErrorCode string            `json:"feedback_error_code,omitempty"`
}

type tokenResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

func toTokenResponse(p *entity.TokenPair) tokenResponse {
	return tokenResponse{
		AccessToken:           p.AccessToken,
		RefreshToken:          p.RefreshToken,
		AccessTokenExpiresAt:  p.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: p.RefreshTokenExpiresAt,
		TokenType:             "Bearer",
	}
}
