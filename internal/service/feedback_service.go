package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"journal-service/internal/domain/entity"
	"journal-service/internal/domain/service"
	"journal-service/internal/infrastructure/metrics"

	"go.uber.org/zap"
)

const feedbackPromptTemplate = `You are a warm, supportive journaling companion.
Read the journal entry below and reply in two parts.

First, write a short empathetic comment (3 to 5 sentences) that acknowledges how the writer feels.
Then write a line that says exactly "%s" followed by 2 to 4 concrete, gentle suggestions, one per line, each starting with "- ".

Journal entry:
"""
%s
"""`

type feedbackService struct {
	client  service.CompletionClient
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewFeedbackService creates a new feedback service
func NewFeedbackService(client service.CompletionClient, m *metrics.Metrics, logger *zap.Logger) service.FeedbackService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &feedbackService{
		client:  client,
		metrics: m,
		logger:  logger.Named("feedback"),
	}
}

// BuildFeedbackPrompt formats journal text into a single completion request
func BuildFeedbackPrompt(text string) string {
	return fmt.Sprintf(feedbackPromptTemplate, entity.ActionsLabel, strings.TrimSpace(text))
}

// RequestFeedback sends one completion request and returns the response as is.
// Quota and authorization failures keep entity.ErrQuotaExceeded in the chain.
func (s *feedbackService) RequestFeedback(ctx context.Context, text string) (*entity.Feedback, error) {
	if strings.TrimSpace(text) == "" {
		return nil, entity.NewValidationError("journal_entry", "cannot be empty")
	}

	raw, err := s.client.Complete(ctx, BuildFeedbackPrompt(text))
	s.metrics.FeedbackRequested(err)
	if err != nil {
		if errors.Is(err, entity.ErrQuotaExceeded) {
			s.logger.Warn("completion quota exceeded", zap.Error(err))
			return nil, err
		}
		if errors.Is(err, entity.ErrCompletionFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", entity.ErrCompletionFailed, err)
	}

	commentary, actions := ParseFeedback(raw)
	return &entity.Feedback{
		Raw:        raw,
		Commentary: commentary,
		Actions:    actions,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

// ParseFeedback splits a response at the recommended actions label.
// Without the label the whole text is commentary.
func ParseFeedback(raw string) (commentary string, actions []string) {
	idx := strings.Index(raw, entity.ActionsLabel)
	if idx < 0 {
		return strings.TrimSpace(raw), nil
	}

	commentary = strings.TrimSpace(raw[:idx])
	for _, line := range strings.Split(raw[idx+len(entity.ActionsLabel):], "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*• ")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		actions = append(actions, line)
	}

	return commentary, actions
}
