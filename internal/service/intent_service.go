package service

import (
	"context"
	"fmt"
	"strings"

	"smartassist/internal/models"

	"go.uber.org/zap"
)

// IntentService labels incoming messages as question, booking, or unclear.
// It never fails: any gateway error or unparseable reply falls back to
// unclear.
type IntentService struct {
	gateway Gateway
	logger  *zap.Logger
}

func NewIntentService(gateway Gateway, logger *zap.Logger) *IntentService {
	return &IntentService{
		gateway: gateway,
		logger:  logger,
	}
}

func buildIntentPrompt(message string) string {
	return fmt.Sprintf(`Classify this message as exactly one of: QUESTION, BOOKING, or UNCLEAR.

QUESTION = asking for information, policies, procedures, deadlines, how something works
BOOKING = requesting to book or reserve a room, lab, resource, or equipment
UNCLEAR = greetings, random text, gibberish, anything that doesn't fit the above two

Message: "%s"

Reply with only one word — QUESTION, BOOKING, or UNCLEAR:`, message)
}

// Classify returns exactly one of the three labels. BOOKING is checked
// before QUESTION: a reply containing both resolves to the actionable
// booking branch.
func (s *IntentService) Classify(ctx context.Context, message string) models.IntentLabel {
	reply, err := s.gateway.Complete(ctx, buildIntentPrompt(message))
	if err != nil {
		s.logger.Warn("Intent classification failed, defaulting to unclear", zap.Error(err))
		return models.IntentUnclear
	}

	result := strings.ToUpper(strings.TrimSpace(reply))
	if strings.Contains(result, "BOOKING") {
		return models.IntentBooking
	}
	if strings.Contains(result, "QUESTION") {
		return models.IntentQuestion
	}
	return models.IntentUnclear
}
