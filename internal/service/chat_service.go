package service

import (
	"context"
	"strings"

	"smartassist/internal/dto"
	"smartassist/internal/models"

	"go.uber.org/zap"
)

const (
	unclearReply = "I can help you with department questions or room/lab bookings. Could you rephrase your message?"

	unavailableReply = "The assistant is temporarily unavailable. Please try again in a moment."
)

// IntentClassifier labels a message; implemented by IntentService.
type IntentClassifier interface {
	Classify(ctx context.Context, message string) models.IntentLabel
}

// EntityExtractor pulls booking fields from a message; implemented by
// ExtractorService.
type EntityExtractor interface {
	Extract(ctx context.Context, message string) models.BookingDraft
}

// AnswerComposer produces a grounded answer; implemented by AnswerService.
type AnswerComposer interface {
	Answer(ctx context.Context, question string) (models.Answer, error)
}

// ChatService is the top-level state machine behind /chat. Every message
// is classified independently: there is no conversation state between
// calls, and a booking-type response is a draft only — persistence belongs
// to the booking API.
type ChatService struct {
	classifier IntentClassifier
	extractor  EntityExtractor
	composer   AnswerComposer
	logger     *zap.Logger
}

func NewChatService(classifier IntentClassifier, extractor EntityExtractor, composer AnswerComposer, logger *zap.Logger) *ChatService {
	return &ChatService{
		classifier: classifier,
		extractor:  extractor,
		composer:   composer,
		logger:     logger,
	}
}

// Respond produces one of the four chat response shapes for a message.
func (s *ChatService) Respond(ctx context.Context, message, userID string) *dto.ChatResponse {
	intent := s.classifier.Classify(ctx, message)

	s.logger.Info("Message classified",
		zap.String("intent", string(intent)),
		zap.String("user_id", userID),
	)

	switch intent {
	case models.IntentBooking:
		return s.respondBooking(ctx, message)
	case models.IntentQuestion:
		return s.respondQuestion(ctx, message)
	default:
		return &dto.ChatResponse{
			Type:    "unclear",
			Content: unclearReply,
		}
	}
}

func (s *ChatService) respondBooking(ctx context.Context, message string) *dto.ChatResponse {
	draft := s.extractor.Extract(ctx, message)

	if missing := draft.MissingFields(); len(missing) > 0 {
		return &dto.ChatResponse{
			Type:    "clarification",
			Content: "To book a resource I still need: " + strings.Join(missing, ", ") + ". Could you provide the missing details?",
		}
	}

	return &dto.ChatResponse{
		Type:    "booking",
		Content: "I understand you'd like to book a resource. Please confirm the details below.",
		Booking: &dto.BookingDraftPayload{
			Resource: *draft.Resource,
			Date:     *draft.Date,
			Time:     *draft.Time,
			Duration: *draft.Duration,
		},
	}
}

func (s *ChatService) respondQuestion(ctx context.Context, message string) *dto.ChatResponse {
	answer, err := s.composer.Answer(ctx, message)
	if err != nil {
		// An unrecovered gateway outage becomes an apology in the chat
		// flow, not an HTTP error
		s.logger.Error("Answer composition failed", zap.Error(err))
		return &dto.ChatResponse{
			Type:    "answer",
			Content: unavailableReply,
		}
	}

	return &dto.ChatResponse{
		Type:    "answer",
		Content: answer.Text,
		Source:  answer.Source,
	}
}
