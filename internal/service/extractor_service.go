package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"smartassist/internal/models"

	"go.uber.org/zap"
)

// ExtractorService pulls structured booking fields out of free text. It is
// best-effort by contract: parse failures return an all-absent draft and
// plausibility checks are left to the orchestrator or a human approver.
type ExtractorService struct {
	gateway Gateway
	logger  *zap.Logger
	now     func() time.Time
}

func NewExtractorService(gateway Gateway, logger *zap.Logger) *ExtractorService {
	return &ExtractorService{
		gateway: gateway,
		logger:  logger,
		now:     time.Now,
	}
}

func buildExtractionPrompt(message string, today time.Time) string {
	return fmt.Sprintf(`Extract booking details from this message. Today's date is %s (%s).

Return ONLY a JSON object with exactly these four fields, no markdown, no comments:
{
  "resource": "room, lab, or equipment name, or null if not mentioned",
  "date": "YYYY-MM-DD, resolving words like tomorrow against today's date, or null",
  "time": "time of day such as 3:00 PM, or null",
  "duration": "how long, such as 2 hours, or null"
}

Use JSON null for any field not present in the message. Do not invent values.

Message: "%s"

JSON:`, today.Format("2006-01-02"), today.Format("Monday"), message)
}

// Extract returns a booking draft for the message. Never returns an error:
// a gateway failure or malformed reply yields a draft with all four fields
// absent, which the orchestrator turns into a clarification.
func (s *ExtractorService) Extract(ctx context.Context, message string) models.BookingDraft {
	reply, err := s.gateway.Complete(ctx, buildExtractionPrompt(message, s.now()))
	if err != nil {
		s.logger.Warn("Entity extraction failed, returning empty draft", zap.Error(err))
		return models.BookingDraft{}
	}

	draft, ok := parseDraft(reply)
	if !ok {
		s.logger.Warn("Failed to parse extraction reply, returning empty draft",
			zap.String("reply", reply),
		)
		return models.BookingDraft{}
	}

	draft.Date = normalizeDate(draft.Date)
	draft.Time = normalizeTime(draft.Time)
	return draft
}

// parseDraft decodes the model reply as a JSON object, tolerating markdown
// code fences and prose around the object. All-or-nothing: a reply that
// does not decode yields no fields at all.
func parseDraft(reply string) (models.BookingDraft, bool) {
	content := strings.TrimSpace(reply)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	jsonStart := strings.Index(content, "{")
	jsonEnd := strings.LastIndex(content, "}")
	if jsonStart == -1 || jsonEnd == -1 || jsonEnd < jsonStart {
		return models.BookingDraft{}, false
	}

	var draft models.BookingDraft
	if err := json.Unmarshal([]byte(content[jsonStart:jsonEnd+1]), &draft); err != nil {
		return models.BookingDraft{}, false
	}

	// Models sometimes emit the literal string "null" instead of JSON null
	draft.Resource = dropNullString(draft.Resource)
	draft.Date = dropNullString(draft.Date)
	draft.Time = dropNullString(draft.Time)
	draft.Duration = dropNullString(draft.Duration)

	return draft, true
}

func dropNullString(s *string) *string {
	if s == nil {
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(*s)) {
	case "", "null", "none", "n/a":
		return nil
	}
	return s
}

var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"2 January 2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// normalizeDate rewrites a recognized date into ISO-8601 (YYYY-MM-DD).
// Unrecognized values pass through unchanged per the best-effort contract.
func normalizeDate(s *string) *string {
	if s == nil {
		return nil
	}
	value := strings.TrimSpace(*s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			normalized := t.Format("2006-01-02")
			return &normalized
		}
	}
	return s
}

var timeLayouts = []string{
	"3:04 PM",
	"3:04PM",
	"15:04",
	"15:04:05",
	"3 PM",
	"3PM",
}

// normalizeTime rewrites a recognized time into 12-hour "H:MM AM/PM" form.
func normalizeTime(s *string) *string {
	if s == nil {
		return nil
	}
	value := strings.ToUpper(strings.TrimSpace(*s))
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			normalized := t.Format("3:04 PM")
			return &normalized
		}
	}
	return s
}
