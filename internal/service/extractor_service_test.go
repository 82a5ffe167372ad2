package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestExtractor(gw *fakeGateway) *ExtractorService {
	svc := NewExtractorService(gw, zap.NewNop())
	svc.now = func() time.Time {
		return time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestExtractFullDraft(t *testing.T) {
	gw := &fakeGateway{replies: []string{
		`{"resource": "Lab 2", "date": "2025-03-11", "time": "3:00 PM", "duration": "2 hours"}`,
	}}
	svc := newTestExtractor(gw)

	draft := svc.Extract(context.Background(), "book lab 2 tomorrow at 3pm for 2 hours")

	require.True(t, draft.Complete())
	assert.Equal(t, "Lab 2", *draft.Resource)
	assert.Equal(t, "2025-03-11", *draft.Date)
	assert.Equal(t, "3:00 PM", *draft.Time)
	assert.Equal(t, "2 hours", *draft.Duration)
}

func TestExtractStripsMarkdownFences(t *testing.T) {
	gw := &fakeGateway{replies: []string{
		"```json\n{\"resource\": \"Room 101\", \"date\": null, \"time\": null, \"duration\": null}\n```",
	}}
	svc := newTestExtractor(gw)

	draft := svc.Extract(context.Background(), "I need room 101")

	require.NotNil(t, draft.Resource)
	assert.Equal(t, "Room 101", *draft.Resource)
	assert.Nil(t, draft.Date)
	assert.Equal(t, []string{"date", "time", "duration"}, draft.MissingFields())
}

func TestExtractTolerantOfSurroundingProse(t *testing.T) {
	gw := &fakeGateway{replies: []string{
		`Here are the extracted details: {"resource": "projector", "date": null, "time": null, "duration": "1 hour"} Let me know if you need more.`,
	}}
	svc := newTestExtractor(gw)

	draft := svc.Extract(context.Background(), "need the projector for an hour")

	require.NotNil(t, draft.Resource)
	assert.Equal(t, "projector", *draft.Resource)
	assert.Equal(t, "1 hour", *draft.Duration)
}

func TestExtractUnparseableReplyYieldsEmptyDraft(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"no json at all", "I could not find any booking details."},
		{"broken json", `{"resource": "lab`},
		{"empty reply", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestExtractor(&fakeGateway{replies: []string{tt.reply}})

			draft := svc.Extract(context.Background(), "book something")

			assert.Nil(t, draft.Resource)
			assert.Equal(t, []string{"resource", "date", "time", "duration"}, draft.MissingFields())
		})
	}
}

func TestExtractGatewayFailureYieldsEmptyDraft(t *testing.T) {
	svc := newTestExtractor(&fakeGateway{err: ErrModelUnavailable})

	draft := svc.Extract(context.Background(), "book lab 2 tomorrow")

	assert.False(t, draft.Complete())
	assert.Len(t, draft.MissingFields(), 4)
}

func TestExtractDropsNullStrings(t *testing.T) {
	gw := &fakeGateway{replies: []string{
		`{"resource": "Lab 2", "date": "null", "time": "N/A", "duration": "none"}`,
	}}
	svc := newTestExtractor(gw)

	draft := svc.Extract(context.Background(), "book lab 2")

	require.NotNil(t, draft.Resource)
	assert.Nil(t, draft.Date)
	assert.Nil(t, draft.Time)
	assert.Nil(t, draft.Duration)
}

func TestExtractPromptIncludesTodaysDate(t *testing.T) {
	gw := &fakeGateway{replies: []string{`{}`}}
	svc := newTestExtractor(gw)

	svc.Extract(context.Background(), "book lab 2 tomorrow")

	require.Len(t, gw.prompts, 1)
	assert.Contains(t, gw.prompts[0], "2025-03-10")
	assert.Contains(t, gw.prompts[0], "Monday")
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2025-03-11", "2025-03-11"},
		{"11/03/2025", "2025-03-11"},
		{"March 11, 2025", "2025-03-11"},
		{"11 Mar 2025", "2025-03-11"},
		{"next Tuesday", "next Tuesday"}, // unrecognized passes through
	}

	for _, tt := range tests {
		got := normalizeDate(strptr(tt.in))
		require.NotNil(t, got)
		assert.Equal(t, tt.want, *got, "input %q", tt.in)
	}

	assert.Nil(t, normalizeDate(nil))
}

func TestNormalizeTime(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"3:00 PM", "3:00 PM"},
		{"3pm", "3:00 PM"},
		{"15:00", "3:00 PM"},
		{"09:30", "9:30 AM"},
		{"noonish", "noonish"}, // unrecognized passes through
	}

	for _, tt := range tests {
		got := normalizeTime(strptr(tt.in))
		require.NotNil(t, got)
		assert.Equal(t, tt.want, *got, "input %q", tt.in)
	}

	assert.Nil(t, normalizeTime(nil))
}
