package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfpilot/internal/llm"
)

// stubCompleter returns one canned reply and records requests.
type stubCompleter struct {
	reply    string
	err      error
	requests []llm.Request
}

func (s *stubCompleter) Complete(ctx context.Context, req llm.Request) (string, error) {
	s.requests = append(s.requests, req)
	return s.reply, s.err
}

func TestFlattenAnswer(t *testing.T) {
	tests := []struct {
		name   string
		answer any
		want   string
	}{
		{name: "string", answer: "978.35 EUR", want: "978.35 EUR"},
		{name: "list", answer: []string{"Q1: 1.2M", "Q4: 1.9M"}, want: "Q1: 1.2M, Q4: 1.9M"},
		{name: "empty list", answer: []string{}, want: ""},
		{name: "nil", answer: nil, want: ""},
		{name: "unexpected type", answer: 42, want: "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FlattenAnswer(tt.answer))
		})
	}
}

func TestAskRejectsEmptyQuestion(t *testing.T) {
	svc := NewAnswerService(&stubCompleter{}, nil, 3, 2)

	_, err := svc.Ask(context.Background(), []byte("%PDF-1.4"), "   ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "question is empty")
}

func TestAskRejectsEmptyPDF(t *testing.T) {
	svc := NewAnswerService(&stubCompleter{}, nil, 3, 2)

	_, err := svc.Ask(context.Background(), nil, "What is the total?")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdf is empty")
}

func TestAskFailsWhenInitialPageCannotRender(t *testing.T) {
	completer := &stubCompleter{reply: "unused"}
	svc := NewAnswerService(completer, nil, 3, 2)

	_, err := svc.Ask(context.Background(), []byte("this is not a pdf"), "What is the total?")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "agent run")
	assert.Contains(t, err.Error(), "render initial page")
	assert.Empty(t, completer.requests)
}
