package service

import (
	"context"
	"fmt"
	"strings"

	"deck-converter/internal/domain"
	apperrors "deck-converter/pkg/errors"

	"github.com/sashabaranov/go-openai"
)

const notesSystemPrompt = "You are a presentation coach. Given the text content of a " +
	"presentation slide, write concise speaker notes for it: two to four sentences a " +
	"presenter could say out loud. Do not repeat the slide text verbatim and do not " +
	"use bullet points."

// NotesService generates speaker notes for slides through an
// OpenAI-compatible chat completion API.
type NotesService struct {
	client *openai.Client
	model  string
	logger domain.Logger
}

// NewNotesService creates the service. Returns a nil service (not an
// error) when no API key is configured; callers get
// domain.ErrNotesNotConfigured at request time.
func NewNotesService(apiKey, baseURL, model string, logger domain.Logger) *NotesService {
	if apiKey == "" {
		return nil
	}
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &NotesService{
		client: openai.NewClientWithConfig(config),
		model:  model,
		logger: logger,
	}
}

// Model reports the configured model name.
func (s *NotesService) Model() string {
	if s == nil {
		return ""
	}
	return s.model
}

// GenerateNotes produces one note per slide. Slides with no text get
// an empty note; a failed completion degrades to an empty note for
// that slide rather than failing the deck.
func (s *NotesService) GenerateNotes(ctx context.Context, slideTexts []string) ([]domain.SlideNote, error) {
	if s == nil {
		return nil, apperrors.NewNetworkError("notes generation is not configured", domain.ErrNotesNotConfigured)
	}

	notes := make([]domain.SlideNote, len(slideTexts))
	for i, text := range slideTexts {
		notes[i] = domain.SlideNote{SlideIndex: i}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		generated, err := s.generateOne(ctx, i, text)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.logger.Warn("Failed to generate notes for slide", "slide", i, "error", err)
			continue
		}
		notes[i].Notes = generated
	}
	return notes, nil
}

func (s *NotesService) generateOne(ctx context.Context, slideIndex int, text string) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: notesSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Slide %d:\n%s", slideIndex+1, text)},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion returned")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
