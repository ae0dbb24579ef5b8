package app

import (
	"context"
	"strings"
)

// Fallback texts returned when the LLM backend is unavailable. AI
// failures are never surfaced to callers as errors.
const (
	improveFallbackPrefix = "Mocked Improved Content: "
	improveFallbackSuffix = " (Improved version)"
	summaryFallback       = "Mocked Summary: A summary of the provided text."
	tagsFallback          = "go, web, backend"
)

// TextGenerator is the single-method LLM surface services depend on.
type TextGenerator interface {
	CompleteOrFallback(ctx context.Context, prompt, fallback string) string
}

type AIService struct {
	generator TextGenerator
}

func NewAIService(generator TextGenerator) *AIService {
	return &AIService{generator: generator}
}

func (s *AIService) ImproveContent(ctx context.Context, content string) string {
	prompt := "Please improve the grammar, structure, and professional tone of the following text:\n\n" + content
	fallback := improveFallbackPrefix + content + improveFallbackSuffix
	return s.generator.CompleteOrFallback(ctx, prompt, fallback)
}

func (s *AIService) SummarizeContent(ctx context.Context, content string) string {
	return s.generator.CompleteOrFallback(ctx, summaryPrompt(content), summaryFallback)
}

func (s *AIService) SuggestTags(ctx context.Context, content string) string {
	out := s.generator.CompleteOrFallback(ctx, tagsPrompt(content), tagsFallback)
	return strings.TrimSpace(out)
}

func summaryPrompt(content string) string {
	return "Provide a short, 2-3 line summary of the following text:\n\n" + content
}

func tagsPrompt(content string) string {
	return "Suggest 3-5 relevant comma-separated tags for the following article text:\n\n" + content
}
