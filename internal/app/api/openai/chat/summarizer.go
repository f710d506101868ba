package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"videomind/internal/app/model"
)

// maxTranscriptChars bounds the prompt size for long transcripts.
const maxTranscriptChars = 8000

const summarySystemPrompt = `You analyze video transcripts. Return a JSON object with exactly these keys:
- "short": A 1-2 sentence summary
- "detailed": A 3-5 sentence detailed summary
- "chapters": An array of objects with "start", "end", "title" representing logical sections of the video.
Estimate timestamps based on the transcript flow. Return ONLY valid JSON, no markdown.`

// ChatSummarizer implements summarization over the chat completions API.
type ChatSummarizer struct {
	client *openai.Client
}

func NewChatSummarizer(client *openai.Client) *ChatSummarizer {
	return &ChatSummarizer{client: client}
}

type summaryPayload struct {
	Short    string          `json:"short"`
	Detailed string          `json:"detailed"`
	Chapters []model.Chapter `json:"chapters"`
}

func (s *ChatSummarizer) Summarize(ctx context.Context, transcript string) (*model.Summary, error) {
	if len(transcript) > maxTranscriptChars {
		transcript = transcript[:maxTranscriptChars]
	}

	request := openai.ChatCompletionRequest{
		Model: openai.GPT4o,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: summarySystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Summarize this video transcript:\n\n%s", transcript),
			},
		},
		Temperature: 0.3,
		MaxTokens:   1500,
	}

	resp, err := s.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("createChatCompletion failed: %s", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("summarization returned no choices")
	}

	var payload summaryPayload
	raw := StripMarkdownFences(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("decode summary JSON failed: %v", err)
	}

	chapters := payload.Chapters
	if chapters == nil {
		chapters = []model.Chapter{}
	}

	return &model.Summary{
		Short:    payload.Short,
		Detailed: payload.Detailed,
		Chapters: chapters,
	}, nil
}

// StripMarkdownFences removes a surrounding ```json ... ``` block when the
// model ignores the no-markdown instruction.
func StripMarkdownFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}

	if idx := strings.Index(raw, "\n"); idx >= 0 {
		raw = raw[idx+1:]
	}
	if idx := strings.LastIndex(raw, "```"); idx >= 0 {
		raw = raw[:idx]
	}
	return strings.TrimSpace(raw)
}
