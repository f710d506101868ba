package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"videomind/internal/app/model"
)

const maxQATranscriptChars = 6000

const qaSystemPrompt = `You answer questions about videos based on their transcript and visual analysis. Return a JSON object with:
- "answer": Your answer to the question (2-3 sentences)
- "relevant_timestamps": Array of relevant timestamp strings (e.g., ["5:02", "5:15"])
- "relevant_frames": Array of frame paths if visual frames are relevant, else empty array
Return ONLY valid JSON, no markdown.`

// ChatAnswerer answers questions about a completed job using the transcript,
// visual observations and chapter list as context.
type ChatAnswerer struct {
	client *openai.Client
}

func NewChatAnswerer(client *openai.Client) *ChatAnswerer {
	return &ChatAnswerer{client: client}
}

func (a *ChatAnswerer) Answer(ctx context.Context, question string, transcript string, visual []model.VisualObservation, chapters []model.Chapter) (*model.Answer, error) {
	if len(transcript) > maxQATranscriptChars {
		transcript = transcript[:maxQATranscriptChars]
	}

	var prompt strings.Builder
	prompt.WriteString("Transcript:\n")
	prompt.WriteString(transcript)

	if len(visual) > 0 {
		prompt.WriteString("\n\nVisual observations:\n")
		for _, obs := range visual {
			prompt.WriteString(fmt.Sprintf("[%s] %s\n", formatBriefTimestamp(obs.Timestamp), obs.Description))
		}
	}

	if len(chapters) > 0 {
		prompt.WriteString("\n\nChapters:\n")
		for _, ch := range chapters {
			prompt.WriteString(fmt.Sprintf("- %s to %s: %s\n", ch.Start, ch.End, ch.Title))
		}
	}

	prompt.WriteString("\n\nQuestion: ")
	prompt.WriteString(question)

	request := openai.ChatCompletionRequest{
		Model: openai.GPT4o,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: qaSystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt.String(),
			},
		},
		Temperature: 0.3,
		MaxTokens:   500,
	}

	resp, err := a.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("createChatCompletion failed: %s", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("question answering returned no choices")
	}

	var answer model.Answer
	raw := StripMarkdownFences(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(raw), &answer); err != nil {
		return nil, fmt.Errorf("decode answer JSON failed: %v", err)
	}

	if answer.RelevantTimestamps == nil {
		answer.RelevantTimestamps = []string{}
	}
	if answer.RelevantFrames == nil {
		answer.RelevantFrames = []string{}
	}
	return &answer, nil
}

// formatBriefTimestamp renders seconds as M:SS for prompt context.
func formatBriefTimestamp(seconds float64) string {
	m := int(seconds) / 60
	s := int(seconds) % 60
	return fmt.Sprintf("%d:%02d", m, s)
}
