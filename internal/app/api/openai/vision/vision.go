package vision

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const captionSystemPrompt = "You describe video frames concisely. Focus on what is visually " +
	"shown: text on screen, UI elements, diagrams, code, people, " +
	"actions. One sentence, max 50 words."

// FrameCaptioner describes single frames via the GPT-4o vision API.
type FrameCaptioner struct {
	client *openai.Client
}

func NewFrameCaptioner(client *openai.Client) *FrameCaptioner {
	return &FrameCaptioner{client: client}
}

func (fc *FrameCaptioner) Describe(ctx context.Context, framePath string) (string, error) {
	data, err := os.ReadFile(framePath)
	if err != nil {
		return "", fmt.Errorf("read frame failed: %v", err)
	}

	imageURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(data)

	request := openai.ChatCompletionRequest{
		Model: openai.GPT4o,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: captionSystemPrompt,
			},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    imageURL,
							Detail: openai.ImageURLDetailLow,
						},
					},
					{
						Type: openai.ChatMessagePartTypeText,
						Text: "Describe what is shown in this video frame.",
					},
				},
			},
		},
		MaxTokens:   100,
		Temperature: 0.2,
	}

	resp, err := fc.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return "", fmt.Errorf("createChatCompletion failed: %s", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("frame captioning returned no choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
