package gemini

import (
	"context"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"
)

const captionPrompt = "Describe what is shown in this video frame. Focus on what is visually " +
	"shown: text on screen, UI elements, diagrams, code, people, actions. " +
	"One sentence, max 50 words."

// FrameCaptioner describes single frames via the Gemini API. Alternative to
// the GPT-4o vision captioner, selected by CAPTION_PROVIDER=gemini.
type FrameCaptioner struct {
	client *genai.Client
	model  string
}

func NewFrameCaptioner(ctx context.Context, apiKey string) (*FrameCaptioner, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client failed: %v", err)
	}

	return &FrameCaptioner{
		client: client,
		model:  "gemini-2.0-flash",
	}, nil
}

func (fc *FrameCaptioner) Describe(ctx context.Context, framePath string) (string, error) {
	data, err := os.ReadFile(framePath)
	if err != nil {
		return "", fmt.Errorf("read frame failed: %v", err)
	}

	parts := []*genai.Part{
		genai.NewPartFromBytes(data, "image/jpeg"),
		genai.NewPartFromText(captionPrompt),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	resp, err := fc.client.Models.GenerateContent(ctx, fc.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generateContent failed: %s", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("frame captioning returned no content")
	}
	return text, nil
}
