package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

const promptTextLimit = 2000

// Assessor wraps the OpenAI chat completion API for tokenomics assessment.
// Callers fall back to the heuristic summary when Enabled is false or a
// request fails.
type Assessor struct {
	client  openai.Client
	enabled bool
}

// NewAssessor returns an assessor. An empty API key disables it.
func NewAssessor(apiKey string) *Assessor {
	if apiKey == "" {
		return &Assessor{}
	}
	return &Assessor{
		client:  openai.NewClient(option.WithAPIKey(apiKey)),
		enabled: true,
	}
}

// Enabled reports whether the assessor can make requests.
func (a *Assessor) Enabled() bool { return a.enabled }

// AssessTokenomics asks the model for a brief tokenomics assessment of the
// project text.
func (a *Assessor) AssessTokenomics(ctx context.Context, text string) (string, error) {
	if !a.enabled {
		return "", fmt.Errorf("ai assessor not configured")
	}

	prompt := buildTokenomicsPrompt(text)

	response, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: "gpt-4o-mini",
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfSystem: &openai.ChatCompletionSystemMessageParam{
					Content: openai.ChatCompletionSystemMessageParamContentUnion{
						OfString: openai.String("You are a crypto project analyst. Assess tokenomics quality from project communications."),
					},
				},
			},
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(prompt),
					},
				},
			},
		},
		Temperature: openai.Float(0.3),
		MaxTokens:   openai.Int(200),
	})
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}

	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}

func buildTokenomicsPrompt(text string) string {
	if len(text) > promptTextLimit {
		text = text[:promptTextLimit]
	}

	var sb strings.Builder
	sb.WriteString("Analyze the tokenomics of this crypto project based on the following text:\n\n")
	sb.WriteString(text)
	sb.WriteString("\n\nEvaluate:\n")
	sb.WriteString("1. Token distribution fairness\n")
	sb.WriteString("2. Utility and purpose\n")
	sb.WriteString("3. Inflation/deflation mechanisms\n")
	sb.WriteString("4. Vesting schedules\n")
	sb.WriteString("5. Overall sustainability\n\n")
	sb.WriteString("Provide a brief assessment (max 200 words).")
	return sb.String()
}
