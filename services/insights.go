package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/hupe1980/go-huggingface"
	"github.com/sashabaranov/go-openai"
	"github.com/tmc/langchaingo/prompts"
)

var ErrNoProvider = errors.New("no insights provider configured")

const (
	ProviderHuggingFace = "huggingface"
	ProviderOpenAI      = "openai"

	defaultOpenAIModel = "gpt-4o-mini"
)

// Generator turns a prompt into text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

func intPtr(i int) *int {
	return &i
}

func float64Ptr(f float64) *float64 {
	return &f
}

func boolPtr(b bool) *bool {
	return &b
}

type HuggingFaceGenerator struct {
	client *huggingface.InferenceClient
	model  string
}

func (g *HuggingFaceGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	req := &huggingface.TextGenerationRequest{
		Inputs: prompt,
		Model:  g.model,
		Parameters: huggingface.TextGenerationParameters{
			MaxNewTokens:   intPtr(300),
			Temperature:    float64Ptr(0.3),
			TopK:           intPtr(10),
			TopP:           float64Ptr(0.9),
			ReturnFullText: boolPtr(false),
		},
	}

	res, err := g.client.TextGeneration(ctx, req)
	if err != nil {
		return "", fmt.Errorf("text generation error: %w", err)
	}
	if len(res) == 0 {
		return "", errors.New("no response from LLM")
	}
	return res[0].GeneratedText, nil
}

type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: 0.3,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response from LLM")
	}
	return resp.Choices[0].Message.Content, nil
}

// NewGenerator returns the generator for provider, or ErrNoProvider when
// provider is empty.
func NewGenerator(provider, apiKey, model string) (Generator, error) {
	switch provider {
	case "":
		return nil, ErrNoProvider
	case ProviderHuggingFace:
		return &HuggingFaceGenerator{client: huggingface.NewInferenceClient(apiKey), model: model}, nil
	case ProviderOpenAI:
		if model == "" {
			model = defaultOpenAIModel
		}
		return &OpenAIGenerator{client: openai.NewClient(apiKey), model: model}, nil
	default:
		return nil, fmt.Errorf("unknown insights provider %q", provider)
	}
}

var insightsPrompt = prompts.NewPromptTemplate(`You are a ticketing analyst. Given monthly admission ticket sales, write at most three sentences about how sales developed{{if .comparing}} and how they compare to {{.comparing}}{{end}}.
Mention the strongest month. Return plain text only.

Event: {{.event}}
Monthly sales (JSON): {{.sales}}
`, []string{"event", "comparing", "sales"})

// Insights writes short summaries of a sellout comparison.
type Insights struct {
	Generator Generator
}

func (in *Insights) Prompt(cmp *Comparison) (string, error) {
	sales := map[string][]MonthTickets{cmp.Event.Name: cmp.Current}
	comparing := ""
	if cmp.Comparing != nil {
		comparing = cmp.Comparing.Name
		sales[comparing] = cmp.Previous
	}
	salesJSON, err := json.Marshal(sales)
	if err != nil {
		return "", fmt.Errorf("failed to marshal sales: %w", err)
	}

	return insightsPrompt.Format(map[string]any{
		"event":     cmp.Event.Name,
		"comparing": comparing,
		"sales":     string(salesJSON),
	})
}

func (in *Insights) Summarize(ctx context.Context, cmp *Comparison) (string, error) {
	if in == nil || in.Generator == nil {
		return "", ErrNoProvider
	}

	prompt, err := in.Prompt(cmp)
	if err != nil {
		return "", err
	}

	text, err := in.Generator.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.New("generated insights are empty")
	}
	return text, nil
}
