package translate

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/pricelens/pricelens/internal/model"
)

// OpenAITranslator implements Translator using OpenAI's Chat Completions API
type OpenAITranslator struct {
	client *openai.Client
	model  string
	tokens int
}

// NewOpenAITranslator creates a new OpenAI-backed translator
func NewOpenAITranslator(cfg model.TranslateConfig) (*OpenAITranslator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = openai.GPT4oMini
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1000
	}

	return &OpenAITranslator{
		client: openai.NewClientWithConfig(clientConfig),
		model:  modelName,
		tokens: maxTokens,
	}, nil
}

// Name returns the provider name
func (t *OpenAITranslator) Name() string { return "openai" }

const translatePrompt = `Translate each numbered line into plain English.
Rules:
1. Keep each line on its own numbered line, same numbering.
2. Lines already in English MUST be returned verbatim, unchanged.
3. Preserve numbers, units, product names and URLs exactly.
4. Do not add commentary.

Lines:
%s`

// Translate translates the given texts, returning one output per input.
// Inputs that come back missing from the response pass through unchanged so a
// flaky completion can never drop evidence.
func (t *OpenAITranslator) Translate(ctx context.Context, texts []string) ([]string, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	var lines strings.Builder
	for i, text := range texts {
		fmt.Fprintf(&lines, "%d. %s\n", i+1, text)
	}

	resp, err := t.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     t.model,
		MaxTokens: t.tokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(translatePrompt, lines.String()),
			},
		},
		Temperature: 0,
	})
	if err != nil {
		return nil, fmt.Errorf("translate: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("translate: empty response")
	}

	out := make([]string, len(texts))
	copy(out, texts)
	for _, line := range strings.Split(resp.Choices[0].Message.Content, "\n") {
		line = strings.TrimSpace(line)
		idx, rest, ok := parseNumberedLine(line)
		if !ok || idx < 1 || idx > len(texts) {
			continue
		}
		if rest != "" {
			out[idx-1] = rest
		}
	}
	return out, nil
}

// parseNumberedLine splits "3. some text" into (3, "some text", true)
func parseNumberedLine(line string) (int, string, bool) {
	dot := strings.Index(line, ".")
	if dot <= 0 {
		return 0, "", false
	}
	n := 0
	for _, r := range line[:dot] {
		if r < '0' || r > '9' {
			return 0, "", false
		}
		n = n*10 + int(r-'0')
	}
	return n, strings.TrimSpace(line[dot+1:]), true
}
