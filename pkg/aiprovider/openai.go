package aiprovider

import (
	"context"
	"errors"
	"io"

	openai "github.com/sashabaranov/go-openai"

	"github.com/chainlaunch/editcore/pkg/logger"
)

// OpenAIProvider streams text-only completions from OpenAI's chat
// completion API. Like ClaudeProvider, it sends no function-calling tools.
type OpenAIProvider struct {
	client *openai.Client
	log    *logger.Logger
}

// NewOpenAIProvider constructs an OpenAI-backed Provider for the given API
// key.
func NewOpenAIProvider(apiKey string, log *logger.Logger) *OpenAIProvider {
	return &OpenAIProvider{
		client: openai.NewClient(apiKey),
		log:    log,
	}
}

func toOpenAIRole(role string) string {
	switch role {
	case "system", "user", "assistant":
		return role
	default:
		return openai.ChatMessageRoleUser
	}
}

func (p *OpenAIProvider) StreamResponse(ctx context.Context, model string, messages []Message) (<-chan string, <-chan error) {
	out := make(chan string)
	errc := make(chan error, 1)

	var openAIMessages []openai.ChatCompletionMessage
	for _, m := range messages {
		openAIMessages = append(openAIMessages, openai.ChatCompletionMessage{
			Role:    toOpenAIRole(m.Role),
			Content: m.Content,
		})
	}

	go func() {
		defer close(out)
		defer close(errc)

		stream, err := p.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
			Model:    model,
			Messages: openAIMessages,
			Stream:   true,
		})
		if err != nil {
			if p.log != nil {
				p.log.Errorf("openai stream start: %v", err)
			}
			errc <- err
			return
		}
		defer stream.Close()

		for {
			resp, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				if p.log != nil {
					p.log.Errorf("openai stream recv: %v", err)
				}
				errc <- err
				return
			}
			if len(resp.Choices) == 0 {
				continue
			}
			text := resp.Choices[0].Delta.Content
			if text == "" {
				continue
			}
			select {
			case out <- text:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, errc
}
