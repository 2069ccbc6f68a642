package aiprovider

import (
	"context"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"

	"github.com/chainlaunch/editcore/pkg/logger"
)

// ClaudeProvider streams text-only completions from Anthropic's API. No
// tool-calling schema is ever sent; the caller only wants the raw assistant
// text back.
type ClaudeProvider struct {
	client anthropic.Client
	log    *logger.Logger
}

// addHeaderMiddleware installs the fine-grained-tool-streaming beta header
// on every request. Leaving it off can make the SDK buffer partial content
// deltas differently across model versions.
func addHeaderMiddleware(r *http.Request, next option.MiddlewareNext) (*http.Response, error) {
	r.Header.Add("anthropic-beta", "fine-grained-tool-streaming-2025-05-14")
	return next(r)
}

// NewClaudeProvider constructs a Claude-backed Provider. The client picks
// up ANTHROPIC_API_KEY from the environment.
func NewClaudeProvider(log *logger.Logger) *ClaudeProvider {
	return &ClaudeProvider{
		client: anthropic.NewClient(option.WithMiddleware(addHeaderMiddleware)),
		log:    log,
	}
}

// StreamResponse implements Provider by forwarding text deltas from a
// Claude streaming completion; system turns are folded into plain user
// turns.
func (p *ClaudeProvider) StreamResponse(ctx context.Context, model string, messages []Message) (<-chan string, <-chan error) {
	out := make(chan string)
	errc := make(chan error, 1)

	var claudeMessages []anthropic.MessageParam
	for _, m := range messages {
		switch m.Role {
		case "assistant":
			claudeMessages = append(claudeMessages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		default:
			claudeMessages = append(claudeMessages, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}

	go func() {
		defer close(out)
		defer close(errc)

		stream := p.client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
			Model:       anthropic.Model(model),
			Messages:    claudeMessages,
			MaxTokens:   4096,
			Temperature: param.Opt[float64]{Value: 0.3},
		})
		defer stream.Close()

		for stream.Next() {
			event := stream.Current()
			if event.Type != "content_block_delta" {
				continue
			}
			delta := event.AsContentBlockDelta()
			if delta.Delta.Type == "text_delta" {
				select {
				case out <- delta.Delta.AsTextDelta().Text:
				case <-ctx.Done():
					return
				}
			}
		}
		if err := stream.Err(); err != nil {
			if p.log != nil {
				p.log.Errorf("claude stream: %v", err)
			}
			errc <- err
		}
	}()

	return out, errc
}
