package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	app_errors "questforge/internal/errors"
)

// ChatContext is the progress snapshot the assistant receives with every
// message, so replies can reference the user's actual stats.
type ChatContext struct {
	UserName             string   `json:"userName"`
	Level                int      `json:"level"`
	TotalXP              int      `json:"totalXP"`
	Streak               int      `json:"streak"`
	ActiveQuests         []string `json:"activeQuests"`
	CompletedQuestsCount int      `json:"completedQuestsCount"`
}

// HistoryEntry is one prior exchange entry sent for conversational
// continuity.
type HistoryEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body of a streaming chat request to the gateway.
type ChatRequest struct {
	Message string         `json:"message"`
	Context ChatContext    `json:"context"`
	History []HistoryEntry `json:"history"`
}

// StreamEvent is one decoded content fragment, or the end-of-stream
// marker.
type StreamEvent struct {
	Content string
	Done    bool
}

// Provider defines the interface for the streaming AI backend.
type Provider interface {
	ChatStream(ctx context.Context, req *ChatRequest, ch chan<- StreamEvent) error
}

type gatewayProvider struct {
	client *http.Client
	url    string
	apiKey string
}

func NewGatewayProvider(url, apiKey string) Provider {
	return &gatewayProvider{
		client: &http.Client{},
		url:    url,
		apiKey: apiKey,
	}
}

// ChatStream posts the request and forwards decoded content fragments on ch
// in arrival order. The channel is closed when the stream ends, whatever
// the cause. Transport failures are reported once via the return value and
// never retried here; retry policy belongs to the caller.
func (p *gatewayProvider) ChatStream(ctx context.Context, req *ChatRequest, ch chan<- StreamEvent) error {
	defer close(ch)

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("could not marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")
	if p.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %v", app_errors.ErrTransport, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return app_errors.ErrRateLimited
	case resp.StatusCode == http.StatusPaymentRequired:
		return app_errors.ErrQuotaExhausted
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("%w: gateway returned status %d", app_errors.ErrTransport, resp.StatusCode)
	}

	decoder := NewStreamDecoder()
	defer decoder.Close()

	buf := make([]byte, 4096)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			for _, fragment := range decoder.Feed(string(buf[:n])) {
				select {
				case ch <- StreamEvent{Content: fragment}:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}

		if decoder.Done() || readErr == io.EOF {
			select {
			case ch <- StreamEvent{Done: true}:
			case <-ctx.Done():
				return ctx.Err()
			}
			return nil
		}
		if readErr != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("%w: reading stream: %v", app_errors.ErrTransport, readErr)
		}
	}
}
