package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/semaphore"

	"voxnote/apperr"
	"voxnote/config"
	"voxnote/logger"
)

// Client calls a chat-completions endpoint selected by profile name. The
// profile and settings are re-read from the config snapshot on every call,
// so a hot config update takes effect on the next invocation.
type Client struct {
	profileName string
	httpClient  *http.Client
	sem         *semaphore.Weighted
	observer    Observer
}

type Option func(*Client)

// WithObserver records every completed call through o.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// WithHTTPClient overrides the transport. Mainly for tests; the per-call
// timeout still comes from the settings snapshot.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func NewClient(profileName string, opts ...Option) *Client {
	cfg := config.GetConfig()
	c := &Client{
		profileName: profileName,
		httpClient:  &http.Client{},
		sem:         semaphore.NewWeighted(cfg.Processing.MaxConcurrentModelCalls),
		observer:    NopObserver{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ProfileName returns the profile this client calls.
func (c *Client) ProfileName() string { return c.profileName }

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Invoke sends prompt with the system message, extracts the JSON body of the
// completion, and unmarshals it into out. Transport timeouts and 5xx
// responses are retried with exponential backoff up to the configured retry
// count; 401/403 and 429 fail immediately with their own kinds.
func (c *Client) Invoke(ctx context.Context, systemMsg, prompt string, out any) error {
	profile, err := config.Profile(c.profileName)
	if err != nil {
		return err
	}
	settings := config.GetConfig().Settings

	if err := c.sem.Acquire(ctx, 1); err != nil {
		return apperr.Wrap(err, apperr.GPTAPITimeout, "model call slot unavailable")
	}
	defer c.sem.Release(1)

	body, err := json.Marshal(chatRequest{
		Model: profile.ModelName,
		Messages: []chatMessage{
			{Role: "system", Content: systemMsg},
			{Role: "user", Content: prompt},
		},
		Temperature: settings.Temperature,
		MaxTokens:   settings.MaxTokens,
	})
	if err != nil {
		return apperr.Wrap(err, apperr.InternalServerError, "failed to encode model request")
	}

	started := time.Now()
	content, attempts, callErr := c.callWithRetry(ctx, profile, settings, body)
	c.observer.Record(ctx, CallRecord{
		Profile:   c.profileName,
		ModelName: profile.ModelName,
		Prompt:    prompt,
		Response:  content,
		Attempts:  attempts,
		Duration:  time.Since(started),
		Err:       callErr,
	})
	if callErr != nil {
		return callErr
	}

	payload := extractJSON(content)
	if err := json.Unmarshal([]byte(payload), out); err != nil {
		return apperr.Wrap(err, apperr.InvalidJSONResponse, "model returned malformed JSON")
	}
	return nil
}

func (c *Client) callWithRetry(ctx context.Context, profile config.ModelProfile, settings config.ModelSettings, body []byte) (string, int, error) {
	timeout := time.Duration(settings.TimeoutSeconds) * time.Second

	var lastErr error
	attempt := 0
	for attempt < settings.MaxRetries {
		attempt++

		content, err := c.callOnce(ctx, profile, timeout, body)
		if err == nil {
			return content, attempt, nil
		}
		if !retryable(err) {
			return "", attempt, err
		}
		lastErr = err

		if attempt < settings.MaxRetries {
			backoff := time.Second << (attempt - 1)
			logger.WarnWithFields("model call failed, retrying", logger.Fields{
				"profile": c.profileName,
				"attempt": attempt,
				"backoff": backoff.String(),
				"error":   lastErr.Error(),
			})
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", attempt, apperr.Wrap(ctx.Err(), apperr.GPTAPITimeout, "model call cancelled")
			}
		}
	}
	return "", attempt, apperr.Wrap(lastErr, apperr.GPTAPITimeout,
		"model call failed after %d attempts", attempt)
}

func (c *Client) callOnce(ctx context.Context, profile config.ModelProfile, timeout time.Duration, body []byte) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, profile.URL, bytes.NewReader(body))
	if err != nil {
		return "", apperr.Wrap(err, apperr.InternalServerError, "failed to build model request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+profile.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", classifyTransportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperr.Wrap(err, apperr.GPTAPITimeout, "failed to read model response")
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", apperr.New(apperr.GPTAPIUnauthorized, "model endpoint rejected credentials (status %d)", resp.StatusCode)
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", apperr.New(apperr.GPTAPIQuotaExceeded, "model endpoint rate limit exceeded")
	case resp.StatusCode >= 500:
		return "", &serverError{status: resp.StatusCode, body: truncate(string(raw), 200)}
	case resp.StatusCode != http.StatusOK:
		return "", apperr.New(apperr.ProcessingFailed, "model endpoint returned status %d: %s", resp.StatusCode, truncate(string(raw), 200))
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", apperr.Wrap(err, apperr.InvalidJSONResponse, "model endpoint returned malformed body")
	}
	if parsed.Error != nil {
		return "", apperr.New(apperr.ProcessingFailed, "model endpoint error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", apperr.New(apperr.InvalidJSONResponse, "model endpoint returned no completion")
	}
	return parsed.Choices[0].Message.Content, nil
}

// serverError marks a retryable 5xx response.
type serverError struct {
	status int
	body   string
}

func (e *serverError) Error() string {
	return fmt.Sprintf("model endpoint returned status %d: %s", e.status, e.body)
}

func classifyTransportError(err error) error {
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return &timeoutError{err: err}
	}
	return apperr.Wrap(err, apperr.GPTAPITimeout, "model endpoint unreachable")
}

// timeoutError marks a retryable transport timeout.
type timeoutError struct {
	err error
}

func (e *timeoutError) Error() string { return fmt.Sprintf("model call timed out: %v", e.err) }
func (e *timeoutError) Unwrap() error { return e.err }

func retryable(err error) bool {
	var se *serverError
	var te *timeoutError
	return errors.As(err, &se) || errors.As(err, &te)
}

// extractJSON returns the JSON payload of a completion, stripping markdown
// code fences and any prose around the outermost object or array.
func extractJSON(content string) string {
	s := strings.TrimSpace(content)

	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}

	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return s
	}
	var end int
	if s[start] == '{' {
		end = strings.LastIndex(s, "}")
	} else {
		end = strings.LastIndex(s, "]")
	}
	if end <= start {
		return s
	}
	return s[start : end+1]
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
