package generation

import (
	"context"
	"errors"
	"lexdraft/internal/domain"
	"lexdraft/internal/worker"
	"time"

	"github.com/sirupsen/logrus"
)

const DefaultTimeout = 30 * time.Second

// Submitter runs provider calls off the request goroutine
type Submitter interface {
	Submit(ctx context.Context, t worker.Task) error
}

type Client struct {
	provider  Provider
	pool      Submitter
	model     string
	maxTokens int
	timeout   time.Duration
	logger    *logrus.Logger
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithModel(model string, maxTokens int) Option {
	return func(c *Client) {
		c.model = model
		c.maxTokens = maxTokens
	}
}

// WithPool routes provider calls through pool; without it each call gets its own goroutine
func WithPool(pool Submitter) Option {
	return func(c *Client) {
		c.pool = pool
	}
}

func NewClient(provider Provider, logger *logrus.Logger, opts ...Option) *Client {
	c := &Client{
		provider:  provider,
		model:     "claude-3-opus-20240229",
		maxTokens: 4096,
		timeout:   DefaultTimeout,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type outcome struct {
	resp *Response
	err  error
}

// Generate makes exactly one provider call and waits for it at most c.timeout.
// Whatever the provider returns after the deadline is dropped.
func (c *Client) Generate(ctx context.Context, tmpl *domain.Template, values domain.FormValues) (string, error) {
	prompt, err := BuildPrompt(tmpl, values)
	if err != nil {
		return "", providerError("building prompt", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	// buffered so a late provider never blocks on a reader that left
	done := make(chan outcome, 1)
	call := func(taskCtx context.Context) error {
		resp, err := c.provider.Complete(taskCtx, Request{
			Prompt:    prompt,
			MaxTokens: c.maxTokens,
			Model:     c.model,
		})
		done <- outcome{resp: resp, err: err}
		return err
	}

	if c.pool != nil {
		if err := c.pool.Submit(ctx, call); err != nil {
			return "", providerError("generation capacity exhausted", err)
		}
	} else {
		go call(ctx)
	}

	start := time.Now()
	select {
	case <-ctx.Done():
		c.logger.WithFields(logrus.Fields{
			"template_id": tmpl.ID,
			"waited":      time.Since(start).String(),
		}).Warn("generation timed out, discarding any late response")
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", timeoutError("provider did not answer in "+c.timeout.String(), ctx.Err())
		}
		// caller cancellation is handled like a timeout downstream
		return "", timeoutError("generation cancelled", ctx.Err())

	case out := <-done:
		// both cases may be ready at once; the deadline wins ties
		if ctx.Err() != nil {
			return "", timeoutError("provider did not answer in "+c.timeout.String(), ctx.Err())
		}
		if out.err != nil {
			var genErr *Error
			if errors.As(out.err, &genErr) {
				return "", genErr
			}
			return "", providerError("provider call failed", out.err)
		}

		text, err := extractText(out.resp)
		if err != nil {
			return "", err
		}

		c.logger.WithFields(logrus.Fields{
			"template_id": tmpl.ID,
			"model":       c.model,
			"elapsed":     time.Since(start).String(),
			"chars":       len(text),
		}).Info("document generated")
		return text, nil
	}
}
