package recognition

import (
	"context"
	"log/slog"
	"sync"
)

// Recognizer classifies the image behind a local reference
type Recognizer interface {
	Recognize(ctx context.Context, imageRef string) (*Result, error)
}

// State is a snapshot of a Client's request lifecycle
type State struct {
	Result  *Result `json:"result"`
	Loading bool    `json:"loading"`
	Error   string  `json:"error,omitempty"`
}

// Client tracks the state of recognition requests for one consumer.
//
// Overlapping Submit calls are not serialized: each one writes its outcome
// when it finishes, so the last response to arrive wins. There is no request
// identity check.
type Client struct {
	recognizer Recognizer

	mu      sync.Mutex
	result  *Result
	loading bool
	err     string
}

// NewClient returns a client that submits images through r
func NewClient(r Recognizer) *Client {
	return &Client{recognizer: r}
}

// State returns a copy of the current state
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Submit classifies the image behind imageRef and records the outcome.
// Failures are never returned as errors: the message is stored both in
// State.Error and in State.Result.Error. The returned state is the one
// observed right after this call's own writes.
func (c *Client) Submit(ctx context.Context, imageRef string) (st State) {
	c.mu.Lock()
	c.loading = true
	c.result = nil
	c.err = ""
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.loading = false
		st = c.snapshot()
	}()

	result, err := c.recognizer.Recognize(ctx, imageRef)
	if err == nil && result == nil {
		result = &Result{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		slog.Warn("Recognition failed", "image", imageRef, "err", err)
		c.err = err.Error()
		c.result = &Result{Error: c.err}
		return
	}

	slog.Debug("Recognition succeeded", "image", imageRef, "label", result.DisplayLabel())
	c.result = result
	return
}

// Clear drops the last result and error. Loading is left as is.
func (c *Client) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.result = nil
	c.err = ""
}

func (c *Client) snapshot() State {
	return State{
		Result:  c.result.Clone(),
		Loading: c.loading,
		Error:   c.err,
	}
}
