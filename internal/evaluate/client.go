// Package evaluate sends the read text and the reader's summary to a language
// model and returns its comprehension verdict.
package evaluate

import "context"

// Request is one evaluation call.
type Request struct {
	Text    string
	Summary string
	WPM     int
}

// Client is the evaluation collaborator. Implementations must be interchangeable.
type Client interface {
	Evaluate(ctx context.Context, req Request) (string, error)
}

// StubClient answers without any network call.
type StubClient struct {
	Verdict string
}

// NewStubClient returns a StubClient with a fixed verdict.
func NewStubClient() *StubClient {
	return &StubClient{Verdict: "Evaluation skipped (offline mode)."}
}

// Evaluate implements Client.
func (c *StubClient) Evaluate(ctx context.Context, _ Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return c.Verdict, nil
}
