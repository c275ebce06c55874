package llm

import (
	"context"
	"sync"
)

// FakeClient returns scripted responses in order, for offline and test use.
// When the script is exhausted it keeps returning the last response.
type FakeClient struct {
	mu        sync.Mutex
	Responses []string
	Err       error
	Requests  []Request // every request seen, in order
}

func NewFakeClient(responses ...string) *FakeClient {
	return &FakeClient{Responses: responses}
}

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }

func (f *FakeClient) Generate(ctx context.Context, req Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Requests = append(f.Requests, req)
	if f.Err != nil {
		return "", f.Err
	}
	if len(f.Responses) == 0 {
		return "", ErrEmptyResponse
	}
	out := f.Responses[0]
	if len(f.Responses) > 1 {
		f.Responses = f.Responses[1:]
	}
	return out, nil
}

// CallCount reports how many requests the fake has served.
func (f *FakeClient) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Requests)
}
