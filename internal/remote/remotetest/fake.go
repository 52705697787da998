// Package remotetest provides an in-memory remote.Requester for tests.
package remotetest

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

type Handler func(variables map[string]interface{}) (interface{}, error)

type Call struct {
	Query     string
	Variables map[string]interface{}
}

// Fake answers each query document with the registered handler. Replies go
// through a JSON round trip so decoding matches the real client.
type Fake struct {
	mu       sync.Mutex
	handlers map[string]Handler
	calls    []Call
}

func NewFake() *Fake {
	return &Fake{handlers: make(map[string]Handler)}
}

func (f *Fake) On(query string, h Handler) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[query] = h
	return f
}

func (f *Fake) Request(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
	f.mu.Lock()
	f.calls = append(f.calls, Call{Query: query, Variables: variables})
	h, ok := f.handlers[query]
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	if !ok {
		return fmt.Errorf("no handler registered for query")
	}

	data, err := h(variables)
	if err != nil {
		return err
	}

	if out == nil || data == nil {
		return nil
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *Fake) CallsTo(query string) []Call {
	var out []Call
	for _, c := range f.Calls() {
		if c.Query == query {
			out = append(out, c)
		}
	}
	return out
}
