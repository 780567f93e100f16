package testutil

import (
	"context"
	"fmt"
	"strings"

	"github.com/hbjs97/envline/internal/cmdexec"
)

// Response represents a pre-configured command response for FakeCommander.
type Response struct {
	Stdout []byte
	Stderr []byte
	Err    error
}

// FakeCommander returns pre-configured responses for testing.
// Responses are keyed by "name arg1 arg2 ..." format.
// If no exact match is found, it tries prefix matching.
type FakeCommander struct {
	// Responses maps command strings to their responses.
	// Key format: "command arg1 arg2" (e.g., "direnv status --json")
	Responses map[string]Response

	// Calls records all commands that were executed, in order.
	Calls []string

	// Dirs records the working directory passed to each Run, in order.
	Dirs []string

	// Paths maps executable names to LookPath results. Missing names fail.
	Paths map[string]string

	// DefaultResponse is returned when no matching response is found.
	// If nil, an error is returned for unmatched commands.
	DefaultResponse *Response
}

var _ cmdexec.Commander = (*FakeCommander)(nil)

// NewFakeCommander creates a FakeCommander with an empty response map.
func NewFakeCommander() *FakeCommander {
	return &FakeCommander{
		Responses: make(map[string]Response),
		Paths:     make(map[string]string),
	}
}

// Register adds a stdout-only response for the given command key.
func (c *FakeCommander) Register(key string, stdout string, err error) {
	c.Responses[key] = Response{
		Stdout: []byte(stdout),
		Err:    err,
	}
}

// RegisterWithStderr adds a response carrying both streams.
func (c *FakeCommander) RegisterWithStderr(key, stdout, stderr string, err error) {
	c.Responses[key] = Response{
		Stdout: []byte(stdout),
		Stderr: []byte(stderr),
		Err:    err,
	}
}

// Run looks up the command in Responses and returns the matching response.
func (c *FakeCommander) Run(_ context.Context, dir, name string, args ...string) (*cmdexec.Output, error) {
	fullCmd := name
	if len(args) > 0 {
		fullCmd = name + " " + strings.Join(args, " ")
	}

	c.Calls = append(c.Calls, fullCmd)
	c.Dirs = append(c.Dirs, dir)

	// Exact match first.
	if resp, ok := c.Responses[fullCmd]; ok {
		return resp.output(), resp.Err
	}

	// Try prefix matching (longest prefix wins).
	bestKey := ""
	for key := range c.Responses {
		if strings.HasPrefix(fullCmd, key) && len(key) > len(bestKey) {
			bestKey = key
		}
	}
	if bestKey != "" {
		resp := c.Responses[bestKey]
		return resp.output(), resp.Err
	}

	// Default response.
	if c.DefaultResponse != nil {
		return c.DefaultResponse.output(), c.DefaultResponse.Err
	}

	return nil, fmt.Errorf("FakeCommander: no response registered for %q", fullCmd)
}

// LookPath returns the registered path for name.
func (c *FakeCommander) LookPath(name string) (string, error) {
	if p, ok := c.Paths[name]; ok {
		return p, nil
	}
	return "", fmt.Errorf("FakeCommander: %s not found in PATH", name)
}

// Called returns true if a command matching the given prefix was executed.
func (c *FakeCommander) Called(prefix string) bool {
	for _, call := range c.Calls {
		if strings.HasPrefix(call, prefix) {
			return true
		}
	}
	return false
}

// CallCount returns the number of times a command matching the given prefix was executed.
func (c *FakeCommander) CallCount(prefix string) int {
	count := 0
	for _, call := range c.Calls {
		if strings.HasPrefix(call, prefix) {
			count++
		}
	}
	return count
}

func (r Response) output() *cmdexec.Output {
	return &cmdexec.Output{Stdout: r.Stdout, Stderr: r.Stderr}
}
