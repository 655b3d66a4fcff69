package service_test

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
)

var testLogger = zap.NewNop()

// fakeLLM answers prompts from a function and records every call.
type fakeLLM struct {
	mu      sync.Mutex
	respond func(prompt string) (string, error)
	pingErr error
	prompts []string
	pings   int
}

func (f *fakeLLM) Generate(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	return f.respond(prompt)
}

func (f *fakeLLM) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pings++
	return f.pingErr
}

func (f *fakeLLM) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

// staticLLM always answers with text.
func staticLLM(text string) *fakeLLM {
	return &fakeLLM{respond: func(string) (string, error) { return text, nil }}
}

// recipeFromPrompt pulls the recipe name out of a carbon prompt.
func recipeFromPrompt(prompt string) string {
	for _, line := range strings.Split(prompt, "\n") {
		if strings.HasPrefix(line, "Recipe: ") {
			return strings.TrimPrefix(line, "Recipe: ")
		}
	}
	return ""
}
