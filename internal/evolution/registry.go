package evolution

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/neon-runner/internal/config"
)

// Factory builds a Generator from the runner configuration. Providers read
// cfg.Evolution; milestone spacing comes from cfg.Milestones.
type Factory func(ctx context.Context, cfg config.RunnerConfig) (Generator, error)

var (
	factories = make(map[string]Factory)
	mu        sync.RWMutex
)

func init() {
	Register("gemini", func(ctx context.Context, cfg config.RunnerConfig) (Generator, error) {
		return NewGeminiGenerator(ctx, cfg.Evolution)
	})
	Register("static", func(_ context.Context, cfg config.RunnerConfig) (Generator, error) {
		return StaticGenerator{Step: cfg.Milestones.Step}, nil
	})
	Register("offline", func(context.Context, config.RunnerConfig) (Generator, error) {
		return OfflineGenerator{}, nil
	})
}

// Register adds a provider. Panics if the name is already taken.
func Register(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("evolution: provider %q already registered", name))
	}
	factories[name] = f
}

// List returns the registered provider names, sorted.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Exists checks if a provider with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[name]
	return ok
}

// Create builds the named provider.
func Create(ctx context.Context, name string, cfg config.RunnerConfig) (Generator, error) {
	mu.RLock()
	f, ok := factories[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("evolution: unknown provider %q (have %v)", name, List())
	}
	return f(ctx, cfg)
}
