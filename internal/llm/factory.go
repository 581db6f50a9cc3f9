package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"dokusho-feedback/internal/config"
)

const (
	ModelGeminiPro   = "gemini-2.5-pro"
	ModelGeminiFlash = "gemini-2.5-flash"
)

// AllowedModels is the fixed model allow-list offered in the UI.
// Pro is listed first and is the default.
var AllowedModels = []struct {
	ID    string
	Label string
}{
	{ModelGeminiPro, "💎 Gemini 2.5-Pro"},
	{ModelGeminiFlash, "⚡ Gemini 2.5-Flash"},
}

func IsModelAllowed(model string) bool {
	for _, m := range AllowedModels {
		if m.ID == model {
			return true
		}
	}
	return false
}

// Factory creates LLM clients with consistent credentials. Clients
// are cached per (provider, model) pair and reused across requests,
// so at most one connection per allowed model is held open.
type Factory struct {
	GeminiAPIKey  string
	OpenAIAPIKey  string
	OpenAIBaseURL string

	mu    sync.Mutex
	cache map[string]Client
}

func NewFactory(cfg *config.Config) *Factory {
	return &Factory{
		GeminiAPIKey:  cfg.GeminiAPIKey,
		OpenAIAPIKey:  cfg.OpenAIAPIKey,
		OpenAIBaseURL: cfg.OpenAIBaseURL,
	}
}

func (f *Factory) CreateClient(ctx context.Context, provider config.Provider, model string) (Client, error) {
	if !IsModelAllowed(model) {
		return nil, fmt.Errorf("model %q is not in the allow-list", model)
	}
	prov := config.Provider(strings.ToLower(string(provider)))

	f.mu.Lock()
	defer f.mu.Unlock()
	key := string(prov) + "/" + model
	if c, ok := f.cache[key]; ok {
		return c, nil
	}

	var (
		client Client
		err    error
	)
	switch prov {
	case config.ProviderGemini:
		client, err = NewGemini(ctx, f.GeminiAPIKey, model)
	case config.ProviderOpenAI:
		client = NewOpenAI(f.OpenAIAPIKey, f.OpenAIBaseURL, model)
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", provider)
	}
	if err != nil {
		return nil, err
	}

	if f.cache == nil {
		f.cache = make(map[string]Client)
	}
	f.cache[key] = client
	return client, nil
}
