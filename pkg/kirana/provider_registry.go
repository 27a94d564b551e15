package kirana

import (
	"fmt"
	"strings"
	"time"

	"github.com/kiranalabs/kirana/pkg/configutil"
	"github.com/kiranalabs/kirana/pkg/llm"
	"github.com/kiranalabs/kirana/pkg/providers/arxiv"
	"github.com/kiranalabs/kirana/pkg/providers/mock"
	"github.com/kiranalabs/kirana/pkg/providers/ollama"
	"github.com/kiranalabs/kirana/pkg/resilience"
	"github.com/kiranalabs/kirana/pkg/tools/search"
)

type ModelFactory func(cfg Config) (llm.Adapter, error)
type SearchFactory func(cfg Config) (search.Searcher, error)

// ProviderRegistry maps vendor names to collaborator factories.
type ProviderRegistry struct {
	model  map[string]ModelFactory
	search map[string]SearchFactory
}

func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		model:  make(map[string]ModelFactory),
		search: make(map[string]SearchFactory),
	}
}

func (r *ProviderRegistry) RegisterModel(name string, factory ModelFactory) {
	r.model[strings.ToLower(strings.TrimSpace(name))] = factory
}

func (r *ProviderRegistry) RegisterSearch(name string, factory SearchFactory) {
	r.search[strings.ToLower(strings.TrimSpace(name))] = factory
}

func (r *ProviderRegistry) BuildModel(provider string, cfg Config) (llm.Adapter, error) {
	fn := r.model[strings.ToLower(strings.TrimSpace(provider))]
	if fn == nil {
		return nil, fmt.Errorf("model provider not registered: %s", provider)
	}
	return fn(cfg)
}

func (r *ProviderRegistry) BuildSearch(provider string, cfg Config) (search.Searcher, error) {
	fn := r.search[strings.ToLower(strings.TrimSpace(provider))]
	if fn == nil {
		return nil, fmt.Errorf("search provider not registered: %s", provider)
	}
	return fn(cfg)
}

type ollamaSettings struct {
	Model             string   `mapstructure:"model"`
	BaseURL           string   `mapstructure:"base_url"`
	Temperature       *float64 `mapstructure:"temperature"`
	NumPredict        *int     `mapstructure:"num_predict"`
	Retries           *int     `mapstructure:"retries"`
	UseCircuitBreaker *bool    `mapstructure:"use_circuit_breaker"`
	CircuitThreshold  int      `mapstructure:"circuit_threshold"`
	CircuitCooldownMS int      `mapstructure:"circuit_cooldown_ms"`
}

type mockLLMSettings struct {
	ResponseText string         `mapstructure:"response_text"`
	ToolName     string         `mapstructure:"tool_name"`
	Arguments    map[string]any `mapstructure:"arguments"`
}

type arxivSettings struct {
	BaseURL    string `mapstructure:"base_url"`
	MaxResults *int   `mapstructure:"max_results"`
}

// DefaultProviders returns the stock vendor registry: ollama and mock models,
// arxiv and mock searchers.
func DefaultProviders() *ProviderRegistry {
	reg := NewProviderRegistry()

	reg.RegisterModel("ollama", func(cfg Config) (llm.Adapter, error) {
		var settings ollamaSettings
		if err := configutil.DecodeSettings(cfg.Vendors.Model.Settings, &settings); err != nil {
			return nil, err
		}
		if err := configutil.RequireString(settings.Model, "vendors.model.settings.model"); err != nil {
			return nil, err
		}
		adapter := ollama.NewAdapter(settings.Model, settings.BaseURL)
		if settings.Temperature != nil {
			adapter.Temperature = *settings.Temperature
		}
		if settings.NumPredict != nil {
			adapter.NumPredict = *settings.NumPredict
		}
		var out llm.Adapter = adapter
		if retries := configutil.IntValue(settings.Retries, 2); retries > 0 {
			out = llm.NewRetryAdapter(out, llm.RetryConfig{MaxAttempts: retries + 1})
		}
		if configutil.BoolValue(settings.UseCircuitBreaker, false) {
			cooldown := time.Duration(settings.CircuitCooldownMS) * time.Millisecond
			out = llm.NewCircuitBreakerAdapter(out, resilience.NewCircuitBreaker(settings.CircuitThreshold, cooldown))
		}
		return out, nil
	})

	reg.RegisterModel("mock", func(cfg Config) (llm.Adapter, error) {
		var settings mockLLMSettings
		if err := configutil.DecodeSettings(cfg.Vendors.Model.Settings, &settings); err != nil {
			return nil, err
		}
		mockCfg := mock.LLMConfig{ResponseText: settings.ResponseText}
		if settings.ToolName != "" {
			mockCfg.ToolCall = &llm.RawToolCall{Name: settings.ToolName, Arguments: settings.Arguments}
		}
		return mock.NewLLMAdapter(mockCfg), nil
	})

	reg.RegisterSearch("arxiv", func(cfg Config) (search.Searcher, error) {
		var settings arxivSettings
		if err := configutil.DecodeSettings(cfg.Vendors.Search.Settings, &settings); err != nil {
			return nil, err
		}
		client := arxiv.NewClient()
		if settings.BaseURL != "" {
			client.BaseURL = settings.BaseURL
		}
		client.MaxResults = configutil.IntValue(settings.MaxResults, cfg.Tools.SearchMaxResults)
		return client, nil
	})

	reg.RegisterSearch("mock", func(cfg Config) (search.Searcher, error) {
		return mock.NewSearcher(mock.SearcherConfig{}), nil
	})

	// A nil searcher is valid; the search tool degrades to its unavailable
	// result instead of failing startup.
	reg.RegisterSearch("none", func(cfg Config) (search.Searcher, error) {
		return nil, nil
	})

	return reg
}
