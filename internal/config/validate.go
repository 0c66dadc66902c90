package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if strings.TrimSpace(c.Identity.CredentialsPath) == "" {
		return fmt.Errorf("identity.credentials_path is required")
	}

	if err := c.Inference.validate(); err != nil {
		return fmt.Errorf("inference: %w", err)
	}

	if strings.TrimSpace(c.UseCases.Path) == "" {
		return fmt.Errorf("usecases.path is required")
	}

	if err := c.History.validate(); err != nil {
		return fmt.Errorf("history: %w", err)
	}

	return nil
}

func (i *InferenceConfig) validate() error {
	i.Provider = strings.ToLower(strings.TrimSpace(i.Provider))

	switch i.Provider {
	case ProviderWorkersAI:
		if i.AccountID == "" {
			return fmt.Errorf("account_id is required for provider %q", i.Provider)
		}
	case ProviderGemini:
		if i.BaseURL == defaultWorkersAIBaseURL {
			i.BaseURL = ""
		}
		if i.Model == defaultWorkersAIModel {
			i.Model = defaultGeminiModel
		}
	default:
		return fmt.Errorf("unknown provider %q", i.Provider)
	}

	if i.APIToken == "" {
		return fmt.Errorf("api_token is required")
	}
	if i.Model == "" {
		return fmt.Errorf("model is required")
	}
	if i.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", i.Timeout)
	}
	if i.ProbeTimeout <= 0 || i.ProbeTimeout > i.Timeout {
		return fmt.Errorf("probe_timeout must be in (0, timeout] (got %v)", i.ProbeTimeout)
	}
	if i.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be > 0 (got %d)", i.MaxTokens)
	}
	return nil
}

func (h *HistoryConfig) validate() error {
	if h.MaxLimit < 1 {
		return fmt.Errorf("max_limit must be >= 1 (got %d)", h.MaxLimit)
	}
	if h.DefaultLimit < 1 || h.DefaultLimit > h.MaxLimit {
		return fmt.Errorf("default_limit must be in 1..%d (got %d)", h.MaxLimit, h.DefaultLimit)
	}
	if h.PreviewLength < 1 {
		return fmt.Errorf("preview_length must be >= 1 (got %d)", h.PreviewLength)
	}
	return nil
}
