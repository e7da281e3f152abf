package embedding

import (
	"errors"
	"os"

	"github.com/roostlabs/roost/pkg/config"
)

// DefaultModel is used when no model is configured anywhere.
const DefaultModel = "text-embedding-3-small"

// ErrMissingAPIKey is returned when no provider credential can be
// resolved. Recoverable by configuring a key and retrying.
var ErrMissingAPIKey = errors.New("an embedding API key is required, set OPENAI_API_KEY or embedding.api_key")

// Resolved is the effective provider configuration for one call.
type Resolved struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Resolve picks the credential and model for an embedding call. The
// model precedence is explicit override, then environment, then stored
// config, then the built-in default; the credential comes from the
// environment or stored config.
func Resolve(modelOverride string, stored *config.EmbeddingConfig) (*Resolved, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" && stored != nil {
		apiKey = stored.APIKey
	}
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	model := modelOverride
	if model == "" {
		model = os.Getenv("ROOST_EMBEDDING_MODEL")
	}
	if model == "" && stored != nil {
		model = stored.Model
	}
	if model == "" {
		model = DefaultModel
	}

	baseURL := ""
	if stored != nil {
		baseURL = stored.BaseURL
	}

	return &Resolved{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: baseURL,
	}, nil
}
