package embedding

import (
	"errors"
	"testing"

	"github.com/roostlabs/roost/pkg/config"
)

func TestResolve_Precedence(t *testing.T) {
	stored := &config.EmbeddingConfig{
		APIKey: "stored-key",
		Model:  "stored-model",
	}

	t.Run("override wins over everything", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "env-key")
		t.Setenv("ROOST_EMBEDDING_MODEL", "env-model")

		resolved, err := Resolve("override-model", stored)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if resolved.Model != "override-model" {
			t.Errorf("Model = %q, want override-model", resolved.Model)
		}
		if resolved.APIKey != "env-key" {
			t.Errorf("APIKey = %q, want env-key", resolved.APIKey)
		}
	})

	t.Run("environment wins over stored", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "env-key")
		t.Setenv("ROOST_EMBEDDING_MODEL", "env-model")

		resolved, err := Resolve("", stored)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if resolved.Model != "env-model" {
			t.Errorf("Model = %q, want env-model", resolved.Model)
		}
	})

	t.Run("stored config when environment is empty", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "")
		t.Setenv("ROOST_EMBEDDING_MODEL", "")

		resolved, err := Resolve("", stored)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if resolved.APIKey != "stored-key" {
			t.Errorf("APIKey = %q, want stored-key", resolved.APIKey)
		}
		if resolved.Model != "stored-model" {
			t.Errorf("Model = %q, want stored-model", resolved.Model)
		}
	})

	t.Run("default model as last resort", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "env-key")
		t.Setenv("ROOST_EMBEDDING_MODEL", "")

		resolved, err := Resolve("", &config.EmbeddingConfig{})
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if resolved.Model != DefaultModel {
			t.Errorf("Model = %q, want %q", resolved.Model, DefaultModel)
		}
	})
}

func TestResolve_MissingKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := Resolve("", &config.EmbeddingConfig{})
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("Resolve() error = %v, want ErrMissingAPIKey", err)
	}
}
