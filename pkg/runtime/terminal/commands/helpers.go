package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/de-tools/form-atlas/pkg/services/config"
	"github.com/de-tools/form-atlas/pkg/services/narrative"
	"github.com/de-tools/form-atlas/pkg/services/registry"
)

// resolveProfile loads collaborator settings from either a single-profile
// config file or a named section of an ini profiles file. With neither path
// set the run proceeds with an empty profile and default collaborators.
func resolveProfile(ctx context.Context, configPath, profilesPath, profileName string) (*config.Profile, error) {
	switch {
	case configPath != "":
		return config.LoadProfile(configPath)
	case profilesPath != "":
		reg, err := config.NewRegistry(profilesPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load profiles file: %w", err)
		}
		return reg.GetProfile(ctx, profileName)
	default:
		return &config.Profile{}, nil
	}
}

// buildCollaborators wires the external services a profile enables. Either
// collaborator stays nil when its configuration is empty, leaving the run
// deterministic-only.
func buildCollaborators(ctx context.Context, profile *config.Profile) (registry.Verifier, *narrative.Gemini, error) {
	var verifier registry.Verifier
	if profile.EINRegistryURL != "" {
		verifier = registry.NewClient(registry.Options{
			BaseURL: profile.EINRegistryURL,
			Timeout: profile.RequestTimeout(),
		})
	}

	if profile.GeminiAPIKey == "" {
		return verifier, nil, nil
	}

	narrator, err := narrative.NewGemini(ctx, profile.GeminiAPIKey, profile.GeminiModel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize narrator: %w", err)
	}
	return verifier, narrator, nil
}

func loadPayload(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read payload file: %w", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse payload file %s: %w", path, err)
	}
	return payload, nil
}

func loadPayloadList(path string) ([]map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read payload file: %w", err)
	}

	var payloads []map[string]any
	if err := json.Unmarshal(raw, &payloads); err != nil {
		// Accept a single object as a one-entry batch.
		var single map[string]any
		if singleErr := json.Unmarshal(raw, &single); singleErr == nil {
			return []map[string]any{single}, nil
		}
		return nil, fmt.Errorf("failed to parse payload file %s: %w", path, err)
	}
	return payloads, nil
}
