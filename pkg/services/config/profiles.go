package config

import (
	"context"
	"fmt"

	"gopkg.in/ini.v1"
)

// Registry reads named profiles from an ini credentials file, one section
// per profile.
type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetProfile(ctx context.Context, name string) (*Profile, error)
}

type iniRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &iniRegistry{cfg: cfg}, nil
}

func (r *iniRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range r.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (r *iniRegistry) GetProfile(_ context.Context, name string) (*Profile, error) {
	section := r.cfg.Section(name)
	if section == nil || len(section.Keys()) == 0 {
		return nil, fmt.Errorf("profile %s not found", name)
	}

	timeout, _ := section.Key("request_timeout_seconds").Int()
	return &Profile{
		EINRegistryURL:        section.Key("ein_registry_url").String(),
		GeminiAPIKey:          section.Key("gemini_api_key").String(),
		GeminiModel:           section.Key("gemini_model").String(),
		RequestTimeoutSeconds: timeout,
	}, nil
}
