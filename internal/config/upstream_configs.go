package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// UpstreamBootstrap describes the upstream aggregator the sync job talks to.
// It lets deployments point the service at a mirror or a mock without code
// changes; the environment variables win over the file when both are set.
type UpstreamBootstrap struct {
	Name    string            `yaml:"name"`
	BaseURL string            `yaml:"base_url"`
	APIKey  string            `yaml:"api_key"`
	Timeout time.Duration     `yaml:"timeout"`
	Headers map[string]string `yaml:"headers"`
}

type upstreamConfigDocument struct {
	Upstream UpstreamBootstrap `yaml:"upstream"`
}

// LoadUpstreamBootstrap parses the yaml file at the provided path.
func LoadUpstreamBootstrap(path string) (*UpstreamBootstrap, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("upstream config path is empty")
	}

	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("read upstream config %q: %w", cleanPath, err)
	}

	var doc upstreamConfigDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse upstream config %q: %w", cleanPath, err)
	}

	upstream := doc.Upstream
	if strings.TrimSpace(upstream.BaseURL) == "" {
		return nil, fmt.Errorf("upstream config %q has no base_url", cleanPath)
	}
	if upstream.Name == "" {
		upstream.Name = "openrouter"
	}

	return &upstream, nil
}
