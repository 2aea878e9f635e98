package obfx

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variable names.
const (
	// EnvPIIFields holds the deployment-default PII field list,
	// comma-separated. Example: "name,email_address,phone_number"
	EnvPIIFields = "OBFX_PII_FIELDS"

	// EnvRegion overrides the object store region.
	EnvRegion = "OBFX_REGION"
)

// LoadConfigFromEnvironment reads configuration from environment variables.
// Both variables are optional: an empty configuration is valid and means
// every request must carry its own field list.
func LoadConfigFromEnvironment() (Config, error) {
	cfg := Config{
		DefaultFields: splitFieldList(os.Getenv(EnvPIIFields)),
		Region:        os.Getenv(EnvRegion),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFromFile reads a YAML configuration file. Values from the
// environment take precedence over the file.
func LoadConfigFromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
	}

	if env := splitFieldList(os.Getenv(EnvPIIFields)); len(env) > 0 {
		cfg.DefaultFields = env
	}
	if region := os.Getenv(EnvRegion); region != "" {
		cfg.Region = region
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func splitFieldList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	fields := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			fields = append(fields, p)
		}
	}
	return fields
}
