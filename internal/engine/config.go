package engine

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/rxtech-lab/argo-brain/internal/regime"
	"github.com/rxtech-lab/argo-brain/internal/strategy"
	"gopkg.in/yaml.v2"
)

// Config is the full decision-core configuration. It is constructed once,
// never mutated afterwards, and passed into each component at construction
// time. Parameter-search workers must each own an independently configured
// engine instance.
type Config struct {
	Regime    regime.Config   `yaml:"regime" json:"regime"`
	Strategy  strategy.Config `yaml:"strategy" json:"strategy"`
	Estimator EstimatorConfig `yaml:"estimator" json:"estimator"`
	Selector  SelectorConfig  `yaml:"selector" json:"selector"`
	Sizer     SizerConfig     `yaml:"sizer" json:"sizer"`
	// HistoryCapacity is the per-(strategy, regime) outcome capacity.
	HistoryCapacity int `yaml:"history_capacity" json:"history_capacity" validate:"gt=0" jsonschema:"minimum=1"`
	// CooldownSteps is the number of evaluations skipped after a losing trade.
	CooldownSteps int `yaml:"cooldown_steps" json:"cooldown_steps" validate:"gte=0" jsonschema:"minimum=0"`
}

// DefaultConfig returns the canonical decision-core parameters.
func DefaultConfig() Config {
	return Config{
		Regime:          regime.DefaultConfig(),
		Strategy:        strategy.DefaultConfig(),
		Estimator:       DefaultEstimatorConfig(),
		Selector:        DefaultSelectorConfig(),
		Sizer:           DefaultSizerConfig(),
		HistoryCapacity: 100,
		CooldownSteps:   3,
	}
}

// LoadConfig overlays the yaml content on the defaults and validates the
// result.
func LoadConfig(content string) (Config, error) {
	config := DefaultConfig()

	if err := yaml.Unmarshal([]byte(content), &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse engine config: %w", err)
	}

	if err := validator.New().Struct(config); err != nil {
		return Config{}, fmt.Errorf("invalid engine config: %w", err)
	}

	return config, nil
}

// GenerateSchema generates a JSON schema for the Config.
func (c *Config) GenerateSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
	}

	schema := reflector.Reflect(c)

	// Set schema metadata
	schema.Title = "decision-engine-config"
	schema.Description = "Configuration schema for the decision engine"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema
}

// GenerateSchemaJSON generates a JSON schema string for the Config.
func (c *Config) GenerateSchemaJSON() (string, error) {
	schema := c.GenerateSchema()

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to generate schema: %w", err)
	}

	return string(schemaBytes), nil
}
