package backtest

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-brain/internal/backtest/costs"
	"gopkg.in/yaml.v2"
)

// Config is the replay configuration: initial capital, execution frictions and
// the annualization factor for the Sharpe ratio.
type Config struct {
	InitialEquity float64        `yaml:"initial_equity" json:"initial_equity" validate:"gt=0" jsonschema:"title=Initial Equity,description=Starting capital for the replay in currency units,minimum=0"`
	Exchange      costs.Exchange `yaml:"exchange" json:"exchange" jsonschema:"title=Exchange,description=The cost preset applied to fills"`
	// SamplesPerYear is the number of candles per year at the replay's
	// sampling interval (105120 for 5m candles).
	SamplesPerYear float64                    `yaml:"samples_per_year" json:"samples_per_year" validate:"gt=0" jsonschema:"minimum=1"`
	StartTime      optional.Option[time.Time] `yaml:"start_time" json:"start_time" jsonschema:"title=Start Time,description=Optional start time for the replay period"`
	EndTime        optional.Option[time.Time] `yaml:"end_time" json:"end_time" jsonschema:"title=End Time,description=Optional end time for the replay period"`
}

// DefaultConfig returns a Config with the standard cost preset on 5m candles.
func DefaultConfig() Config {
	return Config{
		InitialEquity:  10000,
		Exchange:       costs.ExchangeBinanceFutures,
		SamplesPerYear: 105120,
		StartTime:      optional.None[time.Time](),
		EndTime:        optional.None[time.Time](),
	}
}

// UnmarshalYAML implements custom unmarshaling for Config
func (c *Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	type plainConfig struct {
		InitialEquity  float64        `yaml:"initial_equity"`
		Exchange       costs.Exchange `yaml:"exchange"`
		SamplesPerYear float64        `yaml:"samples_per_year"`
		StartTime      *time.Time     `yaml:"start_time"`
		EndTime        *time.Time     `yaml:"end_time"`
	}

	var config plainConfig
	if err := unmarshal(&config); err != nil {
		return err
	}

	c.InitialEquity = config.InitialEquity
	c.Exchange = config.Exchange
	c.SamplesPerYear = config.SamplesPerYear

	if config.StartTime != nil {
		c.StartTime = optional.Some(*config.StartTime)
	}

	if config.EndTime != nil {
		c.EndTime = optional.Some(*config.EndTime)
	}

	return nil
}

// LoadConfig overlays the yaml content on the defaults and validates the
// result.
func LoadConfig(content string) (Config, error) {
	config := DefaultConfig()

	if err := yaml.Unmarshal([]byte(content), &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse backtest config: %w", err)
	}

	if err := validator.New().StructExcept(config, "StartTime", "EndTime"); err != nil {
		return Config{}, fmt.Errorf("invalid backtest config: %w", err)
	}

	return config, nil
}

// GenerateSchema generates a JSON schema for the Config
func (c *Config) GenerateSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t.String() == "optional.Option[time.Time]" {
				return &jsonschema.Schema{
					Type:   "string",
					Format: "date-time",
				}
			}
			if strings.Contains(t.String(), "costs.Exchange") {
				return &jsonschema.Schema{
					Type: "string",
					Enum: costs.AllExchanges,
				}
			}
			return nil
		},
	}

	schema := reflector.Reflect(c)

	// Set schema metadata
	schema.Title = "backtest-config"
	schema.Description = "Configuration schema for the backtest simulator"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema
}

// GenerateSchemaJSON generates a JSON schema string for the Config
func (c *Config) GenerateSchemaJSON() (string, error) {
	schema := c.GenerateSchema()

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}
