package config

import (
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/hashicorp/go-multierror"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/pmorille/trello-weekly/internal/constants"
)

// DefaultBaseURL is the root of the Trello REST API
const DefaultBaseURL = "https://api.trello.com/1"

// envPrefix selects which environment variables feed the Trello section
const envPrefix = "TRELLO_"

// Config holds the application configuration
type Config struct {
	Trello TrelloConfig   `koanf:"trello"`
	Cards  []CardTemplate `koanf:"cards"`
}

// TrelloConfig holds the Trello credentials and endpoint from environment
type TrelloConfig struct {
	APIKey   string `koanf:"api_key"`
	APIToken string `koanf:"api_token"`
	BoardID  string `koanf:"board_id"`
	BaseURL  string `koanf:"base_url"`
}

// CardTemplate describes one card to create in the weekly list
type CardTemplate struct {
	Title       string              `koanf:"title"`
	DayOfWeek   constants.Weekday   `koanf:"day_of_week"`
	Hour        int                 `koanf:"hour"`
	Minute      int                 `koanf:"minute"`
	Labels      []string            `koanf:"labels"`
	Description string              `koanf:"description"`
	Checklists  []ChecklistTemplate `koanf:"checklists"`
}

// ChecklistTemplate describes a checklist attached to a card
type ChecklistTemplate struct {
	Name  string   `koanf:"name"`
	Items []string `koanf:"items"`
}

// Load reads the cards file and environment variables
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"trello.base_url": DefaultBaseURL,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Card definitions from the YAML file
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load cards file %s: %w", path, err)
	}

	// Credentials and endpoint overrides from TRELLO_* environment variables
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return "trello." + strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:       mapstructure.TextUnmarshallerHookFunc(),
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}); err != nil {
		return nil, fmt.Errorf("failed to parse cards file %s: %w", path, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.Trello.APIKey == "" {
		return fmt.Errorf("TRELLO_API_KEY environment variable is required")
	}
	if cfg.Trello.APIToken == "" {
		return fmt.Errorf("TRELLO_API_TOKEN environment variable is required")
	}
	if cfg.Trello.BoardID == "" {
		return fmt.Errorf("TRELLO_BOARD_ID environment variable is required")
	}

	if len(cfg.Cards) == 0 {
		return fmt.Errorf("no cards defined in configuration")
	}

	var result *multierror.Error
	for i, card := range cfg.Cards {
		if err := card.Validate(); err != nil {
			result = multierror.Append(result, fmt.Errorf("card %d: %w", i+1, err))
		}
	}
	return result.ErrorOrNil()
}

// Validate checks the card template fields, reporting every problem at once
func (c *CardTemplate) Validate() error {
	var result *multierror.Error

	if strings.TrimSpace(c.Title) == "" {
		result = multierror.Append(result, fmt.Errorf("title must not be empty"))
	}
	if !c.DayOfWeek.IsValid() {
		result = multierror.Append(result, fmt.Errorf("invalid day_of_week: %q", string(c.DayOfWeek)))
	}
	if c.Hour < 0 || c.Hour > 23 {
		result = multierror.Append(result, fmt.Errorf("invalid hour: %d (must be between 0 and 23)", c.Hour))
	}
	if c.Minute < 0 || c.Minute > 59 {
		result = multierror.Append(result, fmt.Errorf("invalid minute: %d (must be between 0 and 59)", c.Minute))
	}
	for _, label := range c.Labels {
		if strings.TrimSpace(label) == "" {
			result = multierror.Append(result, fmt.Errorf("label names must not be empty"))
		}
	}
	for _, checklist := range c.Checklists {
		if strings.TrimSpace(checklist.Name) == "" {
			result = multierror.Append(result, fmt.Errorf("checklist names must not be empty"))
		}
	}

	return result.ErrorOrNil()
}
