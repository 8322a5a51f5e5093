package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DataSource  string `yaml:"data_source"` // STATIC, HTML or API
	Market      string `yaml:"market"`
	PollSeconds int    `yaml:"poll_seconds"`
	Feed        struct {
		URL            string `yaml:"url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"feed"`
	Journal struct {
		Path string `yaml:"path"`
	} `yaml:"journal"`
	Static struct {
		Symbols []string `yaml:"symbols"`
	} `yaml:"static"`
}

func (c *Config) Validate() error {
	switch c.DataSource {
	case "STATIC", "HTML", "API":
	default:
		return fmt.Errorf("invalid data_source '%s': must be 'STATIC', 'HTML' or 'API'", c.DataSource)
	}
	if c.DataSource != "STATIC" && c.Feed.URL == "" {
		return fmt.Errorf("feed.url is required for data_source '%s'", c.DataSource)
	}
	if c.PollSeconds < 1 {
		return fmt.Errorf("poll_seconds must be >= 1, got %d", c.PollSeconds)
	}
	if c.Journal.Path == "" {
		return fmt.Errorf("journal.path cannot be empty")
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	if c.DataSource == "" {
		c.DataSource = "STATIC"
	}
	if c.Market == "" {
		c.Market = "TADAWUL"
	}
	if c.PollSeconds == 0 {
		c.PollSeconds = 60
	}
	if c.Feed.TimeoutSeconds == 0 {
		c.Feed.TimeoutSeconds = 20
	}
	if c.Journal.Path == "" {
		c.Journal.Path = "journal.csv"
	}
	if len(c.Static.Symbols) == 0 {
		c.Static.Symbols = []string{"2222", "1120", "2010", "7010", "1180"}
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}
