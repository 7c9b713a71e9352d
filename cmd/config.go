package cmd

import (
	"fmt"
	"strings"

	"github.com/abenherik/nba-milestones-sub001/internal/schema"
	"github.com/abenherik/nba-milestones-sub001/internal/source"
	"github.com/abenherik/nba-milestones-sub001/internal/transport"

	"github.com/spf13/viper"
)

// DestinationConfig describes the hosted destination database. The driver
// is auto-detected from the URL when left empty.
type DestinationConfig struct {
	URL       string `mapstructure:"url"`
	AuthToken string `mapstructure:"auth_token"`
	Driver    string `mapstructure:"driver"`
}

// DSN folds the auth token into the connection URL for token-authenticated
// hosted databases; other URLs pass through untouched.
func (c *DestinationConfig) DSN() string {
	if c.AuthToken == "" || !strings.HasPrefix(strings.ToLower(c.URL), "libsql://") {
		return c.URL
	}
	sep := "?"
	if strings.Contains(c.URL, "?") {
		sep = "&"
	}
	return c.URL + sep + "authToken=" + c.AuthToken
}

// GetDestinationConfig reads the destination block. A missing URL is a
// configuration error and fails the command before anything runs.
func GetDestinationConfig() (*DestinationConfig, error) {
	var cfg DestinationConfig
	if err := viper.UnmarshalKey("destination", &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse destination config: %w", err)
	}
	if cfg.URL == "" {
		return nil, fmt.Errorf("destination.url is required (set it in nbasync.yaml or NBASYNC_DESTINATION_URL)")
	}
	return &cfg, nil
}

func openDestination() (*transport.Direct, error) {
	cfg, err := GetDestinationConfig()
	if err != nil {
		return nil, err
	}
	return transport.OpenDirect(cfg.DSN(), cfg.Driver)
}

func openSource() (*source.SQLite, error) {
	return source.Open(viper.GetString("source.path"))
}

// loadTables returns the table descriptors in dependency order: the config
// file's tables block when present, the built-in milestones set otherwise.
func loadTables() ([]*schema.Table, error) {
	var tables []*schema.Table
	if viper.IsSet("tables") {
		if err := viper.UnmarshalKey("tables", &tables); err != nil {
			return nil, fmt.Errorf("failed to parse tables config: %w", err)
		}
	}
	if len(tables) == 0 {
		tables = schema.Defaults()
	}
	return schema.Order(tables)
}

// filterTables keeps only the named tables, preserving dependency order.
func filterTables(ordered []*schema.Table, names []string) ([]*schema.Table, error) {
	if len(names) == 0 {
		return ordered, nil
	}
	requested := make(map[string]bool)
	for _, n := range names {
		requested[strings.ToLower(n)] = true
	}
	var kept []*schema.Table
	for _, t := range ordered {
		if requested[strings.ToLower(t.Name)] {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("no matching tables found for inputs: %v", names)
	}
	return kept, nil
}
