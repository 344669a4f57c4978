// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/viper"

	"github.com/pdiddy/project-catalog/internal/catalog"
	"github.com/pdiddy/project-catalog/internal/criteria"
	"github.com/pdiddy/project-catalog/pkg/types"
)

const defaultDataDir = "catalog"

func init() {
	viper.SetDefault("catalog.data_dir", defaultDataDir)
	viper.SetDefault("search.default_page_size", criteria.DefaultPageSize)
	viper.SetDefault("server.host", "127.0.0.1")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "release")
	viper.SetDefault("server.shutdown_timeout", "10s")
	viper.SetDefault("log_level", "warn")
}

// loadConfig assembles the configuration from defaults, the config file,
// PROJECT_CATALOG_* variables, and bound flags, in increasing precedence.
func loadConfig() types.Config {
	return types.Config{
		Catalog: types.CatalogConfig{
			DataDir: viper.GetString("catalog.data_dir"),
		},
		Search: types.SearchConfig{
			DefaultPageSize: viper.GetInt("search.default_page_size"),
		},
		Server: types.ServerConfig{
			Host:            viper.GetString("server.host"),
			Port:            viper.GetInt("server.port"),
			Mode:            viper.GetString("server.mode"),
			ShutdownTimeout: viper.GetDuration("server.shutdown_timeout"),
		},
	}
}

func openStore() (*catalog.Store, types.Config, error) {
	cfg := loadConfig()
	store, err := catalog.NewStore(cfg.Catalog)
	if err != nil {
		return nil, cfg, err
	}
	return store, cfg, nil
}
