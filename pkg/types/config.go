// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// CatalogConfig holds settings for the SQLite record store.
type CatalogConfig struct {
	// DataDir is the base directory for the catalog (contains index/).
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// SearchConfig holds defaults applied to search requests.
type SearchConfig struct {
	// DefaultPageSize is used when a request omits size (default 10).
	DefaultPageSize int `json:"default_page_size" yaml:"default_page_size"`
}

// ServerConfig holds settings for the HTTP search endpoint.
type ServerConfig struct {
	// Host is the listen address (default "127.0.0.1").
	Host string `json:"host" yaml:"host"`

	// Port is the listen port (default 8080).
	Port int `json:"port" yaml:"port"`

	// Mode is the gin mode: debug, release, or test.
	Mode string `json:"mode" yaml:"mode"`

	// ShutdownTimeout bounds graceful shutdown (default 10s).
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// Config groups all settings read from project-catalog.yaml.
type Config struct {
	Catalog CatalogConfig `json:"catalog" yaml:"catalog"`
	Search  SearchConfig  `json:"search" yaml:"search"`
	Server  ServerConfig  `json:"server" yaml:"server"`
}
