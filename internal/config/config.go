package config

import "time"

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`

	// Room limits.
	MaxUsers      int `mapstructure:"max_users" yaml:"max_users"`
	HistoryReplay int `mapstructure:"history_replay" yaml:"history_replay"`
	HistoryQuery  int `mapstructure:"history_query" yaml:"history_query"`

	// Uploads and static assets.
	UploadDir        string `mapstructure:"upload_dir" yaml:"upload_dir"`
	MaxUploadBytes   int64  `mapstructure:"max_upload_bytes" yaml:"max_upload_bytes"`
	UploadsPerMinute int    `mapstructure:"uploads_per_minute" yaml:"uploads_per_minute"`
	StaticDir        string `mapstructure:"static_dir" yaml:"static_dir"`
	DatabasePath     string `mapstructure:"database_path" yaml:"database_path"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":3000",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		LogLevel:          "info",
		MaxUsers:          3,
		HistoryReplay:     20,
		HistoryQuery:      50,
		UploadDir:         "uploads",
		MaxUploadBytes:    10 << 20, // 10MB, matches the upload endpoint limit
		UploadsPerMinute:  60,
		StaticDir:         "public",
		DatabasePath:      "huddle.db",
	}
}

// UpdateFrom overwrites non-zero values from other config into receiver.
func (c *Config) UpdateFrom(other Config) {
	if other.Addr != "" {
		c.Addr = other.Addr
	}
	if other.ReadHeaderTimeout != 0 {
		c.ReadHeaderTimeout = other.ReadHeaderTimeout
	}
	if other.ShutdownTimeout != 0 {
		c.ShutdownTimeout = other.ShutdownTimeout
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.MaxUsers != 0 {
		c.MaxUsers = other.MaxUsers
	}
	if other.HistoryReplay != 0 {
		c.HistoryReplay = other.HistoryReplay
	}
	if other.HistoryQuery != 0 {
		c.HistoryQuery = other.HistoryQuery
	}
	if other.UploadDir != "" {
		c.UploadDir = other.UploadDir
	}
	if other.MaxUploadBytes != 0 {
		c.MaxUploadBytes = other.MaxUploadBytes
	}
	if other.UploadsPerMinute != 0 {
		c.UploadsPerMinute = other.UploadsPerMinute
	}
	if other.StaticDir != "" {
		c.StaticDir = other.StaticDir
	}
	if other.DatabasePath != "" {
		c.DatabasePath = other.DatabasePath
	}
}
