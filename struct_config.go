package main

import (
	"time"
)

// config represents the service configuration file
type config struct {
	File string `yaml:"-" json:"-"` // Internal file path

	Server struct {
		Hostname        string        `yaml:"Hostname" json:"hostname" validate:"required,hostname_port"`
		ReadTimeout     time.Duration `yaml:"Read Timeout" json:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"Write Timeout" json:"write_timeout"`
		IdleTimeout     time.Duration `yaml:"Idle Timeout" json:"idle_timeout"`
		CacheExpiration time.Duration `yaml:"Cache Expiration" json:"cache_expiration" validate:"min=1m,max=168h"`

		RateLimit struct {
			PerClient   int64   `yaml:"Requests per minute per client" json:"per_client" validate:"min=1"`
			Global      float64 `yaml:"Requests per second for all clients" json:"global" validate:"gt=0"`
			GlobalBurst int     `yaml:"Burst for all clients" json:"global_burst" validate:"min=1"`
		} `yaml:"Rate Limit" json:"rate_limit"`
	} `yaml:"Server" json:"server"`

	Player struct {
		ScriptLocation string                 `yaml:"Script Location" json:"script_location" validate:"required,url"`
		Defaults       map[string]interface{} `yaml:"Site Defaults" json:"site_defaults"`
	} `yaml:"Player" json:"player"`

	Logging struct {
		Level string `yaml:"Level" json:"level" validate:"oneof=debug info warn error"`
	} `yaml:"Logging" json:"logging"`
}
