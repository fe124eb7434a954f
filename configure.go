// Package main provides playersetup, a service that normalizes media player setup options.
package main

import (
	"bytes"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	defaultHostname        = "localhost:8080"
	defaultScriptLocation  = "http://localhost:8080/player/"
	defaultCacheExpiration = 1 * time.Hour
)

// Configure creates the configuration file, or adds options missing from an existing one
func Configure(filename string) error {
	Config.File = strings.TrimSuffix(filename, filepath.Ext(filename))

	if err := Config.Open(); err != nil {
		return errors.Wrap(err, "failed to open configuration")
	}

	logger.WithFields(logrus.Fields{
		"file":            Config.File + ".yaml",
		"hostname":        Config.Server.Hostname,
		"script_location": Config.Player.ScriptLocation,
	}).Info("Configuration ready")

	return Config.Save()
}

// Open opens and validates the configuration file
func (c *config) Open() error {
	data, err := os.ReadFile(fmt.Sprintf("%s.yaml", c.File))
	if err != nil {
		// File is missing, create new config file
		c.InitConfig()
		return c.Save()
	}

	// Open config file and convert YAML to struct
	if err := yaml.Unmarshal(data, c); err != nil {
		return errors.Wrap(err, "failed to parse configuration file")
	}

	// Update configuration with new options if needed
	if err := c.updateNewOptions(data); err != nil {
		return errors.Wrap(err, "failed to update configuration with new options")
	}

	// Validate configuration
	if err := c.validate(); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	return nil
}

// Save saves the configuration to file with proper permissions
func (c *config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to marshal configuration")
	}

	// Create a temporary file
	tmpFile := fmt.Sprintf("%s.yaml.tmp", c.File)
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		return errors.Wrap(err, "failed to write temporary configuration file")
	}

	// Rename temporary file to actual file
	if err := os.Rename(tmpFile, fmt.Sprintf("%s.yaml", c.File)); err != nil {
		os.Remove(tmpFile) // Clean up temp file
		return errors.Wrap(err, "failed to rename temporary configuration file")
	}

	return nil
}

// InitConfig initializes a new configuration with default values
func (c *config) InitConfig() {
	// Server
	c.Server.Hostname = defaultHostname
	c.Server.ReadTimeout = 15 * time.Second
	c.Server.WriteTimeout = 15 * time.Second
	c.Server.IdleTimeout = 60 * time.Second
	c.Server.CacheExpiration = defaultCacheExpiration

	// Rate Limit
	c.Server.RateLimit.PerClient = 60
	c.Server.RateLimit.Global = 100
	c.Server.RateLimit.GlobalBurst = 50

	// Player
	c.Player.ScriptLocation = defaultScriptLocation
	c.Player.Defaults = map[string]interface{}{}

	// Logging
	c.Logging.Level = "info"
}

// validate performs validation on the configuration
func (c *config) validate() error {
	// Validate required fields
	if c.Server.Hostname == "" {
		return errors.New("hostname is required")
	}
	if _, _, err := net.SplitHostPort(c.Server.Hostname); err != nil {
		return errors.Wrap(err, "hostname must be host:port")
	}
	if c.Player.ScriptLocation == "" {
		return errors.New("script location is required")
	}
	if u, err := url.Parse(c.Player.ScriptLocation); err != nil {
		return errors.Wrap(err, "invalid script location")
	} else if !u.IsAbs() && !strings.HasPrefix(u.Path, "/") {
		return errors.New("script location must be an absolute URL or path")
	}

	// Validate timeouts
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 || c.Server.IdleTimeout <= 0 {
		return errors.New("server timeouts must be positive")
	}
	if c.Server.CacheExpiration < time.Minute || c.Server.CacheExpiration > 168*time.Hour {
		return errors.New("cache expiration must be between 1m and 168h")
	}

	// Validate rate limits
	if c.Server.RateLimit.PerClient < 1 {
		return errors.New("requests per minute per client must be at least 1")
	}
	if c.Server.RateLimit.Global <= 0 {
		return errors.New("requests per second for all clients must be positive")
	}
	if c.Server.RateLimit.GlobalBurst < 1 {
		return errors.New("burst for all clients must be at least 1")
	}

	// Validate log level
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		// Valid values
	default:
		return errors.New("invalid log level")
	}

	return nil
}

// updateNewOptions updates the configuration with new options if needed
func (c *config) updateNewOptions(data []byte) error {
	var updated bool

	// Check and update new options
	if !bytes.Contains(data, []byte("Idle Timeout")) {
		updated = true
		c.Server.IdleTimeout = 60 * time.Second
		logger.Info("Added idle timeout option")
	}

	if !bytes.Contains(data, []byte("Cache Expiration")) {
		updated = true
		c.Server.CacheExpiration = defaultCacheExpiration
		logger.Info("Added cache expiration option")
	}

	if !bytes.Contains(data, []byte("Rate Limit:")) {
		updated = true
		c.Server.RateLimit.PerClient = 60
		c.Server.RateLimit.Global = 100
		c.Server.RateLimit.GlobalBurst = 50
		logger.Info("Added rate limit options")
	}

	if !bytes.Contains(data, []byte("Site Defaults")) {
		updated = true
		c.Player.Defaults = map[string]interface{}{}
		logger.Info("Added site defaults option")
	}

	if !bytes.Contains(data, []byte("Logging:")) {
		updated = true
		c.Logging.Level = "info"
		logger.Info("Added logging options")
	}

	if updated {
		return c.Save()
	}

	return nil
}

// logLevel returns the logrus level for the configured level name
func (c *config) logLevel() logrus.Level {
	level, err := logrus.ParseLevel(c.Logging.Level)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}
