package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/yourusername/playersetup/setup"
)

// AppName : Application name
const AppName = "playersetup"

// Version : Application version
const Version = "1.0.0"

// Config : Global configuration
var Config config

// logger is the global logger instance
var logger = logrus.New()

func init() {
	// Configure logger
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.InfoLevel)
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("Received shutdown signal")
		cancel()
	}()

	var configure = flag.String("configure", "", "Create or update the configuration file [filename.yaml]")
	var config = flag.String("config", "", "Serve the setup API with configuration file [filename.yaml]")
	var normalize = flag.String("normalize", "", "Print the canonical configuration for an options file [options.json|options.yaml]")
	var location = flag.String("location", "", "Script location used to resolve the base path (overrides the configuration file)")
	var h = flag.Bool("h", false, "Show help")

	flag.Parse()

	logger.WithFields(logrus.Fields{
		"version": Version,
		"app":     AppName,
	}).Debug("Starting application")

	if *h {
		fmt.Println()
		flag.Usage()
		os.Exit(0)
	}

	if len(*configure) != 0 {
		if err := Configure(*configure); err != nil {
			logger.WithError(err).Fatal("Failed to configure application")
		}
		os.Exit(0)
	}

	if len(*config) != 0 {
		Config.File = strings.TrimSuffix(*config, filepath.Ext(*config))
		if err := Config.Open(); err != nil {
			logger.WithError(err).Fatal("Failed to open configuration")
		}
		logger.SetLevel(Config.logLevel())
	} else {
		Config.InitConfig()
	}

	if len(*location) != 0 {
		Config.Player.ScriptLocation = *location
	}

	if len(*normalize) != 0 {
		if err := normalizeFile(*normalize, os.Stdout); err != nil {
			logger.WithError(err).Fatal("Failed to normalize options")
		}
		os.Exit(0)
	}

	if len(*config) != 0 {
		app := NewApp(Config, logger)
		if err := app.Server(ctx); err != nil {
			logger.WithError(err).Fatal("Server error")
		}
		return
	}

	flag.Usage()
}

// normalizeFile prints the canonical configuration for the options in filename
func normalizeFile(filename string, out io.Writer) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return errors.Wrap(err, "failed to read options file")
	}

	// YAML is a superset of JSON, one decoder serves both
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		logger.WithError(err).Warn("Options file is not valid JSON or YAML, using defaults")
		raw = nil
	}

	n := setup.New(Config.Player.ScriptLocation,
		setup.WithLogger(logger),
		setup.WithSiteDefaults(Config.Player.Defaults),
	)

	encoded, err := json.MarshalIndent(n.Normalize(raw), "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal configuration")
	}

	if _, err := fmt.Fprintln(out, string(encoded)); err != nil {
		return errors.Wrap(err, "failed to write configuration")
	}
	return nil
}
