package main

import (
	"fmt"
	"os"
	"strconv"

	survey "github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Interactively generate a jsscan.yaml configuration file",
		Long: `Walks through the service's configuration options - listen address,
cache backend, audit log driver - and writes the result to jsscan.yaml in
the current directory.`,
		RunE: runInit,
	}
}

// initConfig mirrors internal/config.Config's shape for YAML marshaling,
// kept separate so prompts can populate it field by field.
type initConfig struct {
	Server struct {
		Host      string `yaml:"host"`
		Port      int    `yaml:"port"`
		APIPrefix string `yaml:"api_prefix"`
	} `yaml:"server"`
	Cache struct {
		Backend string `yaml:"backend"`
		Addr    string `yaml:"addr,omitempty"`
	} `yaml:"cache"`
	Audit struct {
		Driver string `yaml:"driver"`
		DSN    string `yaml:"dsn"`
	} `yaml:"audit"`
}

func runInit(cmd *cobra.Command, args []string) error {
	infoColor := color.New(color.FgCyan)
	successColor := color.New(color.FgGreen, color.Bold)

	if _, err := os.Stat("jsscan.yaml"); err == nil {
		return fmt.Errorf("jsscan.yaml already exists")
	}

	var cfg initConfig

	if err := survey.AskOne(&survey.Input{
		Message: "Server host:",
		Default: "localhost",
	}, &cfg.Server.Host); err != nil {
		return err
	}

	var portStr string
	if err := survey.AskOne(&survey.Input{
		Message: "Server port:",
		Default: "8420",
	}, &portStr); err != nil {
		return err
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return fmt.Errorf("invalid port: %w", err)
	}
	cfg.Server.Port = port

	if err := survey.AskOne(&survey.Input{
		Message: "API prefix:",
		Default: "/v1",
	}, &cfg.Server.APIPrefix); err != nil {
		return err
	}

	if err := survey.AskOne(&survey.Select{
		Message: "Cache backend:",
		Options: []string{"memory", "redis"},
		Default: "memory",
	}, &cfg.Cache.Backend); err != nil {
		return err
	}
	if cfg.Cache.Backend == "redis" {
		if err := survey.AskOne(&survey.Input{
			Message: "Redis address:",
			Default: "localhost:6379",
		}, &cfg.Cache.Addr); err != nil {
			return err
		}
	}

	if err := survey.AskOne(&survey.Select{
		Message: "Audit log driver:",
		Options: []string{"sqlite", "postgres"},
		Default: "sqlite",
	}, &cfg.Audit.Driver); err != nil {
		return err
	}
	defaultDSN := "jsscan_audit.db"
	if cfg.Audit.Driver == "postgres" {
		defaultDSN = "postgres://localhost:5432/jsscan?sslmode=disable"
	}
	if err := survey.AskOne(&survey.Input{
		Message: "Audit DSN:",
		Default: defaultDSN,
	}, &cfg.Audit.DSN); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile("jsscan.yaml", data, 0o644); err != nil {
		return fmt.Errorf("writing jsscan.yaml: %w", err)
	}

	infoColor.Println("Wrote jsscan.yaml")
	successColor.Println("Run 'jsscan serve' to start the tokenize service.")
	return nil
}
