package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/lixenwraith/vi-steer/observability"
)

const serviceName = "steersim"

// app carries settings and the logger shared by subcommands
type app struct {
	v       *viper.Viper
	cfgFile string
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           serviceName,
		Short:         "Headless runner for steering scenarios",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initialize()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = observability.Sync(a.logger)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.cfgFile, "config", "c", "", "settings file (default ./steersim.yaml)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "console", "console log format: console or json")
	pf.String("log-file", "", "also write JSON logs to this rotated file")
	_ = a.v.BindPFlag("log.level", pf.Lookup("log-level"))
	_ = a.v.BindPFlag("log.format", pf.Lookup("log-format"))
	_ = a.v.BindPFlag("log.log_file", pf.Lookup("log-file"))

	root.AddCommand(newRunCmd(a), newValidateCmd(a))
	return root
}

// initialize reads the settings file and environment, then builds the logger
func (a *app) initialize() error {
	defaults := observability.DefaultLoggerConfig(serviceName)
	a.v.SetDefault("log.max_size", defaults.MaxSize)
	a.v.SetDefault("log.max_backups", defaults.MaxBackups)
	a.v.SetDefault("log.max_age", defaults.MaxAge)
	a.v.SetDefault("log.service_name", serviceName)

	if a.cfgFile != "" {
		path, err := homedir.Expand(a.cfgFile)
		if err != nil {
			return fmt.Errorf("expand config path: %w", err)
		}
		a.v.SetConfigFile(path)
	} else {
		a.v.AddConfigPath(".")
		a.v.SetConfigName(serviceName)
		a.v.SetConfigType("yaml")
	}

	a.v.SetEnvPrefix("STEERSIM")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read settings: %w", err)
		}
	}

	cfg := observability.LoggerConfig{
		Level:       a.v.GetString("log.level"),
		Format:      a.v.GetString("log.format"),
		LogFile:     a.v.GetString("log.log_file"),
		MaxSize:     a.v.GetInt("log.max_size"),
		MaxBackups:  a.v.GetInt("log.max_backups"),
		MaxAge:      a.v.GetInt("log.max_age"),
		Compress:    a.v.GetBool("log.compress"),
		ServiceName: a.v.GetString("log.service_name"),
	}
	if cfg.LogFile != "" {
		path, err := homedir.Expand(cfg.LogFile)
		if err != nil {
			return fmt.Errorf("expand log path: %w", err)
		}
		cfg.LogFile = path
	}

	logger, err := observability.NewLogger(cfg)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}
