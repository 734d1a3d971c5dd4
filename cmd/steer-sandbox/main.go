package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/vi-steer/observability"
	"github.com/lixenwraith/vi-steer/scenario"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "steer-sandbox:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		scenarioPath string
		sound        bool
		profile      string
		logFile      string
	)

	cmd := &cobra.Command{
		Use:           "steer-sandbox",
		Short:         "Interactive terminal viewer for a steering scenario",
		Long:          "Mouse moves the cursor target, right click drops an obstacle, space pauses, c clears the cursor, q or Esc quits.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(*cobra.Command, []string) error {
			// Terminal is owned by the screen, logs only go to the file if one is given
			logCfg := observability.DefaultLoggerConfig("steer-sandbox")
			logCfg.Quiet = true
			logCfg.Level = "debug"
			logCfg.LogFile = logFile
			logger, err := observability.NewLogger(logCfg)
			if err != nil {
				return err
			}
			defer func() { _ = observability.Sync(logger) }()

			s, err := scenario.LoadFile(scenarioPath)
			if err != nil {
				return err
			}
			if profile != "" {
				s.Profile = profile
			}
			world, err := s.Build(logger)
			if err != nil {
				return err
			}

			sb, err := NewSandbox(world, logger)
			if err != nil {
				return fmt.Errorf("initialize screen: %w", err)
			}
			defer sb.cleanup()

			if sound {
				if err := sb.initAudio(); err != nil {
					// Non-fatal, sandbox runs without sound
					logger.Warn("audio initialization failed", zap.Error(err))
				}
			}

			sb.run()
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&scenarioPath, "scenario", "s", "", "scenario file")
	f.BoolVar(&sound, "sound", false, "play a tone when an agent hits a boundary")
	f.StringVar(&profile, "profile", "", "override integration profile: standard or damped")
	f.StringVar(&logFile, "log-file", "", "write debug logs to this file")
	_ = cmd.MarkFlagRequired("scenario")
	return cmd
}
