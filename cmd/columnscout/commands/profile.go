/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: profile.go
Description: The profile command. Profiles a file or standard input, renders the result
and optionally saves it with a dashboard and Prometheus counters.
*/

package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/columnscout/pkg/metrics"
	"github.com/kleascm/columnscout/pkg/profile"
	"github.com/kleascm/columnscout/pkg/reporting"
	"github.com/kleascm/columnscout/pkg/utils"
)

// RunProfile profiles the file named by args[0]
func RunProfile(cmd *cobra.Command, args []string) error {
	logger, err := SetupLogging()
	if err != nil {
		return err
	}
	defer logger.Close()
	log := logger.GetLogger()

	format, err := reporting.ParseFormat(viper.GetString("output.format"))
	if err != nil {
		return err
	}
	cfg, err := AnalyzerConfig()
	if err != nil {
		return err
	}
	opts, err := ProfileOptions()
	if err != nil {
		return err
	}
	registry, err := LoadRegistry(viper.GetString("plugins"))
	if err != nil {
		return err
	}

	prom := metrics.NewPrometheusReporter()
	opts.Config = cfg
	opts.Registry = registry
	opts.Reporter = metrics.Multi{metrics.NewLoggerReporter(log), prom}
	opts.Logger = log

	log.WithFields(logrus.Fields{
		"source": args[0],
		"locale": cfg.Locale,
		"window": cfg.DetectWindow,
	}).Info("Profile started")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	var p *profile.Profile
	if args[0] == "-" {
		p, err = profile.Run(ctx, "stdin", cmd.InOrStdin(), opts)
	} else {
		p, err = profile.File(ctx, args[0], opts)
	}
	if err != nil {
		return fmt.Errorf("profile failed: %w", err)
	}

	if err := reporting.Write(cmd.OutOrStdout(), p, format, Version); err != nil {
		return err
	}

	if dir := viper.GetString("output.dir"); dir != "" {
		path, err := utils.WriteResult(dir, "profile", Version, p)
		if err != nil {
			return err
		}
		log.WithField("path", path).Info("Profile saved")

		dg := reporting.NewDashboardGenerator(filepath.Join(dir, "dashboard"), log)
		if _, err := dg.GenerateDashboard(reporting.NewDashboardData(p, "Column Profile", Version)); err != nil {
			return err
		}
	}

	if path := viper.GetString("output.metrics_file"); path != "" {
		if err := prom.WriteToTextfile(path); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
		log.WithField("path", path).Debug("Metrics written")
	}
	return nil
}
