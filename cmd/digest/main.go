// Command digest fetches the past week's civic records around a point and
// mails the HTML summary to the configured recipients. It is intended to run
// once per week from cron or CI.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/civicupdates/civic-digest-service/internal/adapter/mail"
	"github.com/civicupdates/civic-digest-service/internal/adapter/socrata"
	"github.com/civicupdates/civic-digest-service/internal/config"
	"github.com/civicupdates/civic-digest-service/internal/digest"
	"github.com/civicupdates/civic-digest-service/internal/domain"
	"github.com/civicupdates/civic-digest-service/internal/observability"
	"github.com/civicupdates/civic-digest-service/internal/pipeline"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		lat          float64
		lon          float64
		radius       int
		from         string
		to           string
		smtpServer   string
		smtpPort     int
		smtpUser     string
		smtpPassword string
		dryRun       bool
	)

	cmd := &cobra.Command{
		Use:           "digest",
		Short:         "Email a weekly digest of nearby civic records",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			// Flags override the environment only when explicitly set.
			flags := cmd.Flags()
			if flags.Changed("search-area-latitude") {
				cfg.SearchAreaLatitude = lat
			}
			if flags.Changed("search-area-longitude") {
				cfg.SearchAreaLongitude = lon
			}
			if flags.Changed("search-area-radius") {
				cfg.SearchAreaRadius = radius
			}
			if flags.Changed("from-address") {
				cfg.FromAddress = from
			}
			if flags.Changed("to-addresses") {
				cfg.ToAddresses = to
			}
			if flags.Changed("smtp-server") {
				cfg.SMTPServer = smtpServer
			}
			if flags.Changed("smtp-port") {
				cfg.SMTPPort = smtpPort
			}
			if flags.Changed("smtp-user") {
				cfg.SMTPUser = smtpUser
			}
			if flags.Changed("smtp-password") {
				cfg.SMTPPassword = smtpPassword
			}

			if err := cfg.Validate(dryRun); err != nil {
				return err
			}

			logger := observability.NewLogger(cfg)
			metrics := observability.NewMetrics()

			loc, err := time.LoadLocation(cfg.CivicTimezone)
			if err != nil {
				return fmt.Errorf("load civic timezone: %w", err)
			}

			area := domain.SearchArea{
				Latitude:     cfg.SearchAreaLatitude,
				Longitude:    cfg.SearchAreaLongitude,
				RadiusMeters: cfg.SearchAreaRadius,
			}
			client := socrata.NewClient(cfg.PortalBaseURL, cfg.HTTPTimeout, logger, metrics)
			mailer := mail.NewMailer(cfg, logger)

			p := pipeline.New(client, mailer, digest.DefaultStyles(), area,
				mail.SplitRecipients(cfg.ToAddresses), loc, logger, metrics)
			if dryRun {
				p.DryRunOutput = cmd.OutOrStdout()
			}

			runErr := p.Run(cmd.Context())
			if err := metrics.Push(cfg.PushgatewayURL); err != nil {
				logger.Warn("metrics push failed", "error", err)
			}
			if runErr != nil {
				logger.Error("run failed", "error", runErr)
				return runErr
			}
			logger.Info("run complete")
			return nil
		},
	}

	flags := cmd.Flags()
	flags.Float64Var(&lat, "search-area-latitude", 0, "Latitude of the search area center")
	flags.Float64Var(&lon, "search-area-longitude", 0, "Longitude of the search area center")
	flags.IntVar(&radius, "search-area-radius", 2750, "Radius of the search area in meters")
	flags.StringVar(&from, "from-address", "", "Sender email address")
	flags.StringVar(&to, "to-addresses", "", "Comma-separated recipient addresses")
	flags.StringVar(&smtpServer, "smtp-server", "", "SMTP relay hostname")
	flags.IntVar(&smtpPort, "smtp-port", 0, "SMTP relay port")
	flags.StringVar(&smtpUser, "smtp-user", "", "SMTP username")
	flags.StringVar(&smtpPassword, "smtp-password", "", "SMTP password")
	flags.BoolVar(&dryRun, "dry-run", false, "Print the digest HTML instead of sending it")

	return cmd
}
