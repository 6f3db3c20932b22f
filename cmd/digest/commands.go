package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"newsletter_digest/internal/domain"
	"newsletter_digest/internal/googleauth"
	"newsletter_digest/internal/scheduler"
)

func newIngestCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "ingest",
		Short: "Ingest unseen messages from the inbox once",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signalContext(opts.logger)
			defer cancel()

			a, err := newApp(ctx, opts.cfg, opts.logger)
			if err != nil {
				opts.logger.Error("failed to start", "error", err)
				return err
			}
			defer a.Close()

			stats, err := a.ingest.Run(ctx)
			if err != nil {
				opts.logger.Error("ingest failed", "error", err)
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ingested %d item(s), %d skipped, %d failed\n",
				stats.Persisted, stats.Skipped, len(stats.Failures))
			printFailures(out, stats.Failures)
			return nil
		},
	}
}

func newCompileCmd(opts *options) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "compile-digest",
		Short: "Compile the digest of the current week",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signalContext(opts.logger)
			defer cancel()

			a, err := newApp(ctx, opts.cfg, opts.logger)
			if err != nil {
				opts.logger.Error("failed to start", "error", err)
				return err
			}
			defer a.Close()

			outcome, err := a.digest.Compile(ctx, force)
			if err != nil {
				opts.logger.Error("compile failed", "error", err)
				return err
			}

			out := cmd.OutOrStdout()
			switch outcome.Status {
			case domain.DigestExists:
				fmt.Fprintf(out, "digest for %s already exists (use --force to replace)\n", outcome.Key)
			case domain.DigestEmpty:
				fmt.Fprintln(out, "no new items since the last digest")
			default:
				fmt.Fprintf(out, "digest %s compiled from %d item(s): %s\n", outcome.Key, outcome.Entries, outcome.DocRef)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "replace the digest of the current week")
	return cmd
}

func newRepublishCmd(opts *options) *cobra.Command {
	var key domain.WeekKey

	cmd := &cobra.Command{
		Use:   "republish-digest",
		Short: "Re-render a stored digest into its existing page",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if key.Week < 1 || key.Week > 53 {
				return fmt.Errorf("invalid week %d", key.Week)
			}

			ctx, cancel := signalContext(opts.logger)
			defer cancel()

			a, err := newApp(ctx, opts.cfg, opts.logger)
			if err != nil {
				opts.logger.Error("failed to start", "error", err)
				return err
			}
			defer a.Close()

			if err := a.digest.Republish(ctx, key); err != nil {
				opts.logger.Error("republish failed", "error", err)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "digest %s republished\n", key)
			return nil
		},
	}
	cmd.Flags().IntVar(&key.Week, "week", 0, "ISO week number")
	cmd.Flags().IntVar(&key.Year, "year", 0, "ISO year")
	_ = cmd.MarkFlagRequired("week")
	_ = cmd.MarkFlagRequired("year")
	return cmd
}

func newRegenerateIdeasCmd(opts *options) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "regenerate-ideas",
		Short: "Rebuild the dossier of every page in the ideas database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signalContext(opts.logger)
			defer cancel()

			a, err := newApp(ctx, opts.cfg, opts.logger)
			if err != nil {
				opts.logger.Error("failed to start", "error", err)
				return err
			}
			defer a.Close()

			stats, err := a.ideas.Regenerate(ctx, dryRun)
			if err != nil {
				opts.logger.Error("regeneration failed", "error", err)
				return err
			}

			out := cmd.OutOrStdout()
			if dryRun {
				fmt.Fprintf(out, "%d of %d page(s) would be regenerated, %d from stored analyses\n",
					stats.Planned, stats.Pages, stats.FromStore)
				return nil
			}
			fmt.Fprintf(out, "regenerated %d of %d page(s), %d failed\n",
				stats.Updated, stats.Planned, len(stats.Failures))
			printFailures(out, stats.Failures)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list the pages without writing")
	return cmd
}

func newClassifyIdeasCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "classify-ideas",
		Short: "Score, summarise and tag idea pages written by hand",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signalContext(opts.logger)
			defer cancel()

			a, err := newApp(ctx, opts.cfg, opts.logger)
			if err != nil {
				opts.logger.Error("failed to start", "error", err)
				return err
			}
			defer a.Close()

			stats, err := a.ideas.Classify(ctx)
			if err != nil {
				opts.logger.Error("classification failed", "error", err)
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "classified %d of %d page(s), %d skipped, %d failed\n",
				stats.Updated, stats.Planned, stats.Skipped, len(stats.Failures))
			printFailures(out, stats.Failures)
			return nil
		},
	}
}

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run ingestion and the weekly digest on a schedule",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signalContext(opts.logger)
			defer cancel()

			loc, err := opts.cfg.Schedule.Location()
			if err != nil {
				return err
			}

			a, err := newApp(ctx, opts.cfg, opts.logger)
			if err != nil {
				opts.logger.Error("failed to start", "error", err)
				return err
			}
			defer a.Close()

			sched := scheduler.NewScheduler(a.ingest, a.digest, scheduler.Config{
				IngestInterval: opts.cfg.Schedule.IngestInterval,
				DigestWeekday:  opts.cfg.Schedule.Weekday(),
				DigestHour:     opts.cfg.Schedule.DigestHour,
				Location:       loc,
			}, opts.logger)

			if err := sched.Start(ctx); err != nil && !isCancel(err) {
				opts.logger.Error("scheduler error", "error", err)
				return err
			}
			return nil
		},
	}
}

func newAuthCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Authorize Gmail access and store the token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			oauthCfg, err := googleauth.LoadConfig(opts.cfg.Gmail.CredentialsFile)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Open this URL in a browser and paste the authorization code:\n\n%s\n\ncode: ", googleauth.AuthURL(oauthCfg))

			code, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && strings.TrimSpace(code) == "" {
				return fmt.Errorf("read code: %w", err)
			}

			if err := googleauth.Exchange(cmd.Context(), oauthCfg, strings.TrimSpace(code), opts.cfg.Gmail.TokenFile); err != nil {
				return err
			}
			fmt.Fprintf(out, "token stored in %s\n", opts.cfg.Gmail.TokenFile)
			return nil
		},
	}
}

// printFailures lists one line per failed item.
func printFailures(w io.Writer, failures []domain.ItemFailure) {
	for _, f := range failures {
		name := f.Name
		if name == "" {
			name = f.ExternalID
		}
		fmt.Fprintf(w, "  failed %s (%s): %s\n", name, f.ExternalID, f.Err)
	}
}
