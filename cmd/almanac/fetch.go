package main

import (
	"errors"
	"fmt"
	"log/slog"

	"almanac/internal/almanac"
	"almanac/internal/debug"
	"almanac/internal/gls"

	"github.com/spf13/cobra"
)

func (a *app) newFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download the full almanac and print it as a C array",
		Args:  cobra.NoArgs,
		RunE:  a.runFetch,
	}
	a.addFetchFlags(cmd)
	return cmd
}

// runFetch prints the response status line, then the array literal
func (a *app) runFetch(cmd *cobra.Command, _ []string) error {
	if err := a.cfg.ValidateFetch(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	defer a.writeMetrics()

	client, err := gls.NewClient(gls.Config{
		URL:     a.cfg.AlmanacURL,
		Token:   a.cfg.Token,
		Timeout: a.cfg.Timeout,
	})
	if err != nil {
		return err
	}

	res, err := client.Fetch(cmd.Context())
	if err != nil {
		if errors.Is(err, gls.ErrUnauthorized) {
			slog.Error("The service rejected the token, check GLS_TOKEN")
		}
		return fmt.Errorf("failed to fetch almanac: %w", err)
	}
	fmt.Fprintln(a.out, res.Status)

	for _, w := range res.Warnings {
		slog.Warn("Almanac service warning", "warning", w)
	}

	return a.printLiteral(res.Image)
}

// printLiteral checks the image size against the declared capacity and prints the literal
func (a *app) printLiteral(img almanac.Image) error {
	summary, err := almanac.Summarize(img)
	if err != nil {
		return fmt.Errorf("failed to summarize almanac: %w", err)
	}
	debug.PrintImageSummary(summary)
	slog.Info("Almanac decoded",
		"bytes", summary.Size,
		"crc", summary.CRC,
		"cid", summary.CID,
	)

	if err := almanac.ValidateSize(img); err != nil {
		if !a.cfg.AllowSizeMismatch {
			return err
		}
		slog.Warn("Almanac does not fill the declared array", "error", err)
	}

	fmt.Fprintln(a.out, almanac.Format(img))
	return nil
}
