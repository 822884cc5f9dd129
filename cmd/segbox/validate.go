package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"segbox/internal/config"
	"segbox/internal/valuecfg"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate LOCATOR...",
		Short: "Load, merge and validate value configurations",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runValidate(ctx, cmd.OutOrStdout(), args)
		},
	}
}

func runValidate(ctx context.Context, w io.Writer, locators []string) error {
	fetcher := valuecfg.NewFetcher(valuecfg.WithTimeout(config.GetDuration(config.KeyFetchTimeout)))
	cfg, err := valuecfg.LoadAll(ctx, locators, fetcher)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, summarizeConfig(cfg))
	fmt.Fprintf(w, "OK: %d values in %d kinds\n", cfg.Len(), len(cfg.ValueKinds))
	return nil
}

// summarizeConfig renders one row per kind of a validated configuration.
func summarizeConfig(cfg valuecfg.Config) string {
	rows := make([][]string, 0, len(cfg.ValueKinds))
	for _, kind := range cfg.ValueKinds {
		color := kind.Color
		if color == "" {
			color = "-"
		}
		rows = append(rows, []string{
			kind.Name,
			strconv.Itoa(len(kind.Values)),
			color,
			strconv.FormatBool(kind.CaseInsensitive()),
		})
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("KIND", "VALUES", "COLOR", "IGNORE CASE").
		Rows(rows...).
		String()
}
