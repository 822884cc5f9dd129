package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"segbox/internal/config"
	"segbox/internal/store"
)

type historyOptions struct {
	limit   int
	fieldID string
	format  string
}

func newHistoryCmd() *cobra.Command {
	opts := &historyOptions{}
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List submitted values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runHistory(ctx, cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().IntVar(&opts.limit, "limit", 20, "Maximum number of submissions (0 for all)")
	cmd.Flags().StringVar(&opts.fieldID, "field", "", "Only list submissions of this field")
	cmd.Flags().StringVar(&opts.format, "format", "table", "Output format (table, json)")
	return cmd
}

func runHistory(ctx context.Context, w io.Writer, opts *historyOptions) error {
	format := strings.ToLower(strings.TrimSpace(opts.format))
	if format != "table" && format != "json" {
		return fmt.Errorf("unknown format %q (want table or json)", opts.format)
	}

	dbPath, err := config.DatabasePath()
	if err != nil {
		return err
	}
	st, err := store.Open(ctx, dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = st.Close()
	}()

	subs, err := st.List(ctx, opts.fieldID, opts.limit)
	if err != nil {
		return err
	}

	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if subs == nil {
			subs = []store.Submission{}
		}
		return enc.Encode(subs)
	}

	if len(subs) == 0 {
		fmt.Fprintln(w, "No submissions yet.")
		return nil
	}
	rows := make([][]string, 0, len(subs))
	for _, s := range subs {
		rows = append(rows, []string{
			s.SubmittedAt.Local().Format(time.DateTime),
			s.FieldID,
			s.Value,
		})
	}
	fmt.Fprintln(w, table.New().
		Border(lipgloss.NormalBorder()).
		Headers("SUBMITTED", "FIELD", "VALUE").
		Rows(rows...).
		String())
	return nil
}
