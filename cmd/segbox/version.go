package main

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"segbox/internal/config"
	"segbox/internal/update"
)

// Version information - injected at build time via ldflags
var (
	Version   = "dev"
	Build     = "unknown"
	BuildTime = ""
)

func newVersionCmd() *cobra.Command {
	var check bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printVersion(cmd.OutOrStdout())
			if !check {
				return nil
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			checker := update.NewChecker(
				config.GetString(config.KeyReleaseRepo),
				update.WithAPI(config.GetString(config.KeyReleaseAPI)),
			)
			return printUpdateStatus(ctx, cmd.OutOrStdout(), checker, Version)
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "Check for a newer release")
	return cmd
}

func printUpdateStatus(ctx context.Context, w io.Writer, checker *update.Checker, current string) error {
	status, err := checker.Check(ctx, current)
	if err != nil {
		return err
	}
	switch {
	case status.Dev:
		fmt.Fprintf(w, "Latest release: %s (development build, not compared)\n", status.Latest)
	case status.Newer:
		fmt.Fprintf(w, "Update available: %s -> %s\n", status.Current, status.Latest)
		if status.URL != "" {
			fmt.Fprintf(w, "  %s\n", status.URL)
		}
	default:
		fmt.Fprintf(w, "segbox %s is up to date\n", status.Current)
	}
	return nil
}

// printVersion prints the version information
func printVersion(w io.Writer) {
	fmt.Fprintf(w, "segbox version %s", Version)

	if Build != "unknown" && Build != "" {
		fmt.Fprintf(w, " (build: %s)", Build)
	}

	if BuildTime != "" {
		fmt.Fprintf(w, " [%s]", BuildTime)
	}

	fmt.Fprintln(w)

	fmt.Fprintf(w, "Go version: %s\n", runtime.Version())
	fmt.Fprintf(w, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)

	// Development builds report the VCS revision when available
	if Version == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			for _, setting := range info.Settings {
				if setting.Key == "vcs.revision" && len(setting.Value) > 7 {
					fmt.Fprintf(w, "Commit: %s\n", setting.Value[:7])
					break
				}
			}
		}
	}
}
