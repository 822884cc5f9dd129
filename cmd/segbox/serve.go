package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"segbox/internal/config"
	"segbox/internal/configserver"
	"segbox/internal/debug"
)

func newServeCmd() *cobra.Command {
	var addr, dir string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve value configurations from a directory over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			overrides := map[string]any{}
			if cmd.Flags().Changed("addr") {
				overrides[config.KeyServerAddr] = addr
			}
			if cmd.Flags().Changed("dir") {
				overrides[config.KeyServerDir] = dir
			}
			if err := config.ApplyOverrides(overrides); err != nil {
				return err
			}

			if !debug.Enabled() {
				gin.SetMode(gin.ReleaseMode)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			listen := config.GetString(config.KeyServerAddr)
			root := config.GetString(config.KeyServerDir)
			cmd.Printf("Serving %s on %s\n", root, listen)
			return configserver.New(root).Run(ctx, listen)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", configserver.DefaultAddr, "Listen address")
	cmd.Flags().StringVar(&dir, "dir", ".", "Directory holding <name>.json|yaml|yml documents")
	return cmd
}
