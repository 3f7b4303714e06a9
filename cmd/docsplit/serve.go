package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/roivaz/docsplit/internal/config"
	"github.com/roivaz/docsplit/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the conversion and splitting tools over MCP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger().WithName("mcp")
		cfg, err := mcp.DefaultConfig(log)
		if err != nil {
			return err
		}
		srv := mcp.New(cfg)
		defer srv.Close()

		addr := config.MCPAddr()
		httpServer := &http.Server{
			Addr:    addr,
			Handler: srv.Handler,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Info("MCP server listening", "addr", addr, "endpoint", "/mcp/jsonrpc")
			errCh <- httpServer.ListenAndServe()
		}()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

		select {
		case <-stop:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return httpServer.Shutdown(ctx)
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		}
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides mcp_addr)")
	_ = viper.BindPFlag(config.KeyMCPAddr, serveCmd.Flags().Lookup("addr"))
}
