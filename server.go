package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"fitcalc/internal/api"
	"fitcalc/internal/service"
)

const shutdownTimeout = 5 * time.Second

// --- serve ---

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the calculator HTTP API on 127.0.0.1.

With --mcp the MCP tools are also served over stdin/stdout, so logs
always go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port, _ = cmd.Flags().GetInt("port")
			}
			withMCP, _ := cmd.Flags().GetBool("mcp")

			logger := newLogger(cfg.Log.Level, os.Stderr)
			calc := service.NewCalculator(logger)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			addr := fmt.Sprintf("127.0.0.1:%d", cfg.Server.Port)
			srv := &http.Server{
				Addr:              addr,
				Handler:           api.NewHandler(calc, logger),
				ReadHeaderTimeout: 10 * time.Second,
				BaseContext: func(_ net.Listener) context.Context {
					return ctx
				},
			}

			g, gctx := errgroup.WithContext(ctx)

			g.Go(func() error {
				printMsg(os.Stderr, msgStep, "fitcalc %s listening on %s", version, addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("server error: %w", err)
				}
				return nil
			})

			g.Go(func() error {
				<-gctx.Done()
				logger.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})

			if withMCP {
				g.Go(func() error {
					return serveMCP(gctx, calc)
				})
			}

			return g.Wait()
		},
	}

	cmd.Flags().Int("port", 0, "listen port (default from config, 8471)")
	cmd.Flags().Bool("mcp", false, "also serve MCP over stdio")
	return cmd
}

// --- mcp ---

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the calculator tools over MCP stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			calc := service.NewCalculator(newLogger(cfg.Log.Level, os.Stderr))
			return serveMCP(ctx, calc)
		},
	}
}

// serveMCP blocks until ctx is done or stdin is closed
func serveMCP(ctx context.Context, calc *service.Calculator) error {
	stdio := server.NewStdioServer(api.NewMCPServer(calc, version))
	stdio.SetErrorLogger(log.New(os.Stderr, "mcp: ", log.LstdFlags))

	if err := stdio.Listen(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
