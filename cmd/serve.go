// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sseindex/sseindex-server/api"
	"github.com/sseindex/sseindex-server/internal/index"
	"github.com/sseindex/sseindex-server/internal/rate"
	"github.com/sseindex/sseindex-server/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the encrypted index and document store over HTTP",
	Long: `serve loads the array and table built by build-index from the
configured database and answers trapdoor queries against them. It never
sees the client's keys, the keywords, or anything beyond what a
presented trapdoor and the index structure reveal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := serveCmdLoadConfig(cmd)
		if err != nil {
			return err
		}
		return runServe(cfg)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("ip", "127.0.0.1", "IP address to listen on")
	serveCmd.Flags().String("port", "8080", "Port to listen on")
	serveCmd.Flags().String("db-type", "sqlite", "Database driver: sqlite or postgres")
	serveCmd.Flags().String("db-dsn", "", "Database connection string")
	serveCmd.Flags().Float64("rate-limit", 5.0, "Per-peer queries/sec allowed before throttling")
	serveCmd.Flags().Int("rate-burst", 10, "Per-peer burst size")
}

func serveCmdLoadConfig(cmd *cobra.Command) (*SSEServerConfig, error) {
	if err := rootCmdLoadConfig(cmd); err != nil {
		return nil, err
	}

	cfg, err := loadConfigFile()
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("ip") || cfg.HTTP.IP == "" {
		cfg.HTTP.IP = viper.GetString("ip")
	}
	if cmd.Flags().Changed("port") || cfg.HTTP.Port == "" {
		cfg.HTTP.Port = viper.GetString("port")
	}
	if cmd.Flags().Changed("db-type") || cfg.DB.Type == "" {
		cfg.DB.Type = viper.GetString("db-type")
	}
	if cmd.Flags().Changed("db-dsn") || cfg.DB.DSN == "" {
		cfg.DB.DSN = viper.GetString("db-dsn")
	}

	if err := cfg.HTTP.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func runServe(cfg *SSEServerConfig) error {
	db, err := cfg.DB.open()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	nodes, err := db.AllNodes()
	if err != nil {
		return fmt.Errorf("loading array: %w", err)
	}
	entries, err := db.AllTEntries()
	if err != nil {
		return fmt.Errorf("loading table: %w", err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("table is empty: has build-index been run against this database?")
	}

	array := index.NewArrayFromEntries(nodes)
	table := index.NewTableFromEntries(uint64(len(entries)), entries)

	limiter := rate.NewPerPeerLimiter(viper.GetFloat64("rate-limit"), viper.GetInt("rate-burst"))
	handler := api.NewHTTPHandler(table, array, db, limiter).RegisterRoutes(nil)

	server := newHTTPServer(cfg.HTTP.ListenAddress(), handler)
	slog.Info("starting server", "addr", cfg.HTTP.ListenAddress())
	return server.start()
}

// sseServer is a thin graceful-shutdown wrapper around http.Server.
type sseServer struct {
	addr    string
	handler http.Handler
}

func newHTTPServer(addr string, handler http.Handler) *sseServer {
	return &sseServer{addr: addr, handler: handler}
}

func (s *sseServer) start() error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 3 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-stop
		slog.Debug("shutting down server")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			slog.Debug("server forced to shutdown", "err", err)
		}
	}()

	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	defer func() { _ = lis.Close() }()
	slog.Info("listening", "addr", lis.Addr().String())

	err = srv.Serve(lis)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
