package cmd

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/royalkeys/royalkeys/api"
	"github.com/royalkeys/royalkeys/assistant"
	"github.com/royalkeys/royalkeys/backoffice"
	"github.com/royalkeys/royalkeys/catalog"
	"github.com/royalkeys/royalkeys/internal/util"
	"github.com/royalkeys/royalkeys/router"
	"github.com/royalkeys/royalkeys/session"
	"github.com/royalkeys/royalkeys/storage"
	bboltstorage "github.com/royalkeys/royalkeys/storage/bbolt"
	memorystorage "github.com/royalkeys/royalkeys/storage/memory"
	postgresstorage "github.com/royalkeys/royalkeys/storage/postgres"
	"github.com/royalkeys/royalkeys/web"
)

var (
	port              int
	dataDir           string
	storageBackend    string
	postgresDSN       string
	assistantEndpoint string
	assistantModel    string
	adminEmail        string
	adminPasswordHash string
	tlsCert           string
	tlsKey            string
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the storefront server",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

		var repo storage.Repository
		switch storageBackend {
		case "memory":
			repo = memorystorage.NewRepository()
		case "bbolt":
			if err := os.MkdirAll(dataDir, 0o700); err != nil {
				return fmt.Errorf("failed to create data directory: %w", err)
			}
			store, err := bboltstorage.NewRepositoryFromFile(dataDir+"/royalkeys.db", nil)
			if err != nil {
				return fmt.Errorf("failed to open session storage: %w", err)
			}
			defer store.Close()
			repo = store
		case "postgres":
			if postgresDSN == "" {
				return fmt.Errorf("--postgres-dsn is required with the postgres backend")
			}
			store, err := postgresstorage.NewRepositoryFromDSN(cmd.Context(), postgresDSN)
			if err != nil {
				return fmt.Errorf("failed to open session storage: %w", err)
			}
			defer store.Close()
			repo = store
		default:
			return fmt.Errorf("unknown storage backend %q", storageBackend)
		}

		cat := catalog.Default()
		sessions := session.NewManager(repo, session.WithLogger(logger))
		nav := router.New(cat, sessions)

		opts := []api.Option{api.WithLogger(logger)}

		if key := os.Getenv("ASSISTANT_API_KEY"); key != "" {
			opts = append(opts, api.WithAssistant(assistant.NewClient(assistant.Config{
				Endpoint: assistantEndpoint,
				Model:    assistantModel,
				APIKey:   key,
			})))
		}

		switch {
		case os.Getenv("SUPABASE_URL") != "":
			svc, err := backoffice.NewSupabaseClient(backoffice.SupabaseConfig{
				URL:        os.Getenv("SUPABASE_URL"),
				AnonKey:    os.Getenv("SUPABASE_ANON_KEY"),
				ServiceKey: os.Getenv("SUPABASE_SERVICE_KEY"),
			})
			if err != nil {
				return fmt.Errorf("configuring supabase back-office: %w", err)
			}
			opts = append(opts, api.WithBackoffice(svc))
		case adminEmail != "" && adminPasswordHash != "":
			svc, err := backoffice.NewLocalService(repo,
				map[string]string{adminEmail: adminPasswordHash}, cat)
			if err != nil {
				return fmt.Errorf("configuring local back-office: %w", err)
			}
			opts = append(opts, api.WithBackoffice(svc))
		default:
			logger.Warn("no back-office configured; admin endpoints disabled")
		}

		a := api.New(nav, cat, sessions, opts...)

		r := chi.NewRouter()
		r.Use(middleware.Logger)
		r.Use(middleware.Recoverer)
		r.Use(api.SecurityHeaders)

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("OK"))
		})

		r.Mount("/api/v1", a.Router())

		webHandler, err := web.Handler()
		if err != nil {
			return err
		}
		r.Handle("/*", webHandler)

		var tlsConfig *tls.Config
		if tlsCert != "" && tlsKey != "" {
			cert, err := tls.LoadX509KeyPair(tlsCert, tlsKey)
			if err != nil {
				return fmt.Errorf("failed to load TLS key pair: %w", err)
			}
			tlsConfig = &tls.Config{
				Certificates: []tls.Certificate{cert},
				MinVersion:   tls.VersionTLS12,
			}
		} else {
			cert, err := util.GenerateSelfSignedCert()
			if err != nil {
				return fmt.Errorf("failed to generate self-signed certificate: %w", err)
			}
			tlsConfig = &tls.Config{
				Certificates: []tls.Certificate{cert},
				MinVersion:   tls.VersionTLS12,
			}
			fmt.Println("Using self-signed runtime generated certificate for TLS")
		}

		server := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			TLSConfig:         tlsConfig,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		// Graceful shutdown on SIGINT/SIGTERM.
		done := make(chan error, 1)
		go func() {
			if err := server.ListenAndServeTLS("", ""); err != nil && !errors.Is(err, http.ErrServerClosed) {
				done <- fmt.Errorf("server failed: %w", err)
				return
			}
			done <- nil
		}()

		printBanner()
		fmt.Printf("Starting server on port %d (storage: %s)...\n", port, storageBackend)

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			fmt.Printf("\nReceived %s, shutting down...\n", sig)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("server shutdown failed: %w", err)
			}
			return nil
		case err := <-done:
			return err
		}
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().IntVarP(&port, "port", "p", 8443, "Port to listen on")
	serverCmd.Flags().StringVar(&dataDir, "data-dir", "./data", "Directory for persistent data")
	serverCmd.Flags().StringVar(&storageBackend, "storage", "bbolt", "Session storage backend: memory, bbolt, or postgres")
	serverCmd.Flags().StringVar(&postgresDSN, "postgres-dsn", "", "PostgreSQL DSN for the postgres backend")
	serverCmd.Flags().StringVar(&assistantEndpoint, "assistant-endpoint", "https://generativelanguage.googleapis.com", "Base URL of the generative-text service")
	serverCmd.Flags().StringVar(&assistantModel, "assistant-model", assistant.DefaultModel, "Generation model to request")
	serverCmd.Flags().StringVar(&adminEmail, "admin-email", "", "Local admin email (used when Supabase is not configured)")
	serverCmd.Flags().StringVar(&adminPasswordHash, "admin-password-hash", "", "Argon2id hash of the local admin password")
	serverCmd.Flags().StringVar(&tlsCert, "tls-cert", "", "Path to TLS certificate file")
	serverCmd.Flags().StringVar(&tlsKey, "tls-key", "", "Path to TLS key file")
}
