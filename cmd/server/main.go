// Package main runs the token creation service: HTTP API, asset upload
// with remote-pin + local fallback, minting client and the durable
// token record store.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/api"
	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/minting"
	mintstub "github.com/KORR-AI/MaytaToken-v2-sub001/internal/minting/stub"
	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/observability"
	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/orchestrator"
	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/storage"
	chstore "github.com/KORR-AI/MaytaToken-v2-sub001/internal/storage/clickhouse"
	filestore "github.com/KORR-AI/MaytaToken-v2-sub001/internal/storage/file"
	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/storage/memory"
	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/storage/migrations"
	pgstore "github.com/KORR-AI/MaytaToken-v2-sub001/internal/storage/postgres"
	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/upload"
	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/walletconn"
)

func main() {
	// Load .env file if exists
	loadEnvFile()

	// Parse flags (env vars as defaults)
	listenAddr := flag.String("listen-addr", envOr("LISTEN_ADDR", ":8080"), "HTTP listen address")
	storeBackend := flag.String("store", envOr("STORE_BACKEND", "memory"), "Token record store backend: memory | file | postgres")
	dataDir := flag.String("data-dir", envOr("DATA_DIR", "data"), "Directory for the file store and local asset fallback")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string (store=postgres)")
	clickhouseDSN := flag.String("clickhouse-dsn", os.Getenv("CLICKHOUSE_DSN"), "ClickHouse connection string for the creation event sink (optional)")
	mintEndpoint := flag.String("mint-endpoint", os.Getenv("MINT_ENDPOINT"), "Minting service HTTP endpoint")
	wsConfirmEndpoint := flag.String("ws-confirm-endpoint", os.Getenv("WS_CONFIRM_ENDPOINT"), "WebSocket RPC endpoint for signature confirmation (optional)")
	pinataKey := flag.String("pinata-api-key", os.Getenv("PINATA_API_KEY"), "Pinata API key")
	pinataSecret := flag.String("pinata-api-secret", os.Getenv("PINATA_SECRET_API_KEY"), "Pinata API secret")
	gatewayURL := flag.String("gateway-url", envOr("IPFS_GATEWAY_URL", upload.DefaultGatewayURL), "IPFS gateway for pinned asset URIs")
	appURL := flag.String("app-url", os.Getenv("APP_URL"), "Public URL of the wizard, used in wallet connect links")
	stubMint := flag.Bool("stub-minter", false, "Use the deterministic stub minter instead of a minting service")
	logLevel := flag.String("log-level", envOr("LOG_LEVEL", "info"), "Log level: debug | info | warn | error")

	flag.Parse()

	// Setup logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if level, err := logrus.ParseLevel(*logLevel); err == nil {
		logger.SetLevel(level)
	}

	if *mintEndpoint == "" && !*stubMint {
		logger.Fatal("--mint-endpoint is required (or --stub-minter for local development)")
	}
	if *storeBackend == "postgres" && *postgresDSN == "" {
		logger.Fatal("--postgres-dsn is required with --store=postgres")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Token record store
	tokenStore, cleanup, err := createTokenStore(ctx, *storeBackend, *dataDir, *postgresDSN)
	if err != nil {
		logger.Fatalf("Failed to create token store: %v", err)
	}
	defer cleanup()
	logger.WithField("backend", *storeBackend).Info("token record store ready")

	// Optional creation event sink
	var eventStore storage.CreationEventStore
	if *clickhouseDSN != "" {
		chConn, err := chstore.NewConn(ctx, *clickhouseDSN)
		if err != nil {
			logger.Fatalf("Failed to connect to clickhouse: %v", err)
		}
		defer chConn.Close()
		if err := migrations.RunClickhouseMigrations(ctx, chConn); err != nil {
			logger.Fatalf("Failed to run clickhouse migrations: %v", err)
		}
		eventStore = chstore.NewCreationEventStore(chConn)
		logger.Info("creation event sink enabled")
	}

	// Upload chain: Pinata primary, local disk fallback
	uploadsDir := *dataDir + "/uploads"
	pinata := upload.NewPinataClient(*pinataKey, *pinataSecret, upload.WithGatewayURL(*gatewayURL))
	local := upload.NewLocalStore(uploadsDir, "/uploads")
	uploader := upload.NewFallbackUploader(logger, pinata, local)

	// Minter
	var minter minting.Minter
	if *stubMint {
		minter = mintstub.NewMinter()
		logger.Warn("using stub minter, no tokens will reach the chain")
	} else {
		minter = minting.NewHTTPMinter(*mintEndpoint)
	}
	if *wsConfirmEndpoint != "" {
		minter = minting.NewConfirmingMinter(minter, minting.NewWSConfirmer(*wsConfirmEndpoint))
		logger.Info("signature confirmation enabled")
	}

	metrics := observability.NewMetrics("")

	orch := orchestrator.New(orchestrator.Options{
		Uploader:   uploader,
		Minter:     minter,
		TokenStore: tokenStore,
		EventStore: eventStore,
		Metrics:    metrics,
		Logger:     logger,
	})

	connector := walletconn.NewSelector(walletconn.Options{
		Handshaker:  clientHandshaker{},
		Navigator:   logNavigator{logger: logger},
		QRPresenter: logPresenter{logger: logger},
		Metrics:     metrics,
		Logger:      logger,
	})

	server := api.NewServer(api.Options{
		Orchestrator: orch,
		TokenStore:   tokenStore,
		Connector:    connector,
		Prober:       pinata,
		UploadsDir:   uploadsDir,
		AppURL:       *appURL,
		Logger:       logger,
	})

	httpServer := &http.Server{
		Addr:              *listenAddr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Infof("Received signal %v, initiating graceful shutdown...", sig)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		go func() {
			sig := <-sigCh
			logger.Errorf("Received second signal %v, forcing immediate shutdown", sig)
			os.Exit(1)
		}()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("Shutdown error: %v", err)
		}
		cancel()
	}()

	logger.WithField("addr", *listenAddr).Info("starting HTTP server")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("HTTP server error: %v", err)
	}

	logger.Info("Shutdown complete")
}

// createTokenStore builds the configured token record store and returns
// its cleanup function.
func createTokenStore(ctx context.Context, backend, dataDir, postgresDSN string) (storage.TokenRecordStore, func(), error) {
	switch backend {
	case "memory":
		return memory.NewTokenRecordStore(), func() {}, nil

	case "file":
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create data dir: %w", err)
		}
		return filestore.NewTokenRecordStore(dataDir), func() {}, nil

	case "postgres":
		pool, err := pgstore.NewPool(ctx, postgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to postgres: %w", err)
		}
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("run postgres migrations: %w", err)
		}
		return pgstore.NewTokenRecordStore(pool), pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", backend)
	}
}

// clientHandshaker acknowledges in-page handshakes; the actual wallet
// exchange happens in the client once the strategy decision is returned.
type clientHandshaker struct{}

func (clientHandshaker) Handshake(_ context.Context) error { return nil }

// logNavigator records link hand-offs; the client performs the real
// navigation with the same URL.
type logNavigator struct{ logger *logrus.Logger }

func (n logNavigator) Navigate(url string) error {
	n.logger.WithField("url", url).Info("connection handoff")
	return nil
}

// logPresenter records QR payloads for cross-device approval.
type logPresenter struct{ logger *logrus.Logger }

func (p logPresenter) Present(payload string) error {
	p.logger.WithField("payload", payload).Info("qr handoff")
	return nil
}

// envOr returns the environment value for key, or fallback when unset.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// loadEnvFile loads environment variables from .env file if it exists.
func loadEnvFile() {
	data, err := os.ReadFile(".env")
	if err != nil {
		return // File doesn't exist, use system env vars
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Don't override existing env vars
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}
