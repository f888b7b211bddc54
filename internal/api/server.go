// Package api exposes the token creation workflow over HTTP. Handlers
// are a thin pass-through: they translate requests into orchestrator
// and store calls and map the typed workflow errors to status codes.
package api

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/domain"
	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/orchestrator"
	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/storage"
	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/walletconn"
)

// CredentialProber checks remote pinning credentials.
type CredentialProber interface {
	TestAuthentication(ctx context.Context) error
}

// Connector runs the wallet connection strategy chain.
type Connector interface {
	ConnectSession(ctx context.Context, env domain.Environment, sess walletconn.Session) (*domain.ConnectionStrategyResult, error)
}

// Server holds the handler dependencies.
type Server struct {
	orchestrator *orchestrator.Orchestrator
	tokenStore   storage.TokenRecordStore
	connector    Connector
	prober       CredentialProber
	uploadsDir   string
	appURL       string
	logger       *logrus.Logger
}

// Options for creating Server.
type Options struct {
	Orchestrator *orchestrator.Orchestrator
	TokenStore   storage.TokenRecordStore

	// Optional wallet connection chain; /api/connect answers 503 when nil
	Connector Connector

	// Optional pinning credential probe; /api/pinata/test answers 503 when nil
	Prober CredentialProber

	// Directory served under /uploads/ for locally stored assets; empty
	// disables static serving
	UploadsDir string

	// Fallback app URL for wallet connect links when the request does
	// not carry one
	AppURL string

	Logger *logrus.Logger
}

// NewServer creates a new Server.
func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Server{
		orchestrator: opts.Orchestrator,
		tokenStore:   opts.TokenStore,
		connector:    opts.Connector,
		prober:       opts.Prober,
		uploadsDir:   opts.UploadsDir,
		appURL:       opts.AppURL,
		logger:       logger,
	}
}
