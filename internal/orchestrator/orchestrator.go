// Package orchestrator coordinates the token creation workflow.
// Flow: validate → upload asset → mint → persist record
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/domain"
	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/idhash"
	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/minting"
	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/observability"
	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/storage"
	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/upload"
)

// MaxDecimals is the largest decimals value the SPL mint account can
// represent for this wizard.
const MaxDecimals = 9

// Orchestrator runs the creation workflow in strict order. Each stage
// must succeed before the next starts; a mint failure persists nothing.
// Concurrent CreateToken calls are not serialized here, the caller
// disables re-submission while a creation is in flight.
type Orchestrator struct {
	uploader   upload.Uploader
	minter     minting.Minter
	tokenStore storage.TokenRecordStore
	eventStore storage.CreationEventStore
	metrics    *observability.Metrics
	logger     *logrus.Logger
}

// Options for creating Orchestrator.
type Options struct {
	// Required collaborators
	Uploader   upload.Uploader
	Minter     minting.Minter
	TokenStore storage.TokenRecordStore

	// Optional analytics sink; events are recorded best-effort
	EventStore storage.CreationEventStore

	// Optional
	Metrics *observability.Metrics
	Logger  *logrus.Logger
}

// New creates a new Orchestrator.
func New(opts Options) *Orchestrator {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Orchestrator{
		uploader:   opts.Uploader,
		minter:     opts.Minter,
		tokenStore: opts.TokenStore,
		eventStore: opts.EventStore,
		metrics:    opts.Metrics,
		logger:     logger,
	}
}

// CreateToken executes the full creation workflow for a submitted
// request. Phases:
//  1. Validate the request
//  2. Upload the image asset, when one is present
//  3. Mint through the minting service
//  4. Persist the token record (duplicate mint address is a no-op)
//
// The returned error is always one of the typed workflow errors:
// *ValidationError, *upload.Error, *minting.Error, *PersistenceError.
func (o *Orchestrator) CreateToken(ctx context.Context, req *domain.TokenCreationRequest) (*domain.StoredToken, error) {
	start := time.Now()

	if err := validateRequest(req); err != nil {
		o.recordEvent(ctx, req, "", domain.StageValidate, domain.OutcomeError, err.Error(), "", start)
		o.metrics.RecordCreation("validation_error", time.Since(start).Seconds())
		return nil, err
	}
	o.recordEvent(ctx, req, "", domain.StageValidate, domain.OutcomeOK, "", "", start)

	var asset *domain.AssetReference
	if req.HasImage() {
		uploadStart := time.Now()
		ref, err := o.uploader.Upload(ctx, req.ImageData, req.ImageName)
		if err != nil {
			o.logger.WithError(err).WithField("name", req.Name).Error("asset upload failed")
			o.recordEvent(ctx, req, "", domain.StageUpload, domain.OutcomeError, err.Error(), "", uploadStart)
			o.metrics.RecordCreation("upload_error", time.Since(start).Seconds())
			var upErr *upload.Error
			if errors.As(err, &upErr) {
				o.metrics.RecordUploadFailure(string(upErr.Stage))
			}
			return nil, err
		}
		asset = ref
		o.metrics.RecordUpload(asset.Origin.String(), time.Since(uploadStart).Seconds())
		o.recordEvent(ctx, req, "", domain.StageUpload, domain.OutcomeOK, asset.URI, asset.Origin.String(), uploadStart)
	}

	mintReq := minting.MintRequest{
		Name:     req.Name,
		Symbol:   req.Symbol,
		Decimals: req.Decimals,
		Supply:   req.Supply,
		Flags:    req.Flags,
	}
	if asset != nil {
		mintReq.ImageURI = asset.URI
	}

	mintStart := time.Now()
	result, err := o.minter.Mint(ctx, mintReq)
	o.metrics.RecordMint(err)
	if err != nil {
		o.logger.WithError(err).WithField("name", req.Name).Error("mint failed")
		o.recordEvent(ctx, req, "", domain.StageMint, domain.OutcomeError, err.Error(), "", mintStart)
		o.metrics.RecordCreation("mint_error", time.Since(start).Seconds())
		var mintErr *minting.Error
		if errors.As(err, &mintErr) {
			return nil, err
		}
		return nil, &minting.Error{Reason: "mint", Err: err}
	}
	o.recordEvent(ctx, req, result.MintAddress, domain.StageMint, domain.OutcomeOK, result.Signature, "", mintStart)

	token, err := o.persist(ctx, req, asset, result.MintAddress)
	if err != nil {
		o.recordEvent(ctx, req, result.MintAddress, domain.StagePersist, domain.OutcomeError, err.Error(), "", start)
		o.metrics.RecordCreation("persist_error", time.Since(start).Seconds())
		return nil, err
	}
	o.recordEvent(ctx, req, result.MintAddress, domain.StagePersist, domain.OutcomeOK, "", "", start)

	origin := ""
	if asset != nil {
		origin = asset.Origin.String()
	}
	o.recordEvent(ctx, req, result.MintAddress, domain.StageComplete, domain.OutcomeOK, "", origin, start)
	o.metrics.RecordCreation("ok", time.Since(start).Seconds())

	o.logger.WithFields(logrus.Fields{
		"name":         req.Name,
		"symbol":       req.Symbol,
		"mint_address": result.MintAddress,
	}).Info("token created")

	return token, nil
}

// persist builds the stored record and saves it. A record already
// present for the mint address is returned as-is.
func (o *Orchestrator) persist(ctx context.Context, req *domain.TokenCreationRequest, asset *domain.AssetReference, mintAddress string) (*domain.StoredToken, error) {
	existing, err := o.tokenStore.GetByMintAddress(ctx, mintAddress)
	if err == nil {
		o.metrics.RecordSave(true)
		return existing, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, &PersistenceError{Err: err}
	}

	createdAt := time.Now().UnixMilli()
	token := &domain.StoredToken{
		ID:          idhash.ComputeTokenRecordID(mintAddress, req.Name, req.Symbol, createdAt),
		Name:        req.Name,
		Symbol:      req.Symbol,
		MintAddress: mintAddress,
		CreatedAt:   createdAt,
		Supply:      req.Supply,
		Decimals:    fmt.Sprintf("%d", req.Decimals),
	}
	if asset != nil {
		token.ImageURI = asset.URI
	}

	if err := o.tokenStore.Save(ctx, token); err != nil {
		return nil, &PersistenceError{Err: err}
	}
	o.metrics.RecordSave(false)
	return token, nil
}

// validateRequest checks the request before any side effect is
// attempted.
func validateRequest(req *domain.TokenCreationRequest) error {
	if req == nil {
		return &ValidationError{Field: "request", Reason: "missing"}
	}
	if req.Name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if req.Symbol == "" {
		return &ValidationError{Field: "symbol", Reason: "must not be empty"}
	}
	if req.Decimals < 0 || req.Decimals > MaxDecimals {
		return &ValidationError{Field: "decimals", Reason: fmt.Sprintf("must be between 0 and %d", MaxDecimals)}
	}
	if !validSupply(req.Supply) {
		return &ValidationError{Field: "supply", Reason: "must be a non-negative decimal number"}
	}
	return nil
}

// validSupply accepts non-negative decimal strings: digits with at most
// one fractional part, both sides non-empty when a point is present.
func validSupply(s string) bool {
	if s == "" {
		return false
	}
	intPart, fracPart, hasPoint := strings.Cut(s, ".")
	if intPart == "" || (hasPoint && fracPart == "") {
		return false
	}
	for _, r := range intPart {
		if r < '0' || r > '9' {
			return false
		}
	}
	for _, r := range fracPart {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// recordEvent writes a creation event to the analytics sink when one is
// configured. Failures are logged and never affect the workflow result.
func (o *Orchestrator) recordEvent(ctx context.Context, req *domain.TokenCreationRequest, mintAddress, stage, outcome, detail, origin string, stageStart time.Time) {
	if o.eventStore == nil {
		return
	}

	now := time.Now()
	name, symbol := "", ""
	if req != nil {
		name, symbol = req.Name, req.Symbol
	}

	event := &domain.CreationEvent{
		EventID:     idhash.ComputeEventID(mintAddress, stage, outcome, now.UnixNano()),
		MintAddress: mintAddress,
		Name:        name,
		Symbol:      symbol,
		Stage:       stage,
		Outcome:     outcome,
		Detail:      detail,
		AssetOrigin: origin,
		DurationMs:  now.Sub(stageStart).Milliseconds(),
		CreatedAt:   now.UnixMilli(),
	}

	if err := o.eventStore.Insert(ctx, event); err != nil {
		o.logger.WithError(err).WithField("stage", stage).Warn("creation event not recorded")
	}
}
