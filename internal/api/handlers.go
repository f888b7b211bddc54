package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/domain"
	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/minting"
	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/orchestrator"
	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/storage"
	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/upload"
	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/walletconn"
	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/walletenv"
)

// maxImageSize caps the in-memory multipart buffer for image intake.
const maxImageSize = 10 << 20 // 10 MiB

// tokenResponse is the wire form of a stored token.
type tokenResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	MintAddress string `json:"mintAddress"`
	ImageURI    string `json:"image,omitempty"`
	CreatedAt   int64  `json:"createdAt"`
	Supply      string `json:"supply"`
	Decimals    string `json:"decimals"`
}

func toTokenResponse(t *domain.StoredToken) tokenResponse {
	return tokenResponse{
		ID:          t.ID,
		Name:        t.Name,
		Symbol:      t.Symbol,
		MintAddress: t.MintAddress,
		ImageURI:    t.ImageURI,
		CreatedAt:   t.CreatedAt,
		Supply:      t.Supply,
		Decimals:    t.Decimals,
	}
}

// createTokenBody is the JSON form of a creation request, used when the
// request carries no image.
type createTokenBody struct {
	Name      string `json:"name"`
	Symbol    string `json:"symbol"`
	Decimals  int    `json:"decimals"`
	Supply    string `json:"supply"`
	Mintable  bool   `json:"mintable"`
	Freezable bool   `json:"freezable"`
	Updatable bool   `json:"updatable"`
}

// CreateTokenHandler runs the full creation workflow. Accepts multipart
// form data with an optional "image" file, or a plain JSON body.
func (s *Server) CreateTokenHandler(w http.ResponseWriter, r *http.Request) {
	req, err := parseCreateRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	token, err := s.orchestrator.CreateToken(r.Context(), req)
	if err != nil {
		s.writeWorkflowError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTokenResponse(token))
}

// parseCreateRequest reads a creation request from multipart form data
// or a JSON body.
func parseCreateRequest(r *http.Request) (*domain.TokenCreationRequest, error) {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		var body createTokenBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return nil, errors.New("malformed request body")
		}
		return &domain.TokenCreationRequest{
			Name:     body.Name,
			Symbol:   body.Symbol,
			Decimals: body.Decimals,
			Supply:   body.Supply,
			Flags: domain.AuthorityFlags{
				Mintable:  body.Mintable,
				Freezable: body.Freezable,
				Updatable: body.Updatable,
			},
		}, nil
	}

	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		return nil, errors.New("malformed multipart form")
	}

	decimals := 0
	if v := r.FormValue("decimals"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.New("decimals must be an integer")
		}
		decimals = n
	}

	req := &domain.TokenCreationRequest{
		Name:     r.FormValue("name"),
		Symbol:   r.FormValue("symbol"),
		Decimals: decimals,
		Supply:   r.FormValue("supply"),
		Flags: domain.AuthorityFlags{
			Mintable:  r.FormValue("mintable") == "true",
			Freezable: r.FormValue("freezable") == "true",
			Updatable: r.FormValue("updatable") == "true",
		},
	}

	file, header, err := r.FormFile("image")
	if err == nil {
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			return nil, errors.New("could not read image")
		}
		req.ImageData = data
		req.ImageName = header.Filename
	} else if !errors.Is(err, http.ErrMissingFile) {
		return nil, errors.New("malformed image field")
	}

	return req, nil
}

// ListTokensHandler returns all stored tokens, most recent first.
func (s *Server) ListTokensHandler(w http.ResponseWriter, r *http.Request) {
	tokens, err := s.tokenStore.GetAll(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("list tokens failed")
		writeError(w, http.StatusServiceUnavailable, "store unavailable")
		return
	}

	out := make([]tokenResponse, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, toTokenResponse(t))
	}
	writeJSON(w, http.StatusOK, out)
}

// GetTokenHandler returns one token by mint address.
func (s *Server) GetTokenHandler(w http.ResponseWriter, r *http.Request) {
	mint := mux.Vars(r)["mint"]
	if mint == "" {
		writeError(w, http.StatusBadRequest, "missing mint address")
		return
	}

	token, err := s.tokenStore.GetByMintAddress(r.Context(), mint)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "token not found")
			return
		}
		s.logger.WithError(err).Error("get token failed")
		writeError(w, http.StatusServiceUnavailable, "store unavailable")
		return
	}

	writeJSON(w, http.StatusOK, toTokenResponse(token))
}

// ClearTokensHandler removes every stored token record.
func (s *Server) ClearTokensHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.tokenStore.ClearAll(r.Context()); err != nil {
		s.logger.WithError(err).Error("clear tokens failed")
		writeError(w, http.StatusServiceUnavailable, "store unavailable")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// connectBody carries the browser context for environment
// classification plus the session parameters for link strategies.
type connectBody struct {
	UserAgent          string `json:"userAgent"`
	HasWalletExtension bool   `json:"hasWalletExtension"`
	IsWalletHost       bool   `json:"isWalletHost"`
	AppURL             string `json:"appUrl"`
	RedirectPath       string `json:"redirect"`
}

// connectResponse is the wire form of a connection attempt outcome.
type connectResponse struct {
	Environment string   `json:"environment"`
	Attempted   []string `json:"attempted"`
	Succeeded   *string  `json:"succeeded"`
}

// ConnectHandler classifies the caller's environment and walks the
// connection strategy chain for it.
func (s *Server) ConnectHandler(w http.ResponseWriter, r *http.Request) {
	if s.connector == nil {
		writeError(w, http.StatusServiceUnavailable, "wallet connection not configured")
		return
	}

	var body connectBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	ua := body.UserAgent
	if ua == "" {
		ua = r.UserAgent()
	}
	env := walletenv.Classify(walletenv.StaticProbe{
		UA:         ua,
		Extension:  body.HasWalletExtension,
		WalletHost: body.IsWalletHost,
	})

	sessionAppURL := body.AppURL
	if sessionAppURL == "" {
		sessionAppURL = s.appURL
	}
	result, err := s.connector.ConnectSession(r.Context(), env, walletconn.Session{
		AppURL:       sessionAppURL,
		RedirectPath: body.RedirectPath,
	})
	if err != nil {
		var connErr *walletconn.ConnectionError
		if errors.As(err, &connErr) {
			writeJSON(w, http.StatusBadGateway, map[string]interface{}{
				"error":       connErr.Error(),
				"environment": connErr.Environment.String(),
				"attempted":   connErr.Attempted,
			})
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, connectResponse{
		Environment: result.Environment.String(),
		Attempted:   result.Attempted,
		Succeeded:   result.Succeeded,
	})
}

// PinataTestHandler probes the configured pinning credentials.
func (s *Server) PinataTestHandler(w http.ResponseWriter, r *http.Request) {
	if s.prober == nil {
		writeError(w, http.StatusServiceUnavailable, "pinning not configured")
		return
	}

	if err := s.prober.TestAuthentication(r.Context()); err != nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{"authenticated": false, "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"authenticated": true})
}

// writeWorkflowError maps the typed creation workflow errors to status
// codes.
func (s *Server) writeWorkflowError(w http.ResponseWriter, err error) {
	var (
		vErr    *orchestrator.ValidationError
		upErr   *upload.Error
		mintErr *minting.Error
		pErr    *orchestrator.PersistenceError
	)

	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error": vErr.Error(),
			"field": vErr.Field,
		})
	case errors.As(err, &upErr):
		writeJSON(w, http.StatusBadGateway, map[string]interface{}{
			"error": upErr.Error(),
			"stage": string(upErr.Stage),
		})
	case errors.As(err, &mintErr):
		writeError(w, http.StatusBadGateway, mintErr.Error())
	case errors.As(err, &pErr):
		writeError(w, http.StatusServiceUnavailable, pErr.Error())
	default:
		s.logger.WithError(err).Error("creation failed")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
