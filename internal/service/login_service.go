package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/spec-kit/storefront-gateway/internal/api/dto"
	"github.com/spec-kit/storefront-gateway/internal/domain"
	"github.com/spec-kit/storefront-gateway/internal/session"
	apperrors "github.com/spec-kit/storefront-gateway/pkg/util"
)

// LoginService runs the staff login flow: forward credentials to the
// backend, feed the returned principal and token into the session
// store. A failed network call leaves the session untouched.
type LoginService struct {
	baseURL string
	client  *http.Client
	session *session.Store
	logger  *zap.Logger
}

// NewLoginService builds the service. The client is expected to carry
// the credential-selecting transport.
func NewLoginService(baseURL string, client *http.Client, sess *session.Store, logger *zap.Logger) *LoginService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &LoginService{baseURL: baseURL, client: client, session: sess, logger: logger}
}

// Login authenticates a staff member against the backend and returns
// the navigation target for the caller to act on.
func (s *LoginService) Login(ctx context.Context, usuario, clave string) (dto.LoginResponse, error) {
	body, err := json.Marshal(dto.LoginRequest{Usuario: usuario, Clave: clave})
	if err != nil {
		return dto.LoginResponse{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return dto.LoginResponse{}, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("login request failed", zap.Error(err))
		return dto.LoginResponse{}, apperrors.NewUpstreamError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return dto.LoginResponse{}, apperrors.NewUnauthorized("invalid credentials")
	}

	var upstream dto.LoginUpstreamResponse
	if err := json.NewDecoder(resp.Body).Decode(&upstream); err != nil {
		return dto.LoginResponse{}, apperrors.NewUpstreamError(fmt.Errorf("decode login response: %w", err))
	}
	if upstream.AccessToken == "" {
		return dto.LoginResponse{}, apperrors.NewUpstreamError(fmt.Errorf("login response missing access_token"))
	}

	target, err := s.session.Login(ctx, upstream.Usuario, upstream.AccessToken, domain.RoleEmpleado)
	if err != nil {
		return dto.LoginResponse{}, err
	}

	return dto.LoginResponse{
		Usuario:  upstream.Usuario,
		Rol:      domain.RoleEmpleado,
		Redirect: target,
	}, nil
}
