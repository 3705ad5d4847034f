package handlers

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/storefront-gateway/pkg/util"
)

// ProxyHandler forwards /api requests to the storefront backend through
// the credential-selecting client. Whatever Authorization header the
// browser sent is irrelevant: the selector sets or strips the bearer on
// the way out.
type ProxyHandler struct {
	backendURL string
	client     *http.Client
	logger     *zap.Logger
}

// NewProxyHandler constructs handler.
func NewProxyHandler(backendURL string, client *http.Client, logger *zap.Logger) *ProxyHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProxyHandler{backendURL: backendURL, client: client, logger: logger}
}

// Forward handles ALL /api/*.
func (h *ProxyHandler) Forward(c *fiber.Ctx) error {
	target := h.backendURL + strings.TrimPrefix(c.Path(), "/api")
	if query := string(c.Request().URI().QueryString()); query != "" {
		target += "?" + query
	}

	req, err := http.NewRequestWithContext(c.UserContext(), c.Method(), target, bytes.NewReader(c.Body()))
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		h.logger.Warn("backend proxy failed", zap.String("target", target), zap.Error(err))
		return apperrors.NewUpstreamError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.NewUpstreamError(err)
	}

	if contentType := resp.Header.Get("Content-Type"); contentType != "" {
		c.Set("Content-Type", contentType)
	}
	return c.Status(resp.StatusCode).Send(body)
}
