// Package httpclient decorates outbound requests to the storefront
// backend with the winning credential, the Go counterpart of the
// request interceptor the storefront registered on its HTTP client.
package httpclient

import (
	"context"
	"net/http"
	"time"

	"github.com/spec-kit/storefront-gateway/internal/observability"
	"github.com/spec-kit/storefront-gateway/internal/session"
)

const (
	headerAuthorization = "Authorization"
	headerContentType   = "Content-Type"
	contentTypeJSON     = "application/json"
)

// Selector chooses which credential track backs the Authorization
// header. The staff session wins when both tracks hold a token: an
// operator must not be downgraded by a client token lingering from an
// earlier storefront visit.
type Selector struct {
	session *session.Store
	client  *session.ClientTrack
	metrics *observability.Metrics
}

// NewSelector builds a credential selector.
func NewSelector(sess *session.Store, client *session.ClientTrack, metrics *observability.Metrics) *Selector {
	return &Selector{session: sess, client: client, metrics: metrics}
}

// Apply mutates the headers of an outbound request: sets the bearer
// from the winning track, or removes the Authorization header entirely
// when neither track holds a token. The JSON content type is forced
// regardless of the credential outcome.
func (s *Selector) Apply(ctx context.Context, header http.Header) {
	header.Set(headerContentType, contentTypeJSON)

	bearer := s.session.Token()
	track := "staff"
	if bearer == "" {
		bearer = s.client.Token(ctx)
		track = "client"
	}

	if bearer == "" {
		header.Del(headerAuthorization)
		s.metrics.RecordCredentialSelection("none")
		return
	}

	header.Set(headerAuthorization, "Bearer "+bearer)
	s.metrics.RecordCredentialSelection(track)
}

// Transport applies the selector before delegating to the base
// round tripper. The request is cloned first, per the RoundTripper
// contract.
type Transport struct {
	selector *Selector
	base     http.RoundTripper
}

// NewTransport wraps base with credential selection. A nil base falls
// back to http.DefaultTransport.
func NewTransport(selector *Selector, base http.RoundTripper) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{selector: selector, base: base}
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	t.selector.Apply(clone.Context(), clone.Header)
	return t.base.RoundTrip(clone)
}

// NewClient returns an http.Client whose requests pass through the
// selector.
func NewClient(selector *Selector, timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: NewTransport(selector, nil),
		Timeout:   timeout,
	}
}
