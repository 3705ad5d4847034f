// Package routing gates navigation between the storefront's pages based
// on credential presence and role, before any page is served.
package routing

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/storefront-gateway/internal/domain"
	"github.com/spec-kit/storefront-gateway/internal/observability"
	"github.com/spec-kit/storefront-gateway/internal/session"
)

// Tables lists the page sets the guard evaluates against.
type Tables struct {
	Public       []string
	EmployeeOnly []string
	ClientOnly   []string
}

// Targets names the redirect destinations for each denial.
type Targets struct {
	Landing     string
	StaffLogin  string
	ClientLogin string
}

// Decision is the guard's verdict for one navigation attempt.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

// Guard evaluates one navigation attempt at a time. The staff track is
// read from the in-memory session; the client track is read straight
// from durable storage on every attempt, as the storefront always did.
type Guard struct {
	public       map[string]struct{}
	employeeOnly map[string]struct{}
	clientOnly   map[string]struct{}
	targets      Targets

	session *session.Store
	client  *session.ClientTrack
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewGuard builds a navigation guard.
func NewGuard(tables Tables, targets Targets, sess *session.Store, client *session.ClientTrack, logger *zap.Logger, metrics *observability.Metrics) *Guard {
	if logger == nil {
		logger = zap.NewNop()
	}
	if targets.Landing == "" {
		targets.Landing = "/"
	}
	if targets.StaffLogin == "" {
		targets.StaffLogin = "/login"
	}
	if targets.ClientLogin == "" {
		targets.ClientLogin = "/login-cliente"
	}
	return &Guard{
		public:       toSet(tables.Public),
		employeeOnly: toSet(tables.EmployeeOnly),
		clientOnly:   toSet(tables.ClientOnly),
		targets:      targets,
		session:      sess,
		client:       client,
		logger:       logger,
		metrics:      metrics,
	}
}

// Decide evaluates the guard rules in priority order; the first match
// wins.
//
// The role check runs before any credential-presence check: a client
// principal can never reach a staff-only page, however many tokens are
// lying around. The presence checks that follow are each scoped to
// their own track.
func (g *Guard) Decide(ctx context.Context, path string) Decision {
	clientToken := g.client.Token(ctx)
	roleMarker := g.client.Role(ctx)

	if g.contains(g.employeeOnly, path) && roleMarker == domain.RoleCliente {
		return g.redirect(path, g.targets.Landing, "client role on staff page")
	}

	if g.contains(g.clientOnly, path) && clientToken == "" {
		return g.redirect(path, g.targets.ClientLogin, "client page without client token")
	}

	if !g.contains(g.public, path) && g.session.Token() == "" && clientToken == "" {
		g.session.SetReturnURL(path)
		return g.redirect(path, g.targets.StaffLogin, "restricted page without credentials")
	}

	g.metrics.RecordGuardDecision("allow")
	return Decision{Allowed: true}
}

func (g *Guard) redirect(path, target, reason string) Decision {
	g.metrics.RecordGuardDecision(target)
	g.logger.Debug("navigation redirected",
		zap.String("path", path),
		zap.String("target", target),
		zap.String("reason", reason),
	)
	return Decision{RedirectTo: target}
}

func (g *Guard) contains(set map[string]struct{}, path string) bool {
	_, ok := set[path]
	return ok
}

func toSet(paths []string) map[string]struct{} {
	set := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		set[p] = struct{}{}
	}
	return set
}
