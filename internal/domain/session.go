package domain

// Role markers stored alongside credentials. The storefront serves two
// principal kinds that may be signed in from the same browser profile.
const (
	RoleEmpleado = "empleado"
	RoleCliente  = "cliente"
)

// Session is the in-memory staff-track authentication state. User holds
// whatever principal payload the login endpoint returned: a plain string
// or a decoded JSON object.
type Session struct {
	User      any
	Token     string
	Role      string
	ReturnURL string
}

// Authenticated reports whether the session carries a bearer token.
func (s Session) Authenticated() bool {
	return s.Token != ""
}
