package dto

// LoginRequest payload for staff login.
type LoginRequest struct {
	Usuario string `json:"usuario"`
	Clave   string `json:"clave"`
}

// LoginUpstreamResponse is the shape returned by the backend login
// endpoint. Only these two fields are consumed.
type LoginUpstreamResponse struct {
	Usuario     any    `json:"usuario"`
	AccessToken string `json:"access_token"`
}

// LoginResponse returned to the storefront after a successful login.
type LoginResponse struct {
	Usuario  any    `json:"usuario"`
	Rol      string `json:"rol"`
	Redirect string `json:"redirect"`
}

// SessionResponse describes the current session for the UI.
type SessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	Usuario       any    `json:"usuario,omitempty"`
	Rol           string `json:"rol,omitempty"`
	ReturnURL     string `json:"return_url,omitempty"`
}

// LogoutResponse returned after a logout.
type LogoutResponse struct {
	Redirect string `json:"redirect"`
}
