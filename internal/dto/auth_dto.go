package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// RegisterRequest carries a new account. Field-level format rules (email
// shape, CI digits, phone pattern) are enforced in the service so the error
// messages match the documented API.
type RegisterRequest struct {
	Nombre   string  `json:"nombre"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	CI       string  `json:"ci"`
	Rol      string  `json:"rol"`
	Telefono *string `json:"telefono"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required"`
}

type ResetPasswordRequest struct {
	NuevaPassword string `json:"nueva_password" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// UsuarioResponse is the sanitized profile — never includes the hash.
type UsuarioResponse struct {
	ID       uint    `json:"id"`
	Nombre   string  `json:"nombre"`
	CI       string  `json:"ci"`
	Email    string  `json:"email"`
	Telefono *string `json:"telefono,omitempty"`
	Rol      string  `json:"rol"`
	Estado   string  `json:"estado"`
}

type LoginResponse struct {
	Usuario UsuarioResponse `json:"usuario"`
	Token   string          `json:"token"`
}

// RegisterResponse omits the token when the account is pending approval.
type RegisterResponse struct {
	Usuario UsuarioResponse `json:"usuario"`
	Token   string          `json:"token,omitempty"`
}
