package dto

// ActualizarUsuarioRequest is the admin-side partial update. Empty/nil
// fields are left unchanged; a non-empty Password is re-hashed.
type ActualizarUsuarioRequest struct {
	Nombre   string  `json:"nombre"`
	Email    string  `json:"email" validate:"omitempty,email"`
	Telefono *string `json:"telefono"`
	Rol      string  `json:"rol" validate:"omitempty,oneof=ganadero tecnico admin"`
	Password string  `json:"password" validate:"omitempty,min=6"`
}
