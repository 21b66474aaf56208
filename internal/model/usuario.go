package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Roles del sistema.
const (
	RolGanadero = "ganadero"
	RolTecnico  = "tecnico"
	RolAdmin    = "admin"
)

// Estados de cuenta. Los tecnicos se registran en "pendiente" y requieren
// aprobación de un admin antes de poder iniciar sesión.
const (
	EstadoCuentaActivo    = "activo"
	EstadoCuentaPendiente = "pendiente"
)

// Usuario stores system users with role-based access.
// Rol: "ganadero" | "tecnico" | "admin"
type Usuario struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Nombre string `gorm:"not null" json:"nombre"`
	// CI is the national identity number: exactly 10 numeric digits.
	CI           string    `gorm:"column:ci;uniqueIndex;not null" json:"ci"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Telefono     *string   `json:"telefono,omitempty"`
	Rol          string    `gorm:"type:varchar(20);not null" json:"rol"`
	Estado       string    `gorm:"type:varchar(20);not null;default:'activo'" json:"estado"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Usuario) TableName() string { return "usuarios" }

// SetPassword hashes plain and stores the result. It is the only way a
// password enters the model — there is no save hook that re-hashes behind
// the caller's back.
func (u *Usuario) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), 12)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether plain matches the stored hash.
func (u *Usuario) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}
