package models

import (
	"frutaria/tools"
	"time"
)

// User representa um usuario no sistema.
// Password guarda o digest completo no formato pbkdf2:sha256:260000$salt$hex
// (nunca a senha em texto puro). ResetToken é só uma cópia informativa do
// último token de recuperação emitido: a validação é feita pela assinatura
// do próprio token, nunca por esse campo.
type User struct {
	ID         int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Name       string     `gorm:"not null" json:"name" form:"name"`
	Email      string     `gorm:"not null;unique" json:"email" form:"email"`
	Password   string     `gorm:"not null" json:"password,omitempty" form:"password"`
	ResetToken string     `gorm:"column:reset_token;default:''" json:"-"`
	CreatedAt  *time.Time `json:"created_at" form:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at" form:"updated_at"`
}

func (user User) MissingFields() string {
	if user.Name == "" {
		return "name"
	} else if user.Email == "" {
		return "email"
	} else if user.Password == "" {
		return "password"
	}
	return ""
}

// ShortPassword aplica a regra mínima de tamanho (8 caracteres).
func (user User) ShortPassword() bool {
	return tools.CheckPassword(user.Password) != ""
}
