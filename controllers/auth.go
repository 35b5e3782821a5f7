package controllers

import (
	"net/http"
	"time"

	dbpkg "frutaria/db"
	"frutaria/models"
	"frutaria/tools"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// LoginForm responde o estado inicial do formulário (GET /login).
func LoginForm(c *gin.Context) {
	RespondSuccess(c, gin.H{"l": 0})
}

// Login autentica por e-mail + senha. Usuário inexistente e senha errada
// caem no mesmo erro genérico de propósito (não vaza se a conta existe).
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		RespondError(c, "usuário ou senha inválidos", http.StatusUnauthorized)
		return
	}

	env := EnvInstance(c)
	db := dbpkg.DBInstance(c)
	if env == nil || db == nil {
		RespondError(c, "env não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var user models.User
	if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		RespondError(c, "usuário ou senha inválidos", http.StatusUnauthorized)
		return
	}
	if !tools.VerifyPassword(user.Password, req.Password) {
		RespondError(c, "usuário ou senha inválidos", http.StatusUnauthorized)
		return
	}

	maxValid := time.Duration(env.Cfg.Security.SessionMaxValidHours) * time.Hour
	signed, err := signSessionToken(env.Cfg.Security.SecretKey, user, maxValid)
	if err != nil {
		RespondError(c, "erro ao assinar token", http.StatusInternalServerError)
		return
	}

	setSessionCookie(c, signed, int(maxValid.Seconds()))
	user.Password = ""
	RespondSuccess(c, LoginResponse{Token: signed, User: user})
}

// Logout encerra a sessão (GET /logout, exige sessão ativa).
func Logout(c *gin.Context) {
	if _, ok := GetUserLogged(c); !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	clearSessionCookie(c)
	RespondSuccess(c, true)
}
