package controllers

import (
	"log"
	"net/http"
	"strings"
	"time"

	dbpkg "frutaria/db"
	"frutaria/models"
	"frutaria/tools"

	"github.com/gin-gonic/gin"
)

// GET /forgot (public)
func ForgotForm(c *gin.Context) {
	RespondSuccess(c, gin.H{"sent": false})
}

// POST /forgot (public)
// Body: { "email": "..." }
// Retorna sempre true (anti enumeração): existindo a conta ou não, a
// resposta é a mesma, e falha de SMTP só vai pro log.
func ForgotPassword(c *gin.Context) {
	type Request struct {
		Email string `json:"email" form:"email"`
	}

	var req Request
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Email) == "" {
		RespondSuccess(c, true)
		return
	}

	env := EnvInstance(c)
	db := dbpkg.DBInstance(c)
	if env == nil || db == nil {
		RespondSuccess(c, true)
		return
	}

	var user models.User
	if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		RespondSuccess(c, true)
		return
	}

	maxValid := time.Duration(env.Cfg.Security.ResetTokenMaxValid) * time.Second
	token, err := signResetToken(env.Cfg.Security.SecretKey, user.Email, maxValid)
	if err != nil {
		log.Printf("forgot password: sign token failed user_id=%d err=%v", user.ID, err)
		RespondSuccess(c, true)
		return
	}

	// cópia informativa no registro (auditoria); a validação nunca lê isso
	if err := db.Model(&user).Update("reset_token", token).Error; err != nil {
		log.Printf("forgot password: save advisory token failed user_id=%d err=%v", user.ID, err)
	}

	if env.Mailer != nil {
		if err := env.Mailer.SendPasswordReset(user.Email, token); err != nil {
			log.Printf("forgot password: mail send failed user_id=%d err=%v", user.ID, err)
		}
	}

	RespondSuccess(c, true)
}

// GET /reset/:token (public)
// Só informa se o token ainda vale; não consome nada.
func ResetForm(c *gin.Context) {
	env := EnvInstance(c)
	if env == nil {
		RespondError(c, "env não configurado no contexto", http.StatusInternalServerError)
		return
	}
	_, ok := parseResetToken(env.Cfg.Security.SecretKey, c.Param("token"))
	RespondSuccess(c, gin.H{"valid": ok})
}

// POST /reset/:token (public)
// Body: { "password": "...", "confirm": "..." }
// Valida assinatura + validade do token (stateless), confere a
// confirmação, troca a senha e limpa a cópia informativa.
func ResetPassword(c *gin.Context) {
	type Request struct {
		Password string `json:"password" form:"password"`
		Confirm  string `json:"confirm" form:"confirm"`
	}

	env := EnvInstance(c)
	db := dbpkg.DBInstance(c)
	if env == nil || db == nil {
		RespondError(c, "env não configurado no contexto", http.StatusInternalServerError)
		return
	}

	email, ok := parseResetToken(env.Cfg.Security.SecretKey, c.Param("token"))
	if !ok {
		RespondError(c, "token inválido ou expirado", http.StatusForbidden)
		return
	}

	var req Request
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Password != req.Confirm {
		RespondError(c, "as senhas não conferem", http.StatusBadRequest)
		return
	}
	if req.Password == "" || tools.CheckPassword(req.Password) != "" {
		RespondError(c, "senha muito curta (mínimo 8 caracteres)", http.StatusBadRequest)
		return
	}

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		RespondError(c, "token inválido ou expirado", http.StatusForbidden)
		return
	}

	passwordEncode := tools.HashPassword(req.Password)

	tx := db.Begin()
	if err := tx.Model(&user).Updates(map[string]any{
		"password":    passwordEncode,
		"reset_token": "",
	}).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, true)
}
