package controllers

import (
	"net/http"
	"strings"
	"time"

	dbpkg "frutaria/db"
	"frutaria/models"
	"frutaria/tools"

	"github.com/gin-gonic/gin"
)

func CheckUserExists(c *gin.Context, email string) (bool, *models.User) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		return false, nil
	}

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return false, nil
	}
	return true, &user
}

// SignupForm responde o estado inicial do formulário (GET /signup).
func SignupForm(c *gin.Context) {
	RespondSuccess(c, gin.H{"l": 0, "p": 0})
}

// Signup cria o usuário e já abre a sessão (cadastro conta como login).
func Signup(c *gin.Context) {
	env := EnvInstance(c)
	db := dbpkg.DBInstance(c)
	if env == nil || db == nil {
		RespondError(c, "env não configurado no contexto", http.StatusInternalServerError)
		return
	}

	user := models.User{}
	if err := c.Bind(&user); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	missing := user.MissingFields()
	if missing != "" {
		RespondError(c, "Faltando campo "+missing, http.StatusBadRequest)
		return
	}
	if user.ShortPassword() {
		RespondError(c, "senha muito curta (mínimo 8 caracteres)", http.StatusBadRequest)
		return
	}
	if !tools.ValidateEmail(user.Email) {
		RespondError(c, "E-mail inválido!", http.StatusBadRequest)
		return
	}

	if exists, _ := CheckUserExists(c, user.Email); exists {
		RespondError(c, "Usuário já existe", http.StatusBadRequest)
		return
	}

	user.Password = tools.HashPassword(user.Password)
	user.ResetToken = ""

	if err := db.Create(&user).Error; err != nil {
		// corrida de cadastro duplicado estoura aqui como violação de
		// unicidade; vira erro de validação e não um 500
		if strings.Contains(strings.ToLower(err.Error()), "unique") ||
			strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			RespondError(c, "Usuário já existe", http.StatusBadRequest)
			return
		}
		RespondError(c, err.Error(), http.StatusBadRequest)
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
