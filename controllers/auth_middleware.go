package controllers

import (
	"net/http"
	"strings"

	dbpkg "frutaria/db"
	"frutaria/models"

	"github.com/gin-gonic/gin"
)

const ctxUserKey = "auth_user"

// sessionCookie guarda o JWT de sessão pro fluxo de navegador; clientes
// de API podem mandar o mesmo token via Authorization: Bearer.
const sessionCookie = "frutaria_session"

// AuthRequired resolve token de sessão -> usuário, explicitamente, a cada
// request. Sem token válido a request morre em 401.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		env := EnvInstance(c)
		if env == nil {
			RespondError(c, "env não configurado no contexto", http.StatusInternalServerError)
			c.Abort()
			return
		}

		token := sessionTokenFromRequest(c)
		if token == "" {
			RespondError(c, "unauthorized", http.StatusUnauthorized)
			c.Abort()
			return
		}

		userID, ok := parseSessionToken(env.Cfg.Security.SecretKey, token)
		if !ok {
			RespondError(c, "unauthorized", http.StatusUnauthorized)
			c.Abort()
			return
		}

		db := dbpkg.DBInstance(c)
		if db == nil {
			RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
			c.Abort()
			return
		}
		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			RespondError(c, "unauthorized", http.StatusUnauthorized)
			c.Abort()
			return
		}

		c.Set(ctxUserKey, user)
		c.Next()
	}
}

// GetUserLogged returns the user loaded by AuthRequired.
func GetUserLogged(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}

func sessionTokenFromRequest(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(h), "bearer ") {
		return strings.TrimSpace(h[len("Bearer "):])
	}
	if cookie, err := c.Cookie(sessionCookie); err == nil {
		return cookie
	}
	return ""
}

func setSessionCookie(c *gin.Context, token string, maxAgeSeconds int) {
	c.SetCookie(sessionCookie, token, maxAgeSeconds, "/", "", false, true)
}

func clearSessionCookie(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
}
