package controllers

import (
	"fmt"
	"strconv"
	"time"

	"frutaria/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// timeNow é indireção pro relógio — os testes de expiração trocam isso.
var timeNow = time.Now

// O token de sessão usa o padrão { "sub": <userId>, "email": "...",
// "iat": ..., "exp": ... }. O token de reset embute o e-mail no "sub" e
// carrega um claim fixo de propósito, pra um nunca valer pelo outro.
const resetTokenPurpose = "frutaria:password-reset"

type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type resetClaims struct {
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

func signSessionToken(secret string, user models.User, maxValid time.Duration) (string, error) {
	now := timeNow()
	claims := sessionClaims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(maxValid)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// parseSessionToken verifica assinatura e expiração e devolve o user id.
func parseSessionToken(secret string, token string) (int64, bool) {
	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, keyFunc(secret),
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(timeNow),
	)
	if err != nil || !parsed.Valid {
		return 0, false
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// signResetToken emite o token de recuperação de senha: assinado, com
// timestamp e validade fixa. Stateless de propósito — o link continua
// válido depois de restart porque nada é consultado no banco.
func signResetToken(secret string, email string, maxValid time.Duration) (string, error) {
	now := timeNow()
	claims := resetClaims{
		Purpose: resetTokenPurpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(maxValid)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// parseResetToken devolve o e-mail dono do token quando assinatura,
// propósito e validade conferem.
func parseResetToken(secret string, token string) (string, bool) {
	var claims resetClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, keyFunc(secret),
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(timeNow),
	)
	if err != nil || !parsed.Valid {
		return "", false
	}
	if claims.Purpose != resetTokenPurpose || claims.Subject == "" {
		return "", false
	}
	return claims.Subject, true
}

func keyFunc(secret string) jwt.Keyfunc {
	return func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}
}
