package tools

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// Esquema de senha: pbkdf2:sha256:260000$<salt>$<hex>.
// O identificador completo fica guardado junto com o digest — assim a
// verificação lê os parâmetros do próprio registro e dá pra subir as
// iterações no futuro sem quebrar senhas antigas.
const (
	pbkdf2Iterations = 260000
	pbkdf2SaltLen    = 8
	pbkdf2KeyLen     = 32
)

// HashPassword deriva o digest de uma senha com salt aleatório.
func HashPassword(password string) string {
	salt := RandomString(pbkdf2SaltLen)
	return hashWithSalt(password, salt, pbkdf2Iterations)
}

// VerifyPassword compara senha com o digest armazenado (tempo constante).
func VerifyPassword(stored string, password string) bool {
	method, salt, _, ok := splitStored(stored)
	if !ok {
		return false
	}
	iterations := pbkdf2Iterations
	if parts := strings.Split(method, ":"); len(parts) == 3 {
		if n, err := strconv.Atoi(parts[2]); err == nil && n > 0 {
			iterations = n
		}
	}
	candidate := hashWithSalt(password, salt, iterations)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(stored)) == 1
}

func hashWithSalt(password string, salt string, iterations int) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), iterations, pbkdf2KeyLen, sha256.New)
	return fmt.Sprintf("pbkdf2:sha256:%d$%s$%s", iterations, salt, hex.EncodeToString(key))
}

func splitStored(stored string) (method string, salt string, digest string, ok bool) {
	parts := strings.SplitN(stored, "$", 3)
	if len(parts) != 3 {
		return "", "", "", false
	}
	if !strings.HasPrefix(parts[0], "pbkdf2:sha256") {
		return "", "", "", false
	}
	if parts[1] == "" || parts[2] == "" {
		return "", "", "", false
	}
	return parts[0], parts[1], parts[2], true
}
