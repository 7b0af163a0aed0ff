package auth

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword derives a bcrypt hash for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// NewSessionToken returns an opaque random token for the session store.
func NewSessionToken() string {
	buf := make([]byte, 24)
	rand.Read(buf)
	return hex.EncodeToString(buf)
}

// ValidateSignup returns a short user-facing message when the form is
// incomplete, or "" when it passes. Validation failures are surfaced
// inline, never as errors.
func ValidateSignup(name, email, password string) string {
	if name == "" || email == "" || password == "" {
		return "Por favor, preencha todos os campos."
	}
	if !strings.Contains(email, "@") {
		return "E-mail inválido."
	}
	return ""
}

// ValidateLogin is the login-form counterpart of ValidateSignup.
func ValidateLogin(email, password string) string {
	if email == "" || password == "" {
		return "Por favor, preencha e-mail e senha."
	}
	return ""
}

// ErrInvalidCredentials is the fixed message shown for a failed login.
const ErrInvalidCredentials = "E-mail ou senha inválidos."

// ErrEmailTaken is shown when a signup reuses a registered e-mail.
const ErrEmailTaken = "Este e-mail já está cadastrado."
