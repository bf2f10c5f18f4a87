// Package jwt firma y valida los tokens de sesión (HS256) de la API.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrEmptySecret se devuelve si el secreto de firma no está configurado.
var ErrEmptySecret = errors.New("jwt: secret vacío")

// Subject identidad transportada en el token. Role permite al middleware RBAC
// decidir sin consultar la DB ("admin" | "produccion" | "compras").
type Subject struct {
	UserID    string
	CompanyID string
	Role      string
}

// Claims claims estándar más la identidad del usuario.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id"`
	Role      string `json:"role"`
}

// Generate firma un token para el sujeto con vigencia ttl.
func Generate(secret string, sub Subject, issuer string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   sub.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:    sub.UserID,
		CompanyID: sub.CompanyID,
		Role:      sub.Role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Parse valida firma y expiración y devuelve el sujeto del token.
func Parse(secret, tokenString string) (Subject, error) {
	if secret == "" {
		return Subject{}, ErrEmptySecret
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return Subject{}, err
	}
	if !token.Valid {
		return Subject{}, fmt.Errorf("jwt: claims inválidos")
	}
	return Subject{UserID: claims.UserID, CompanyID: claims.CompanyID, Role: claims.Role}, nil
}
