package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Propósitos de token. Un token de recuperación no sirve como token de acceso y viceversa.
const (
	PurposeAccess        = "access"
	PurposePasswordReset = "password_reset"
)

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Role viaja en el token para que el middleware RBAC decida sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID  string `json:"user_id"`
	Role    string `json:"role"` // "Administrator" | "Manufacturing Manager" | "Operator" | "Inventory Manager"
	Purpose string `json:"purpose"`
}

// Generate genera un token de acceso firmado con userID y role.
func Generate(secret, userID, role, issuer string, expMinutes int) (string, error) {
	return sign(secret, userID, role, issuer, PurposeAccess, expMinutes)
}

// GenerateReset genera un token de recuperación de contraseña de corta duración.
func GenerateReset(secret, userID, issuer string, expMinutes int) (string, error) {
	return sign(secret, userID, "", issuer, PurposePasswordReset, expMinutes)
}

func sign(secret, userID, role, issuer, purpose string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:  userID,
		Role:    role,
		Purpose: purpose,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida un token de acceso y devuelve userID y role.
// Retorna error si el token es inválido, expirado, tiene firma incorrecta o es de otro propósito.
func Parse(secret, tokenString string) (userID, role string, err error) {
	claims, err := parse(secret, tokenString)
	if err != nil {
		return "", "", err
	}
	if claims.Purpose != PurposeAccess {
		return "", "", fmt.Errorf("jwt: el token no es de acceso")
	}
	return claims.UserID, claims.Role, nil
}

// ParseReset valida un token de recuperación de contraseña y devuelve el userID.
func ParseReset(secret, tokenString string) (string, error) {
	claims, err := parse(secret, tokenString)
	if err != nil {
		return "", err
	}
	if claims.Purpose != PurposePasswordReset {
		return "", fmt.Errorf("jwt: el token no es de recuperación")
	}
	return claims.UserID, nil
}

func parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}
