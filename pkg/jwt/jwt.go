package jwt

import (
	"errors"
	"time"

	"gamespace/backend/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// Claims carries the user identity inside both token types. The Type claim
// distinguishes refresh tokens from access tokens under the shared secret.
type Claims struct {
	UserID uint   `json:"sub"`
	Role   string `json:"role"`
	Type   string `json:"typ"`
	jwt.RegisteredClaims
}

// TokenPair is the result of a successful login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// GenerateTokenPair creates an access and a refresh token for a user.
// Lifetimes come from the application config.
func GenerateTokenPair(userID uint, role string) (*TokenPair, error) {
	access, err := generate(userID, role, TypeAccess, config.AppConfig.AccessTokenTTL)
	if err != nil {
		return nil, err
	}

	refresh, err := generate(userID, role, TypeRefresh, config.AppConfig.RefreshTokenTTL)
	if err != nil {
		return nil, err
	}

	return &TokenPair{Access: access, Refresh: refresh}, nil
}

// GenerateAccessToken creates a fresh access token, used by the refresh flow.
func GenerateAccessToken(userID uint, role string) (string, error) {
	return generate(userID, role, TypeAccess, config.AppConfig.AccessTokenTTL)
}

func generate(userID uint, role, tokenType string, ttl time.Duration) (string, error) {
	claims := &Claims{
		UserID: userID,
		Role:   role,
		Type:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}

// ParseAccessToken validates an access token and returns its claims.
func ParseAccessToken(tokenString string) (*Claims, error) {
	return parse(tokenString, TypeAccess)
}

// ParseRefreshToken validates a refresh token and returns its claims.
func ParseRefreshToken(tokenString string) (*Claims, error) {
	return parse(tokenString, TypeRefresh)
}

func parse(tokenString, wantType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(config.AppConfig.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Type != wantType {
		return nil, errors.New("wrong token type")
	}
	return claims, nil
}
