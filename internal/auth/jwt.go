package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

var secret []byte

// SetSecret must be called once at boot, before any token is issued
func SetSecret(key string) {
	secret = []byte(key)
}

func GenerateAccessToken(userID string, tokenVersion uint64) (string, error) {
	return generateJWT(userID, tokenVersion, "access", AccessTokenTTL)
}

func GenerateRefreshToken(userID string, tokenVersion uint64) (string, error) {
	return generateJWT(userID, tokenVersion, "refresh", RefreshTokenTTL)
}

func generateJWT(userID string, tokenVersion uint64, kind string, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("jwt secret not configured")
	}
	claims := jwt.MapClaims{
		"user_id":       userID,
		"token_version": tokenVersion,
		"kind":          kind,
		"exp":           time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func VerifyJWT(tokenString string) (*jwt.Token, error) {
	jwtToken, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	if !jwtToken.Valid {
		return nil, errors.New("token invalid")
	}

	return jwtToken, nil
}

// GetDataFromToken extracts user id, token version and token kind
func GetDataFromToken(token *jwt.Token) (string, uint64, string, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", 0, "", errors.New("invalid claims")
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", 0, "", errors.New("user_id claim missing")
	}

	// numbers decode as float64 from the JSON payload
	version, ok := claims["token_version"].(float64)
	if !ok {
		return "", 0, "", errors.New("token_version claim missing")
	}

	kind, _ := claims["kind"].(string)

	return userID, uint64(version), kind, nil
}
