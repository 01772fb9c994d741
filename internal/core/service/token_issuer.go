package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Jhonatan-05/backen-Maria/internal/core/domain"
)

// TokenIssuer signs and parses HS256 bearer tokens. The jti claim links a
// token to its persisted AccessToken row.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// tokenClaims is the parsed content of a bearer token.
type tokenClaims struct {
	Subject string
	Guard   domain.Guard
	TokenID string
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for principalID under guard and returns it together
// with the row to persist.
func (i *TokenIssuer) Issue(guard domain.Guard, principalID, name string, now time.Time) (string, domain.AccessToken, error) {
	rec := domain.AccessToken{
		ID:          uuid.NewString(),
		Guard:       guard,
		PrincipalID: principalID,
		Name:        name,
		ExpiresAt:   now.Add(i.ttl),
		CreatedAt:   now,
	}

	claims := jwt.MapClaims{
		"sub":   principalID,
		"guard": string(guard),
		"jti":   rec.ID,
		"iat":   now.Unix(),
		"exp":   rec.ExpiresAt.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", domain.AccessToken{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, rec, nil
}

// Parse verifies the signature and expiry of raw and extracts its claims.
func (i *TokenIssuer) Parse(raw string) (tokenClaims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	})
	if err != nil || !tkn.Valid {
		return tokenClaims{}, domain.ErrUnauthenticated
	}

	sub, _ := claims["sub"].(string)
	guard, _ := claims["guard"].(string)
	jti, _ := claims["jti"].(string)
	if sub == "" || guard == "" || jti == "" {
		return tokenClaims{}, errors.Join(domain.ErrUnauthenticated, errors.New("token missing claims"))
	}
	return tokenClaims{Subject: sub, Guard: domain.Guard(guard), TokenID: jti}, nil
}
