// Package auth holds the bearer token codecs used by the identity service.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformedToken is returned when a token cannot be decoded into a user id
var ErrMalformedToken = errors.New("malformed token")

// TokenPrefix is the fixed prefix of mock bearer tokens
const TokenPrefix = "mock-jwt-token-"

// TokenCodec turns a user id into a bearer token and back
type TokenCodec interface {
	Issue(userID string) (string, error)
	Parse(token string) (string, error)
}

// PrefixCodec issues tokens of the form TokenPrefix + id. They carry no signature
// and are only lookup keys.
type PrefixCodec struct{}

func NewPrefixCodec() PrefixCodec {
	return PrefixCodec{}
}

func (PrefixCodec) Issue(userID string) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("%w: empty user id", ErrMalformedToken)
	}
	return TokenPrefix + userID, nil
}

// Parse strips the prefix. A token without the prefix decodes to itself, so an
// arbitrary string still reaches the id lookup and fails there.
func (PrefixCodec) Parse(token string) (string, error) {
	id := strings.TrimPrefix(token, TokenPrefix)
	if id == "" {
		return "", ErrMalformedToken
	}
	return id, nil
}

// JWTClaims are the claims carried by signed tokens
type JWTClaims struct {
	jwt.RegisteredClaims
}

// JWTCodec issues HS256 signed tokens with the user id as subject
type JWTCodec struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTCodec(secret, issuer string, ttl time.Duration) *JWTCodec {
	return &JWTCodec{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

func (c *JWTCodec) Issue(userID string) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("%w: empty user id", ErrMalformedToken)
	}

	now := c.now()
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  userID,
			Issuer:   c.issuer,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if c.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(c.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (c *JWTCodec) Parse(token string) (string, error) {
	claims := &JWTClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.issuer),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !parsed.Valid {
		return "", fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	if claims.Subject == "" {
		return "", ErrMalformedToken
	}
	return claims.Subject, nil
}
