// Package auth checks the X-API-Key header value of protected routes.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/himarpl/himarpl-api/pkg/config"
)

// ErrInvalidKey is returned when a key is present but rejected.
var ErrInvalidKey = errors.New("auth: invalid api key")

// Principal identifies the caller behind an accepted key.
type Principal struct {
	Subject string
	Method  string
}

// Authenticator validates API keys.
type Authenticator interface {
	Authenticate(ctx context.Context, key string) (*Principal, error)
}

// New selects an authenticator for the configured mode.
func New(cfg config.AuthConfig) (Authenticator, error) {
	switch cfg.Mode {
	case "", config.AuthModePermissive:
		return Permissive{}, nil
	case config.AuthModeStatic:
		if len(cfg.KeyHashes) == 0 {
			return nil, errors.New("auth: static mode requires API_KEY_HASHES")
		}
		return NewStaticKeys(cfg.KeyHashes), nil
	case config.AuthModeJWT:
		if cfg.JWTSecret == "" {
			return nil, errors.New("auth: jwt mode requires API_KEY_JWT_SECRET")
		}
		return NewJWTKeys(cfg.JWTSecret, cfg.JWTIssuer), nil
	default:
		return nil, fmt.Errorf("auth: unknown mode %q", cfg.Mode)
	}
}

// Permissive accepts any non-empty key.
type Permissive struct{}

// Authenticate implements Authenticator.
func (Permissive) Authenticate(_ context.Context, key string) (*Principal, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}
	return &Principal{Subject: "anonymous", Method: config.AuthModePermissive}, nil
}

// StaticKeys accepts keys matching one of a fixed set of bcrypt hashes.
type StaticKeys struct {
	hashes [][]byte
}

// NewStaticKeys creates a StaticKeys authenticator.
func NewStaticKeys(hashes []string) *StaticKeys {
	out := make([][]byte, 0, len(hashes))
	for _, h := range hashes {
		out = append(out, []byte(h))
	}
	return &StaticKeys{hashes: out}
}

// Authenticate implements Authenticator.
func (s *StaticKeys) Authenticate(_ context.Context, key string) (*Principal, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}
	for i, hash := range s.hashes {
		if bcrypt.CompareHashAndPassword(hash, []byte(key)) == nil {
			return &Principal{Subject: fmt.Sprintf("key-%d", i), Method: config.AuthModeStatic}, nil
		}
	}
	return nil, ErrInvalidKey
}

// JWTKeys accepts HS256 tokens signed with a shared secret.
type JWTKeys struct {
	secret []byte
	issuer string
}

// NewJWTKeys creates a JWTKeys authenticator. An empty issuer skips the issuer check.
func NewJWTKeys(secret, issuer string) *JWTKeys {
	return &JWTKeys{secret: []byte(secret), issuer: issuer}
}

// Authenticate implements Authenticator.
func (j *JWTKeys) Authenticate(_ context.Context, key string) (*Principal, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if j.issuer != "" {
		opts = append(opts, jwt.WithIssuer(j.issuer))
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(key, claims, func(*jwt.Token) (interface{}, error) {
		return j.secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}

	subject := claims.Subject
	if subject == "" {
		subject = "anonymous"
	}
	return &Principal{Subject: subject, Method: config.AuthModeJWT}, nil
}
