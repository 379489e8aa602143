// Package identity resolves bearer tokens into actors.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"servicedesk/internal/domain/entities"
	"servicedesk/internal/usecase/interfaces"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrInvalidRole  = errors.New("token carries an unknown role")
)

// Claims is the token payload: the standard subject carries the actor id.
type Claims struct {
	Role entities.Role `json:"role"`
	jwt.RegisteredClaims
}

// JWTProvider validates HS256 tokens issued by IssueToken.
type JWTProvider struct {
	secret []byte
	issuer string
	now    func() time.Time
}

var _ interfaces.IIdentityProvider = (*JWTProvider)(nil)

func NewJWTProvider(secret, issuer string) *JWTProvider {
	return &JWTProvider{
		secret: []byte(secret),
		issuer: issuer,
		now:    time.Now,
	}
}

func (p *JWTProvider) Authenticate(_ context.Context, token string) (entities.Actor, error) {
	token = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "Bearer "))
	if token == "" {
		return entities.Actor{}, ErrInvalidToken
	}

	claims := &Claims{}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(p.now),
		jwt.WithExpirationRequired(),
	}
	if p.issuer != "" {
		opts = append(opts, jwt.WithIssuer(p.issuer))
	}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return p.secret, nil
	}, opts...)
	if err != nil {
		return entities.Actor{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return entities.Actor{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	if !claims.Role.Valid() {
		return entities.Actor{}, ErrInvalidRole
	}
	return entities.Actor{ID: claims.Subject, Role: claims.Role}, nil
}

// IssueToken signs a token for actor valid for ttl.
func (p *JWTProvider) IssueToken(actor entities.Actor, ttl time.Duration) (string, error) {
	if actor.ID == "" || !actor.Role.Valid() {
		return "", ErrInvalidRole
	}
	now := p.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role: actor.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ID,
			Issuer:    p.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return token.SignedString(p.secret)
}
