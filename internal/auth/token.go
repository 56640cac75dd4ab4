package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/justsurfingit/superio-server/internal/apperr"
)

var ErrMissingEmail = errors.New("token payload must include an email")

// reserved claims are owned by the token service and never copied from a payload.
var reservedClaims = map[string]struct{}{"exp": {}, "iat": {}, "nbf": {}}

// Claims is the verified content of a credential.
type Claims struct {
	Email   string
	Payload map[string]interface{}
}

// TokenService signs and verifies the HS256 credentials carried in the auth cookie.
// It keeps no server-side state: revoking only clears the client cookie.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// TTL is the validity window of issued credentials.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs payload, which must carry a non-empty "email", with a fixed expiry.
func (s *TokenService) Issue(payload map[string]interface{}) (string, error) {
	email, _ := payload["email"].(string)
	if email == "" {
		return "", ErrMissingEmail
	}

	now := s.now()
	claims := jwt.MapClaims{}
	for k, v := range payload {
		if _, reserved := reservedClaims[k]; reserved {
			continue
		}
		claims[k] = v
	}
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(s.ttl).Unix()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm and expiry. Every failure is an
// *apperr.Error with code UNAUTHORIZED.
func (s *TokenService) Verify(token string) (*Claims, error) {
	if token == "" {
		return nil, apperr.NewUnauthorized("missing token")
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, apperr.NewUnauthorized(err.Error())
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, apperr.NewUnauthorized("unreadable claims")
	}
	email, _ := mapClaims["email"].(string)
	if email == "" {
		return nil, apperr.NewUnauthorized("token carries no email")
	}

	payload := make(map[string]interface{}, len(mapClaims))
	for k, v := range mapClaims {
		if _, reserved := reservedClaims[k]; reserved {
			continue
		}
		payload[k] = v
	}
	return &Claims{Email: email, Payload: payload}, nil
}
