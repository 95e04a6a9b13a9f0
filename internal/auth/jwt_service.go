package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// TokenLifetime is how long a session token stays valid. Lifetime is fixed
// at issuance and not renewable; a fresh login is the only renewal path.
const TokenLifetime = 24 * time.Hour

// Claims is the signed payload of a session token.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// JWTService signs and verifies session tokens. The signing secret is an
// explicit value held by the instance, loaded once at process start; it is
// the only shared state and is never mutated.
type JWTService struct {
	secret []byte
}

// NewJWTService creates a token service with the given secret.
func NewJWTService(secret string) *JWTService {
	return &JWTService{secret: []byte(secret)}
}

// Issue signs a token for an authenticated identity. Returns the token and
// its lifetime in seconds.
func (s *JWTService) Issue(userID uuid.UUID, username string) (string, int64, error) {
	now := time.Now()
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenLifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", 0, err
	}
	return signed, int64(TokenLifetime.Seconds()), nil
}

// Validate checks signature and expiry and returns the claims. Callers
// must not distinguish failure modes outward: expired and malformed both
// end in the same rejection.
func (s *JWTService) Validate(raw string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// Authenticate is the full validation stage: raw token in, principal out.
// Pure and stateless; safe to run concurrently across requests.
func (s *JWTService) Authenticate(raw string) (Principal, error) {
	claims, err := s.Validate(raw)
	if err != nil {
		return Principal{}, err
	}
	return PrincipalFromClaims(claims)
}
