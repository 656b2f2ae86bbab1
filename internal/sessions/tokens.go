package sessions

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the verified content of an access token.
type TokenClaims struct {
	AccountID int
	Name      string
	SessionID string
}

// AccessToken creates a signed JWT handle for the session, for callers that
// want to hand out a stateless credential. Revocation still goes through the
// session store: validate the embedded session id before trusting the token.
func AccessToken(secret string, sess *Session, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret not configured")
	}
	claims := jwt.MapClaims{
		"sub":  fmt.Sprintf("%d", sess.AccountID),
		"name": sess.Name,
		"sid":  sess.ID,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(ttl).Unix(),
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(secret))
}

// ParseAccessToken verifies the signature and expiry of an access token and
// returns its claims.
func ParseAccessToken(secret, token string) (*TokenClaims, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}

	out := &TokenClaims{}
	if sub, ok := claims["sub"].(string); ok {
		if _, err := fmt.Sscanf(sub, "%d", &out.AccountID); err != nil {
			return nil, errors.New("invalid subject claim")
		}
	}
	if name, ok := claims["name"].(string); ok {
		out.Name = name
	}
	if sid, ok := claims["sid"].(string); ok {
		out.SessionID = sid
	}
	return out, nil
}
