package utils // package utils provides helper functions for token creation and hashing

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens

	"github.com/gabrielAlencar33564/weather/internal/auth"
)

// AccessToken represents a signed JWT access token along with its expiry.
// Validity is solely a function of signature and expiry; there is no
// server-side session store backing these tokens.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewAccessToken builds and signs an HS256 JWT for a user.  The subject
// is the decimal user id; email, name and role ride along so the
// middleware can rebuild a full auth.Claim without a database round
// trip.  Standard exp and iat claims bound the token's lifetime.
func NewAccessToken(secret string, userID uint64, email, name, role string, ttlMin int) (AccessToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":   strconv.FormatUint(userID, 10),
		"email": email,
		"name":  name,
		"role":  role,
		"exp":   exp.Unix(),
		"iat":   time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies signature and expiry of a raw token and
// rebuilds the session claim embedded in it.  It rejects tokens signed
// with anything other than HMAC.
func ParseAccessToken(secret, raw string) (*auth.Claim, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}
	c := &auth.Claim{
		Subject: stringClaim(claims, "sub"),
		Email:   stringClaim(claims, "email"),
		Name:    stringClaim(claims, "name"),
		Role:    stringClaim(claims, "role"),
	}
	if c.Subject == "" || c.Role == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return c, nil
}

// stringClaim extracts a claim as string, tolerating numeric subjects
// produced by other token issuers.
func stringClaim(claims jwt.MapClaims, key string) string {
	switch v := claims[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatUint(uint64(v), 10)
	}
	return ""
}
