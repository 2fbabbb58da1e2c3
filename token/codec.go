// Package token signs and verifies the bearer tokens that carry an
// authenticated subject between requests.
//
// The codec separates three independent questions that callers tend to
// conflate: can these bytes be trusted (signature), are they still useful
// (expiry), and do they name the right person (subject match). Decode answers
// only the first; IsExpired and IsValidFor layer the other two on top.
package token

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the payload embedded in every signed token. Extra is populated
// only on refresh tokens and is empty in practice; the slot exists so future
// claims don't require a format change.
type Claims struct {
	gojwt.RegisteredClaims
	Extra map[string]any `json:"extra,omitempty"`
}

// expired reports whether the embedded expiry is strictly before now.
func (cl *Claims) expired(now time.Time) bool {
	return cl.ExpiresAt != nil && cl.ExpiresAt.Time.Before(now)
}

// Codec signs and verifies compact token strings with a process-wide
// symmetric key. It holds no mutable state and is safe for concurrent use.
type Codec struct {
	cfg Config
}

// NewCodec creates a codec from config, applying defaults first.
func NewCodec(cfg Config) (*Codec, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Codec{cfg: cfg}, nil
}

// Access mints a short-lived access token for subject.
func (c *Codec) Access(subject string) (string, error) {
	return c.sign(subject, c.cfg.AccessTokenTTL, nil)
}

// Refresh mints a long-lived refresh token for subject with optional extra claims.
func (c *Codec) Refresh(subject string, extra map[string]any) (string, error) {
	return c.sign(subject, c.cfg.RefreshTokenTTL, extra)
}

// AccessTokenTTL returns the configured access-token lifetime.
func (c *Codec) AccessTokenTTL() time.Duration { return c.cfg.AccessTokenTTL }

// Mint signs a token for subject with an explicit lifetime, bypassing the
// configured TTLs. Access and Refresh are the usual entry points.
func (c *Codec) Mint(subject string, ttl time.Duration, extra map[string]any) (string, error) {
	return c.sign(subject, ttl, extra)
}

// sign builds claims with issued-at = now and expiry = now + ttl, then signs
// them. Each token gets a unique jti so two tokens minted within the same
// second still produce distinct strings.
func (c *Codec) sign(subject string, ttl time.Duration, extra map[string]any) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    c.cfg.Issuer,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
		Extra: extra,
	}

	tok := gojwt.NewWithClaims(c.cfg.signingMethod(), claims)
	signed, err := tok.SignedString(c.cfg.key())
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Decode verifies the signature and structure of tok and returns its claims.
// Freshness is deliberately not judged here — an expired but untampered token
// decodes cleanly so callers can still read its subject (e.g. during refresh).
func (c *Codec) Decode(tok string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := gojwt.ParseWithClaims(tok, claims, c.keyFunc,
		gojwt.WithValidMethods([]string{c.cfg.signingMethod().Alg()}),
		gojwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return nil, fmt.Errorf("token: parse: %w", err)
	}
	if !parsed.Valid {
		return nil, errors.New("token: invalid signature")
	}
	return claims, nil
}

// Subject returns the subject of a signature-valid token, expired or not.
func (c *Codec) Subject(tok string) (string, error) {
	claims, err := c.Decode(tok)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// IsExpired reports whether the token's embedded expiry is strictly before
// the current time. Undecodable tokens count as expired.
func (c *Codec) IsExpired(tok string) bool {
	claims, err := c.Decode(tok)
	if err != nil {
		return true
	}
	return claims.expired(time.Now())
}

// IsValidFor reports whether tok decodes cleanly, names subject, and has not
// expired. This is the single gate request authentication relies on; it never
// returns an error — any failure short-circuits to false.
func (c *Codec) IsValidFor(tok, subject string) bool {
	claims, err := c.Decode(tok)
	if err != nil {
		return false
	}
	return claims.Subject == subject && !claims.expired(time.Now())
}

// keyFunc is the gojwt.Keyfunc used during parsing.
func (c *Codec) keyFunc(t *gojwt.Token) (interface{}, error) {
	if t.Method.Alg() != c.cfg.signingMethod().Alg() {
		return nil, fmt.Errorf("token: unexpected signing method: %s", t.Method.Alg())
	}
	return c.cfg.key(), nil
}
