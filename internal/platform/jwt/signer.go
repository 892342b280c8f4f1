// Package jwtcred signs and verifies session credentials as HS256 JWTs.
//
// A credential only proves that the server issued the session token it
// carries; expiry and revocation are decided by the session store.
package jwtcred

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidCredential is returned when a credential fails verification.
var ErrInvalidCredential = errors.New("invalid credential")

const claimSessionID = "sid"

// Signer implements usecase.CredentialSigner.
type Signer struct {
	secret []byte
	issuer string
}

// NewSigner creates a Signer with the given HMAC secret.
// An empty issuer disables the issuer check.
func NewSigner(secret, issuer string) *Signer {
	return &Signer{
		secret: []byte(secret),
		issuer: issuer,
	}
}

// Sign creates a signed credential for the session token.
func (s *Signer) Sign(sessionToken, userID string) (string, error) {
	claims := jwt.MapClaims{
		claimSessionID: sessionToken,
		"sub":          userID,
		"iat":          time.Now().Unix(),
	}
	if s.issuer != "" {
		claims["iss"] = s.issuer
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Parse verifies the credential and returns the session token it carries.
func (s *Signer) Parse(credential string) (string, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.Parse(credential, func(t *jwt.Token) (interface{}, error) {
		// only HMAC is accepted
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return "", ErrInvalidCredential
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidCredential
	}
	sid, ok := claims[claimSessionID].(string)
	if !ok || sid == "" {
		return "", ErrInvalidCredential
	}
	return sid, nil
}
