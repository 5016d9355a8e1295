package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc"
	"github.com/golang-jwt/jwt/v4"

	"github.com/rahulserver/task-management-backend/internal/core/ports"
)

var (
	ErrMissingCredential = errors.New("missing authorization header")
	ErrInvalidCredential = errors.New("invalid bearer credential")
)

// clockSkew tolerates small clock differences with the identity provider.
const clockSkew = time.Minute

// JWTVerifier validates bearer tokens issued by the identity provider. Tokens
// are RS256 signed and checked against the provider's JWKS, unless an HS256
// shared secret is configured for local development.
type JWTVerifier struct {
	jwks     *keyfunc.JWKS
	secret   []byte
	audience string
	issuer   string
	parser   *jwt.Parser
	now      func() time.Time
}

type Options struct {
	JWKS        *keyfunc.JWKS
	HS256Secret string
	Audience    string
	Issuer      string
}

var _ ports.IdentityVerifier = (*JWTVerifier)(nil)

func NewJWTVerifier(opts Options) (*JWTVerifier, error) {
	v := &JWTVerifier{
		jwks:     opts.JWKS,
		audience: opts.Audience,
		issuer:   opts.Issuer,
		now:      time.Now,
	}

	switch {
	case opts.HS256Secret != "":
		v.secret = []byte(opts.HS256Secret)
		v.parser = jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}), jwt.WithoutClaimsValidation())
	case opts.JWKS != nil:
		v.parser = jwt.NewParser(jwt.WithValidMethods([]string{"RS256"}), jwt.WithoutClaimsValidation())
	default:
		return nil, errors.New("auth: either a JWKS or an HS256 secret is required")
	}
	return v, nil
}

// NewJWKS fetches the provider key set and keeps it refreshed in the background.
// Callers release it with EndBackground.
func NewJWKS(url string) (*keyfunc.JWKS, error) {
	return keyfunc.Get(url, keyfunc.Options{
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  5 * time.Minute,
		RefreshTimeout:    10 * time.Second,
		RefreshUnknownKID: true,
	})
}

func (v *JWTVerifier) Verify(_ context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrMissingCredential
	}

	parsed, err := v.parser.Parse(token, v.keyFor)
	if err != nil {
		return "", errors.Join(ErrInvalidCredential, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidCredential
	}

	now := v.now()
	if !claims.VerifyExpiresAt(now.Add(-clockSkew).Unix(), true) {
		return "", errors.Join(ErrInvalidCredential, errors.New("token expired"))
	}
	if !claims.VerifyNotBefore(now.Add(clockSkew).Unix(), false) {
		return "", errors.Join(ErrInvalidCredential, errors.New("token not valid yet"))
	}
	if v.audience != "" && !claims.VerifyAudience(v.audience, true) {
		return "", errors.Join(ErrInvalidCredential, errors.New("invalid audience"))
	}
	if v.issuer != "" && !claims.VerifyIssuer(v.issuer, true) {
		return "", errors.Join(ErrInvalidCredential, errors.New("invalid issuer"))
	}

	sub, _ := claims["sub"].(string)
	if strings.TrimSpace(sub) == "" {
		return "", errors.Join(ErrInvalidCredential, errors.New("missing sub"))
	}
	return sub, nil
}

func (v *JWTVerifier) keyFor(token *jwt.Token) (any, error) {
	if v.secret != nil {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return v.secret, nil
	}
	return v.jwks.Keyfunc(token)
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", ErrMissingCredential
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrInvalidCredential
	}
	token = strings.TrimSpace(token)
	if strings.Count(token, ".") != 2 {
		return "", ErrInvalidCredential
	}
	return token, nil
}
