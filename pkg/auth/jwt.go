package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"github.com/rhuss/akzept/pkg/debug"
)

// JWTOptions configures JWT validation.
type JWTOptions struct {
	// Secret is the HS256 signing secret shared with the token issuer.
	Secret string

	// Issuer, when set, must match the token's iss claim.
	Issuer string

	// Audience, when set, must be contained in the token's aud claim.
	Audience string
}

// JWT authenticates bearer tokens as HS256-signed JSON Web Tokens.
// An expiry claim is mandatory; issuer and audience are checked when
// configured. The subject claim becomes the identity subject, and a
// space-separated scope claim becomes its scopes.
type JWT struct {
	secret []byte
	opts   []jwtlib.ParserOption
}

// NewJWT builds an authenticator from the given options.
func NewJWT(opts JWTOptions) (*JWT, error) {
	if opts.Secret == "" {
		return nil, fmt.Errorf("JWT secret is required")
	}

	parserOpts := []jwtlib.ParserOption{
		jwtlib.WithValidMethods([]string{"HS256"}),
		jwtlib.WithExpirationRequired(),
	}
	if opts.Issuer != "" {
		parserOpts = append(parserOpts, jwtlib.WithIssuer(opts.Issuer))
	}
	if opts.Audience != "" {
		parserOpts = append(parserOpts, jwtlib.WithAudience(opts.Audience))
	}

	return &JWT{
		secret: []byte(opts.Secret),
		opts:   parserOpts,
	}, nil
}

// Authenticate implements Authenticator.
func (j *JWT) Authenticate(ctx context.Context, r *http.Request) (*Identity, error) {
	tokenStr, err := bearerToken(r)
	if err != nil {
		return nil, err
	}

	token, err := jwtlib.Parse(tokenStr, j.keyFunc, j.opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}

	claims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected claims type %T", ErrInvalidCredentials, token.Claims)
	}

	subject := claimString(claims, "sub")
	if subject == "" {
		return nil, fmt.Errorf("%w: token has no subject", ErrInvalidCredentials)
	}

	debug.Trace("auth", "token verified",
		"subject", subject,
		"scope", claimString(claims, "scope"),
	)

	return &Identity{
		Subject: subject,
		Scopes:  strings.Fields(claimString(claims, "scope")),
	}, nil
}

// keyFunc rejects any token whose header asks for a non-HMAC method
// before the signature is checked.
func (j *JWT) keyFunc(token *jwtlib.Token) (any, error) {
	if _, ok := token.Method.(*jwtlib.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %s", token.Method.Alg())
	}
	return j.secret, nil
}

// claimString reads a string claim, returning "" when absent or not a string.
func claimString(claims jwtlib.MapClaims, name string) string {
	if v, ok := claims[name].(string); ok {
		return v
	}
	return ""
}
