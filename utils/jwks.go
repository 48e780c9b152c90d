package utils

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc"
	"github.com/golang-jwt/jwt/v4"
	"github.com/kataras/iris/v12"
	"github.com/sirupsen/logrus"
)

const actorContextKey = "hotel.actor"

// jwksClaims are the RS256 claims minted by the identity service.
type jwksClaims struct {
	ID    uint     `json:"ID"`
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// JWKSVerifier checks RS256 access tokens against the identity service's
// published key set.
type JWKSVerifier struct {
	jwks *keyfunc.JWKS
}

// NewJWKSVerifier fetches the key set at url and refreshes it hourly.
func NewJWKSVerifier(url string) (*JWKSVerifier, error) {
	jwks, err := keyfunc.Get(url, keyfunc.Options{
		RefreshInterval: time.Hour,
		RefreshErrorHandler: func(err error) {
			logrus.WithError(err).WithField("jwks_url", url).Warn("failed to refresh JWKS")
		},
	})
	if err != nil {
		return nil, err
	}
	return &JWKSVerifier{jwks: jwks}, nil
}

func newJWKSVerifierFromJSON(raw []byte) (*JWKSVerifier, error) {
	jwks, err := keyfunc.NewJSON(json.RawMessage(raw))
	if err != nil {
		return nil, err
	}
	return &JWKSVerifier{jwks: jwks}, nil
}

func (v *JWKSVerifier) Close() {
	v.jwks.EndBackground()
}

// handles reports whether token is an RS256 JWT, without verifying it.
func (v *JWKSVerifier) handles(token string) bool {
	if token == "" {
		return false
	}
	parsed, _, err := new(jwt.Parser).ParseUnverified(token, jwt.MapClaims{})
	return err == nil && parsed.Method.Alg() == jwt.SigningMethodRS256.Alg()
}

func (v *JWKSVerifier) Verify(ctx iris.Context) {
	claims := new(jwksClaims)
	token, err := jwt.ParseWithClaims(bearerToken(ctx), claims, v.jwks.Keyfunc)
	if err != nil || !token.Valid || token.Method.Alg() != jwt.SigningMethodRS256.Alg() {
		JSONError(ctx, iris.StatusUnauthorized, "unauthorized", "invalid access token")
		return
	}
	ctx.Values().Set(actorContextKey, (&AccessToken{ID: claims.ID, Roles: claims.Roles}).Actor())
	ctx.Next()
}

func bearerToken(ctx iris.Context) string {
	header := ctx.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

// AccessTokenMiddleware verifies HS256 tokens signed with secret and, when jwks
// is set, RS256 tokens from the identity service.
func AccessTokenMiddleware(secret string, jwks *JWKSVerifier) iris.Handler {
	hs256 := AccessTokenVerifier(secret)
	if jwks == nil {
		return hs256
	}
	return func(ctx iris.Context) {
		if jwks.handles(bearerToken(ctx)) {
			jwks.Verify(ctx)
			return
		}
		if secret == "" {
			JSONError(ctx, iris.StatusUnauthorized, "unauthorized", "invalid access token")
			return
		}
		hs256(ctx)
	}
}
