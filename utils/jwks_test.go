package utils

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/kataras/iris/v12"

	"hotel-server/models"
)

func testJWKS(t *testing.T, kid string, key *rsa.PublicKey) []byte {
	t.Helper()
	raw, err := json.Marshal(map[string]interface{}{
		"keys": []map[string]string{{
			"kty": "RSA",
			"kid": kid,
			"alg": "RS256",
			"use": "sig",
			"n":   base64.RawURLEncoding.EncodeToString(key.N.Bytes()),
			"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.E)).Bytes()),
		}},
	})
	if err != nil {
		t.Fatalf("marshal jwks: %v", err)
	}
	return raw
}

func signRS256(t *testing.T, key *rsa.PrivateKey, kid string, id uint, roles ...string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwksClaims{
		ID:    id,
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	token.Header["kid"] = kid
	signed, err := token.SignedString(key)
	if err != nil {
		t.Fatalf("sign rs256: %v", err)
	}
	return signed
}

func TestAccessTokenMiddlewareAcceptsBothIssuers(t *testing.T) {
	identityKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	rogueKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	verifier, err := newJWKSVerifierFromJSON(testJWKS(t, "identity-1", &identityKey.PublicKey))
	if err != nil {
		t.Fatalf("load jwks: %v", err)
	}

	app := iris.New()
	app.Get("/desk", AccessTokenMiddleware(testSecret, verifier), RequireRoles(models.RoleReceptionist), func(ctx iris.Context) {
		ctx.JSON(iris.Map{"id": ActorFromContext(ctx).UserID})
	})
	if err := app.Build(); err != nil {
		t.Fatalf("build app: %v", err)
	}

	resp := serve(app, "/desk", signRS256(t, identityKey, "identity-1", 5, "Receptionist"))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for RS256 token, got %d: %s", resp.Code, resp.Body.String())
	}
	var body struct {
		ID uint `json:"id"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil || body.ID != 5 {
		t.Fatalf("expected actor 5, got %s (%v)", resp.Body.String(), err)
	}

	if resp := serve(app, "/desk", signRS256(t, identityKey, "identity-1", 5, "Customer")); resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for RS256 customer, got %d", resp.Code)
	}
	if resp := serve(app, "/desk", signRS256(t, rogueKey, "identity-1", 5, "Receptionist")); resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for token signed by an unknown key, got %d", resp.Code)
	}

	hs, err := SignAccessToken(testSecret, 6, []string{"Receptionist"}, time.Hour)
	if err != nil {
		t.Fatalf("sign hs256: %v", err)
	}
	if resp := serve(app, "/desk", hs); resp.Code != http.StatusOK {
		t.Fatalf("expected HS256 token to keep working, got %d", resp.Code)
	}
}
