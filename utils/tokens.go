package utils

import (
	"time"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"

	"hotel-server/models"
	"hotel-server/services"
)

// AccessToken carries the claims issued by the identity service.
type AccessToken struct {
	ID    uint     `json:"ID"`
	Roles []string `json:"roles"`
}

func (t *AccessToken) Actor() services.Actor {
	actor := services.Actor{UserID: t.ID}
	for _, r := range t.Roles {
		if role, ok := models.ParseRole(r); ok {
			actor.Roles = append(actor.Roles, role)
		}
	}
	return actor
}

func AccessTokenVerifier(secret string) iris.Handler {
	verifier := jwt.NewVerifier(jwt.HS256, []byte(secret))
	return verifier.Verify(func() interface{} {
		return new(AccessToken)
	})
}

// SignAccessToken is used by tests and local tooling; production tokens come
// from the identity service.
func SignAccessToken(secret string, id uint, roles []string, ttl time.Duration) (string, error) {
	signer := jwt.NewSigner(jwt.HS256, []byte(secret), ttl)
	token, err := signer.Sign(AccessToken{ID: id, Roles: roles})
	if err != nil {
		return "", err
	}
	return string(token), nil
}

// ActorFromContext returns the caller of a verified request. Routes without a
// verifier get the zero Actor.
func ActorFromContext(ctx iris.Context) services.Actor {
	if actor, ok := ctx.Values().Get(actorContextKey).(services.Actor); ok {
		return actor
	}
	claims, ok := jwt.Get(ctx).(*AccessToken)
	if !ok || claims == nil {
		return services.Actor{}
	}
	return claims.Actor()
}
