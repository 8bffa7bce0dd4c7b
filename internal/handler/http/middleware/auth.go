package middleware

import (
	"context"
	"net/http"

	"github.com/fleetdesk/fleet-backend-go/internal/domain/user"
	"github.com/fleetdesk/fleet-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

type actorKey struct{}

// AuthRequired accepts only verified access tokens and stores the caller's
// identity on the request context.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.HandleError(w, user.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.HandleError(w, user.ErrInvalidToken)
				return
			}

			actor, err := actorFromClaims(claims)
			if err != nil {
				response.HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		}
		return http.HandlerFunc(hfn)
	}
}

func actorFromClaims(claims map[string]interface{}) (user.Actor, error) {
	id, _ := claims["user_id"].(string)
	roleStr, _ := claims["role"].(string)
	role := user.Role(roleStr)
	if id == "" || !role.Valid() {
		return user.Actor{}, user.ErrInvalidToken
	}

	actor := user.Actor{ID: id, Role: role}
	if branchID, ok := claims["branch_id"].(string); ok && branchID != "" {
		actor.BranchID = &branchID
	}
	return actor, nil
}

func WithActor(ctx context.Context, actor user.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the identity stored by AuthRequired.
func ActorFromContext(ctx context.Context) (user.Actor, error) {
	actor, ok := ctx.Value(actorKey{}).(user.Actor)
	if !ok {
		return user.Actor{}, user.ErrInvalidToken
	}
	return actor, nil
}
