package middleware

import (
	"log"
	"net/http"
	"net/url"
	"time"

	"orderhub/internal/domain/entities"
	"orderhub/internal/usecase/interfaces"
	"orderhub/pkg"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
)

const (
	ctxUserIDKey = "user_id"
	ctxActorKey  = "actor"
)

var (
	errInvalidToken   = pkg.NewDomainErrorSimple("INVALID_TOKEN", "Failed to validate token", http.StatusUnauthorized)
	errUnknownProfile = pkg.NewDomainErrorSimple("UNKNOWN_PROFILE", "No profile found for authenticated user", http.StatusForbidden)
)

// EnsureValidToken validates the bearer JWT against the issuer's JWKS and
// stores the subject claim as user_id.
func EnsureValidToken(issuerDomain, audience string) gin.HandlerFunc {
	issuerURL, err := url.Parse("https://" + issuerDomain + "/")
	if err != nil {
		log.Fatalf("failed to parse the issuer url: %v", err)
	}

	provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)

	jwtValidator, err := validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{audience},
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		log.Fatalf("failed to set up the jwt validator: %v", err)
	}

	errorHandler := func(w http.ResponseWriter, r *http.Request, err error) {
		log.Printf("[auth][middleware] token validation failed: %v", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code":"INVALID_TOKEN","message":"Failed to validate token"}`))
	}

	mw := jwtmiddleware.New(
		jwtValidator.ValidateToken,
		jwtmiddleware.WithErrorHandler(errorHandler),
	)

	return func(c *gin.Context) {
		var handler http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
			token, ok := r.Context().Value(jwtmiddleware.ContextKey{}).(*validator.ValidatedClaims)
			if !ok {
				c.AbortWithStatusJSON(errInvalidToken.HTTPStatus, errInvalidToken.ToHTTPError())
				return
			}
			c.Set(ctxUserIDKey, token.RegisteredClaims.Subject)
			c.Next()
		}
		mw.CheckJWT(handler).ServeHTTP(c.Writer, c.Request)
	}
}

// HeaderIdentity trusts the X-User-ID header as the caller identity. Only for
// local development when no token issuer is configured.
func HeaderIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-User-ID")
		if id == "" {
			c.AbortWithStatusJSON(errInvalidToken.HTTPStatus, errInvalidToken.ToHTTPError())
			return
		}
		c.Set(ctxUserIDKey, id)
		c.Next()
	}
}

// ResolveActor turns the authenticated user_id into a domain actor by looking
// up its profile. Requests without a stored profile are rejected; role checks
// downstream rely on the actor being fully resolved here.
func ResolveActor(profiles interfaces.IProfileRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := c.Get(ctxUserIDKey)
		if !ok {
			c.AbortWithStatusJSON(errInvalidToken.HTTPStatus, errInvalidToken.ToHTTPError())
			return
		}

		id, _ := userID.(string)
		profile, err := profiles.GetByID(c.Request.Context(), id)
		if err != nil {
			log.Printf("[auth][middleware] profile lookup failed user_id=%s err=%v", id, err)
			appErr := pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
		if profile.ID == "" || !profile.Role.IsValid() {
			c.AbortWithStatusJSON(errUnknownProfile.HTTPStatus, errUnknownProfile.ToHTTPError())
			return
		}

		c.Set(ctxActorKey, entities.Actor{ID: profile.ID, Role: profile.Role})
		c.Next()
	}
}

// ActorFromContext returns the resolved actor. ok is false when the request
// passed no auth middleware, which only happens on misconfigured routes.
func ActorFromContext(c *gin.Context) (entities.Actor, bool) {
	v, exists := c.Get(ctxActorKey)
	if !exists {
		return entities.Actor{}, false
	}
	actor, ok := v.(entities.Actor)
	return actor, ok
}

// SetActor stores the actor directly. Used by tests and by deployments that
// terminate auth upstream and forward identity headers.
func SetActor(c *gin.Context, actor entities.Actor) {
	c.Set(ctxActorKey, actor)
}
