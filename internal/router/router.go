package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // Echo web framework used for routing
	"github.com/redis/go-redis/v9"

	"github.com/quizforge/quizforge-go/internal/config"
	"github.com/quizforge/quizforge-go/internal/handler"
	"github.com/quizforge/quizforge-go/internal/middleware"
	"github.com/quizforge/quizforge-go/internal/model"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check, used
// by load balancers to verify that the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth wires the authentication endpoints.  Register, login and
// refresh live under /v1/auth and are public by definition; /v1/auth/me
// requires a valid access token.  There is no logout route: tokens are
// stateless and logging out is the client discarding its pair.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, accessSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.GET("/me", a.Me, middleware.JWTAuth(accessSecret))
}

// RegisterQuiz wires the quiz endpoints.  The split between public and
// authenticated routes is explicit here rather than inferred from handler
// metadata: browse/play/submit/generate are public, while authoring
// operations take the JWT middleware per route.  The read-only public
// routes additionally go through the Redis response cache.
func RegisterQuiz(e *echo.Echo, q *handler.QuizHandler, accessSecret string, rdb *redis.Client, cacheCfg config.CacheConfig) {
	auth := middleware.JWTAuth(accessSecret)
	cache := middleware.Cache(rdb, cacheCfg)

	// Public browse and gameplay.
	e.GET("/v1/quizzes", q.List, cache)
	e.GET("/v1/quizzes/:id", q.Get)
	e.GET("/v1/quizzes/:id/play", q.Play, cache)
	e.POST("/v1/quizzes/:id/submit", q.Submit)
	e.POST("/v1/quizzes/generate-questions", q.Generate)

	// Authoring requires a bearer token.  The static routes (mine, all)
	// must be registered so Echo prefers them over the :id parameter.
	e.POST("/v1/quizzes", q.Create, auth)
	e.GET("/v1/quizzes/mine", q.Mine, auth)
	e.GET("/v1/quizzes/all", q.All, auth)
	e.PUT("/v1/quizzes/:id", q.Update, auth)
	e.DELETE("/v1/quizzes/:id", q.Delete, auth)
}

// RegisterUsers wires the admin-only user listing.
func RegisterUsers(e *echo.Echo, u *handler.UserHandler, accessSecret string) {
	e.GET("/v1/users", u.List,
		middleware.JWTAuth(accessSecret),
		middleware.RequireRole(model.RoleAdmin))
}
