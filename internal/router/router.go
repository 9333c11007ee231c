package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/moritzgrimm/gigbook/internal/handler"
	"github.com/moritzgrimm/gigbook/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints. Unauthenticated
// operations live under /v1/auth; /v1/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterAPI registers the protected application routes: repertoire and
// venue management, committed events, and the draft state machine. All of
// them require a staff access token. cacheMW, when non-nil, is applied to
// the read-only listing routes.
func RegisterAPI(e *echo.Echo, jwtSecret string, cacheMW echo.MiddlewareFunc,
	rep *handler.RepertoireHandler, loc *handler.LocationHandler,
	ev *handler.EventHandler, d *handler.DraftHandler) {

	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))

	read := []echo.MiddlewareFunc{}
	if cacheMW != nil {
		read = append(read, cacheMW)
	}

	// Repertoire: list feeds the song selection widget; no delete path
	// exists so ids are never reused.
	g.GET("/repertoire", rep.List, read...)
	g.POST("/repertoire", rep.Create)
	g.PUT("/repertoire/:id", rep.Update)

	// Venues.
	g.GET("/locations", loc.List, read...)
	g.POST("/locations", loc.Create)

	// Committed gigs.
	g.GET("/events", ev.List, read...)
	g.GET("/events/:id", ev.Get)
	g.POST("/events/:id/setlist", ev.RegenerateSetlist)

	// Draft state machine. The draft itself is process-local; these routes
	// mutate the one in-progress gig composition.
	g.GET("/draft", d.Get)
	g.POST("/draft/start", d.Start)
	g.POST("/draft/load/:id", d.LoadExisting)
	g.PATCH("/draft", d.SetFields)
	g.PUT("/draft/songs", d.PutSongs)
	g.POST("/draft/commit", d.Commit)
	g.POST("/draft/cancel", d.Cancel)
}
