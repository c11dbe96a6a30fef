package router

import (
	"net/http"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"reviewbox/internal/action"
	"reviewbox/internal/auth"
	"reviewbox/internal/config"
	"reviewbox/internal/handler"
	"reviewbox/internal/repository"
	"reviewbox/internal/validation"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	userRepo repository.UserRepository,
	authHandler *handler.AuthHandler,
	productHandler *handler.ProductHandler,
	reviewHandler *handler.ReviewHandler,
	uploadHandler *handler.UploadHandler,
	planHandler *handler.PlanHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	// Add validator
	e.Validator = &CustomValidator{}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/plans", planHandler.List)

	// Anonymous review routes: visitors are identified by network address only.
	api.GET("/r/:slug", productHandler.GetPage)
	api.POST("/reviews", reviewHandler.Upsert)
	api.GET("/reviews/:id", reviewHandler.Get)
	api.POST("/reviews/:id/audio", reviewHandler.ProcessAudio)

	// Secured routes (require JWT authentication and a resolvable user)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}), resolveUser(userRepo))

	// Product routes
	secured.POST("/products", productHandler.Create)
	secured.GET("/products", productHandler.List)
	secured.GET("/products/:id", productHandler.Get)
	secured.PUT("/products/:id", productHandler.Update)
	secured.DELETE("/products/:id", productHandler.Delete)

	// Upload routes
	secured.POST("/uploads", uploadHandler.Upload)

	secured.GET("/me", func(c echo.Context) error {
		return c.JSON(http.StatusOK, action.OK(handler.CurrentUser(c)))
	})
}

// resolveUser loads the user named by the verified JWT and injects it into
// the request context. It runs strictly before any handler logic, so a
// missing session short-circuits with no side effects.
func resolveUser(userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return c.JSON(http.StatusUnauthorized, action.Fail("Unauthorized"))
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, action.Fail("Unauthorized"))
			}
			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, action.Fail("Unauthorized"))
			}
			user, err := userRepo.FindByID(c.Request().Context(), userID)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, action.Fail("Unauthorized"))
			}
			c.Set(handler.CurrentUserKey, user)
			return next(c)
		}
	}
}

// CustomValidator wraps the shared validator for Echo.
type CustomValidator struct{}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return validation.Struct(i)
}
