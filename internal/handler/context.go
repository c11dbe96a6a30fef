package handler

import (
	"github.com/labstack/echo/v4"

	"reviewbox/internal/model"
)

// CurrentUserKey is the context key the session middleware stores the
// resolved user under.
const CurrentUserKey = "currentUser"

// CurrentUser returns the authenticated user resolved by the session
// middleware, or nil for anonymous requests.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(CurrentUserKey).(*model.User)
	return user
}
