package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/ledgerly/ledgerly-backend/internal/middleware"
)

// setupAuthContext injects the values the auth middleware would set for an
// authenticated request.
func setupAuthContext(c echo.Context, userID uuid.UUID, username string) {
	ctx := c.Request().Context()
	ctx = context.WithValue(ctx, middleware.UserIDKey, userID)
	ctx = context.WithValue(ctx, middleware.UsernameKey, username)
	c.SetRequest(c.Request().WithContext(ctx))
}
