package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/kkorolev/shop-cart/internal/logging"
)

// EventPublisher is the slice of the Kafka producer the handlers need.
type EventPublisher interface {
	PublishEvent(ctx context.Context, eventType, key string, data any) error
}

func (h *CartHTTP) publish(c echo.Context, eventType string, data map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	key, _ := data["email"].(string)
	if err := h.Events.PublishEvent(ctx, eventType, key, data); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

// GetEmail extracts the authenticated member's email from the accessToken
// cookie. Authentication itself happens upstream; only the claim is read here.
func GetEmail(c echo.Context, jwtSecret []byte) (string, error) {
	cookie, err := c.Cookie("accessToken")
	if err != nil {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing auth cookie")
	}
	tokenString := cookie.Value
	if tokenString == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "empty token")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return jwtSecret, nil
	})
	if err != nil {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid token: "+err.Error())
	}
	if !token.Valid {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid email claim")
	}

	return email, nil
}
