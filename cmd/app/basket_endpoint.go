package main

import (
	"errors"
	"net/http"

	"github.com/stackltd/API-for-onlinestore/internal/middleware"
	"github.com/stackltd/API-for-onlinestore/internal/services"

	"github.com/labstack/echo/v4"
)

type changeBasketRequest struct {
	ID    int64 `json:"id"`
	Count int   `json:"count"`
}

// identityFrom resolves the request to a basket identity: the JWT user when
// a valid bearer token is present, the anonymous session token otherwise.
func identityFrom(c echo.Context) services.Identity {
	if cl := middleware.TryGetClaimsFromAuthHeader(c); cl != nil {
		return services.Identity{UserID: cl.UserID}
	}
	return services.Identity{Token: middleware.AnonToken(c)}
}

func registerBasketRoutes(g *echo.Group, bs *services.BasketService, anon echo.MiddlewareFunc) {
	p := g.Group("/basket")
	p.Use(anon)

	// GET basket
	p.GET("", func(c echo.Context) error {
		lines, err := bs.Get(c.Request().Context(), identityFrom(c))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "internal error"})
		}
		return c.JSON(http.StatusOK, lines)
	})

	// ADD item
	p.POST("", func(c echo.Context) error {
		req := new(changeBasketRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "invalid request"})
		}
		if req.Count == 0 {
			req.Count = 1
		}
		if err := bs.Add(c.Request().Context(), identityFrom(c), req.ID, req.Count); err != nil {
			if errors.Is(err, services.ErrValidation) || errors.Is(err, services.ErrNotFound) {
				return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "internal error"})
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "successful operation"})
	})

	// REMOVE item
	p.DELETE("", func(c echo.Context) error {
		req := new(changeBasketRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "invalid request"})
		}
		if req.Count == 0 {
			req.Count = 1
		}
		if err := bs.Remove(c.Request().Context(), identityFrom(c), req.ID, req.Count); err != nil {
			if errors.Is(err, services.ErrValidation) || errors.Is(err, services.ErrNotFound) {
				return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "internal error"})
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "successful operation"})
	})
}
