package main

import (
	"errors"
	"net/http"

	"github.com/stackltd/API-for-onlinestore/internal/middleware"
	"github.com/stackltd/API-for-onlinestore/internal/services"

	"github.com/labstack/echo/v4"
)

type signUpRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type signInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func registerAuthRoutes(g *echo.Group, as *services.AuthService, bs *services.BasketService, anon echo.MiddlewareFunc) {
	// SIGN UP
	g.POST("/sign-up", func(c echo.Context) error {
		req := new(signUpRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "invalid request"})
		}
		user, err := as.SignUp(c.Request().Context(), req.Username, req.Name, req.Password)
		if err != nil {
			if errors.Is(err, services.ErrConflict) {
				return c.JSON(http.StatusConflict, map[string]string{"message": err.Error()})
			}
			if errors.Is(err, services.ErrValidation) {
				return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "internal error"})
		}
		if token := middleware.AnonToken(c); token != "" {
			if err := bs.MergeOnLogin(c.Request().Context(), user.ID, token); err != nil {
				return c.JSON(http.StatusInternalServerError, map[string]string{"message": "internal error"})
			}
		}
		token, err := middleware.GenerateToken(user.ID, user.Username, 72)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "internal error"})
		}
		return c.JSON(http.StatusOK, map[string]string{"token": token})
	}, anon)

	// SIGN IN
	g.POST("/sign-in", func(c echo.Context) error {
		req := new(signInRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "invalid request"})
		}
		user, err := as.SignIn(c.Request().Context(), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, services.ErrInvalidCredentials) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "invalid username or password"})
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "internal error"})
		}
		if token := middleware.AnonToken(c); token != "" {
			if err := bs.MergeOnLogin(c.Request().Context(), user.ID, token); err != nil {
				return c.JSON(http.StatusInternalServerError, map[string]string{"message": "internal error"})
			}
		}
		token, err := middleware.GenerateToken(user.ID, user.Username, 72)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "internal error"})
		}
		return c.JSON(http.StatusOK, map[string]string{"token": token})
	}, anon)

	// SIGN OUT
	g.POST("/sign-out", func(c echo.Context) error {
		// stateless tokens, nothing to revoke server side
		return c.JSON(http.StatusOK, map[string]string{"message": "successful operation"})
	})
}
