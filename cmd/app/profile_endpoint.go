package main

import (
	"errors"
	"net/http"

	"github.com/stackltd/API-for-onlinestore/internal/middleware"
	"github.com/stackltd/API-for-onlinestore/internal/model"
	"github.com/stackltd/API-for-onlinestore/internal/services"

	"github.com/labstack/echo/v4"
)

type changePasswordRequest struct {
	CurrentPassword string `json:"passwordCurrent"`
	Password        string `json:"password"`
	PasswordReply   string `json:"passwordReply"`
}

func registerProfileRoutes(g *echo.Group, ps *services.ProfileService, as *services.AuthService) {
	p := g.Group("/profile")
	p.Use(middleware.JWTMiddleware())

	// GET profile
	p.GET("", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		profile, err := ps.Get(c.Request().Context(), claims.UserID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "internal error"})
		}
		return c.JSON(http.StatusOK, profile)
	})

	// UPDATE profile
	p.POST("", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		patch := new(model.ProfilePatch)
		if err := c.Bind(patch); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "invalid request"})
		}
		profile, err := ps.Update(c.Request().Context(), claims.UserID, *patch)
		if err != nil {
			if errors.Is(err, services.ErrValidation) {
				return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "internal error"})
		}
		return c.JSON(http.StatusOK, profile)
	})

	// CHANGE password
	p.POST("/password", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		req := new(changePasswordRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "invalid request"})
		}
		err := as.ChangePassword(c.Request().Context(), claims.UserID, req.CurrentPassword, req.Password, req.PasswordReply)
		if err != nil {
			if errors.Is(err, services.ErrValidation) {
				return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "internal error"})
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "successful operation"})
	})
}
