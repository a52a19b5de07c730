package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/stackltd/API-for-onlinestore/internal/middleware"
	"github.com/stackltd/API-for-onlinestore/internal/services"

	"github.com/labstack/echo/v4"
)

func registerPaymentRoutes(g *echo.Group, ps *services.PaymentService) {
	p := g.Group("/payment")
	p.Use(middleware.JWTMiddleware())

	// PAY order
	p.POST("/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusNotFound, map[string]string{"message": "order not found"})
		}
		payload := map[string]interface{}{}
		if err := c.Bind(&payload); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "invalid request"})
		}
		if err := ps.Record(c.Request().Context(), id, payload); err != nil {
			if errors.Is(err, services.ErrNotFound) {
				return c.JSON(http.StatusNotFound, map[string]string{"message": "order not found"})
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "internal error"})
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "successful operation"})
	})
}
