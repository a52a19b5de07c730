package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/stackltd/API-for-onlinestore/internal/middleware"
	"github.com/stackltd/API-for-onlinestore/internal/model"
	"github.com/stackltd/API-for-onlinestore/internal/services"

	"github.com/labstack/echo/v4"
)

type confirmOrderRequest struct {
	model.ContactPatch
	Products []model.LineItem `json:"products"`
}

func registerOrderRoutes(g *echo.Group, os *services.OrderService) {
	p := g.Group("")
	p.Use(middleware.JWTMiddleware())

	// LIST orders
	p.GET("/orders", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		orders, err := os.ListByUser(c.Request().Context(), claims.UserID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "internal error"})
		}
		return c.JSON(http.StatusOK, orders)
	})

	// CREATE order
	p.POST("/orders", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		var items []model.LineItem
		if err := c.Bind(&items); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "invalid request"})
		}
		id, err := os.Create(c.Request().Context(), claims.UserID, items)
		if err != nil {
			if errors.Is(err, services.ErrValidation) {
				return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "internal error"})
		}
		return c.JSON(http.StatusOK, map[string]int64{"orderId": id})
	})

	// GET order
	p.GET("/order/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusNotFound, map[string]string{"message": "order not found"})
		}
		detail, err := os.Get(c.Request().Context(), id)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				return c.JSON(http.StatusNotFound, map[string]string{"message": "order not found"})
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "internal error"})
		}
		return c.JSON(http.StatusOK, detail)
	})

	// CONFIRM order
	p.POST("/order/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusNotFound, map[string]string{"message": "order not found"})
		}
		req := new(confirmOrderRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "invalid request"})
		}
		confirmed, err := os.Confirm(c.Request().Context(), id, req.ContactPatch, req.Products)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				return c.JSON(http.StatusNotFound, map[string]string{"message": "order not found"})
			}
			if errors.Is(err, services.ErrValidation) {
				return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "internal error"})
		}
		// confirmed is nil when the order was already completed
		return c.JSON(http.StatusOK, map[string]*int64{"orderId": confirmed})
	})
}
