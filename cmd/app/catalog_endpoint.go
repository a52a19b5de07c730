package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/stackltd/API-for-onlinestore/internal/model"
	"github.com/stackltd/API-for-onlinestore/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// catalogFilterFrom parses the filter[...] query parameters of the catalog
// listing. Unparsable numbers are ignored rather than rejected.
func catalogFilterFrom(c echo.Context) (model.CatalogFilter, *int64) {
	var f model.CatalogFilter
	f.Name = c.QueryParam("filter[name]")
	if v := c.QueryParam("filter[minPrice]"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			f.MinPrice = &d
		}
	}
	if v := c.QueryParam("filter[maxPrice]"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			f.MaxPrice = &d
		}
	}
	f.Available = c.QueryParam("filter[available]") == "true"
	f.FreeDelivery = c.QueryParam("filter[freeDelivery]") == "true"
	if v := c.QueryParam("tag"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.TagID = &id
		}
	}
	var categoryID *int64
	if v := c.QueryParam("category"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			categoryID = &id
		}
	}
	return f, categoryID
}

func registerCatalogRoutes(g *echo.Group, cs *services.CatalogService) {
	// LIST catalog
	g.GET("/catalog", func(c echo.Context) error {
		f, categoryID := catalogFilterFrom(c)
		items, err := cs.List(c.Request().Context(), f, categoryID)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				return c.JSON(http.StatusNotFound, map[string]string{"message": err.Error()})
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "internal error"})
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"items": items})
	})

	// GET product
	g.GET("/product/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusNotFound, map[string]string{"message": "product not found"})
		}
		view, err := cs.Get(c.Request().Context(), id)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				return c.JSON(http.StatusNotFound, map[string]string{"message": "product not found"})
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "internal error"})
		}
		return c.JSON(http.StatusOK, view)
	})

	// ADD review
	g.POST("/product/:id/reviews", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusNotFound, map[string]string{"message": "product not found"})
		}
		rv := new(model.Review)
		if err := c.Bind(rv); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "invalid request"})
		}
		created, err := cs.AddReview(c.Request().Context(), id, *rv)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				return c.JSON(http.StatusNotFound, map[string]string{"message": "product not found"})
			}
			if errors.Is(err, services.ErrValidation) {
				return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "internal error"})
		}
		return c.JSON(http.StatusOK, created)
	})

	// LIST categories
	g.GET("/categories", func(c echo.Context) error {
		tree, err := cs.CategoryTree(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "internal error"})
		}
		return c.JSON(http.StatusOK, tree)
	})

	// LIST tags
	g.GET("/tags", func(c echo.Context) error {
		var categoryID *int64
		if v := c.QueryParam("category"); v != "" {
			if id, err := strconv.ParseInt(v, 10, 64); err == nil {
				categoryID = &id
			}
		}
		tags, err := cs.ListTags(c.Request().Context(), categoryID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "internal error"})
		}
		return c.JSON(http.StatusOK, tags)
	})

	// BANNERS
	g.GET("/banners", func(c echo.Context) error {
		items, err := cs.Banners(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "internal error"})
		}
		return c.JSON(http.StatusOK, items)
	})

	// POPULAR products
	g.GET("/products/popular", func(c echo.Context) error {
		items, err := cs.Popular(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "internal error"})
		}
		return c.JSON(http.StatusOK, items)
	})

	// LIMITED products
	g.GET("/products/limited", func(c echo.Context) error {
		items, err := cs.Limited(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "internal error"})
		}
		return c.JSON(http.StatusOK, items)
	})

	// SALES
	g.GET("/sales", func(c echo.Context) error {
		items, err := cs.Sales(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "internal error"})
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"items": items})
	})
}
