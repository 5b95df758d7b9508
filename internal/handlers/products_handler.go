package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/acmeshop/storefront/internal/catalog"
	"github.com/acmeshop/storefront/internal/storage"
	"github.com/acmeshop/storefront/internal/validation"
)

// ProductsConfig groups dependencies for the catalog handlers.
type ProductsConfig struct {
	Store *catalog.Store
}

// RegisterProductRoutes registers catalog administration and listing routes.
func RegisterProductRoutes(r *gin.Engine, cfg ProductsConfig) {
	v := validation.New()

	listHandler := func(c *gin.Context) {
		q, err := parseListQuery(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_query", "msg": err.Error()})
			return
		}
		products, err := cfg.Store.List(c.Request.Context(), q)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list_failed"})
			return
		}
		c.JSON(http.StatusOK, products)
	}

	r.GET("/products", listHandler)

	r.GET("/products/:id", func(c *gin.Context) {
		// gin's tree cannot hold a static /products/search next to the :id
		// wildcard, so the web client's search path is handled here.
		if c.Param("id") == "search" {
			listHandler(c)
			return
		}
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_product_id"})
			return
		}
		product, err := cfg.Store.Get(c.Request.Context(), id)
		if errors.Is(err, storage.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "get_failed"})
			return
		}
		c.JSON(http.StatusOK, product)
	})

	r.POST("/products", func(c *gin.Context) {
		var req validation.ProductRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}
		product := productFromRequest(req)
		if err := cfg.Store.Create(c.Request.Context(), &product); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "create_failed"})
			return
		}
		c.Header("Location", "/products/"+strconv.FormatInt(product.ID, 10))
		c.JSON(http.StatusCreated, product)
	})

	r.PUT("/products/:id", func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_product_id"})
			return
		}
		var req validation.ProductRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		existing, err := cfg.Store.Get(c.Request.Context(), id)
		if errors.Is(err, storage.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "get_failed"})
			return
		}

		updated := productFromRequest(req)
		updated.ID = existing.ID
		updated.CreatedAt = existing.CreatedAt
		if err := cfg.Store.Update(c.Request.Context(), &updated); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update_failed"})
			return
		}
		c.JSON(http.StatusOK, updated)
	})

	r.DELETE("/products/:id", func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_product_id"})
			return
		}
		err = cfg.Store.Delete(c.Request.Context(), id)
		if errors.Is(err, storage.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "delete_failed"})
			return
		}
		c.Status(http.StatusNoContent)
	})
}

func productFromRequest(req validation.ProductRequest) catalog.Product {
	return catalog.Product{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		IsOnSale:     req.IsOnSale,
		SalePrice:    req.SalePrice,
		CurrentStock: req.CurrentStock,
		ImageURL:     req.ImageURL,
	}
}

func parseListQuery(c *gin.Context) (catalog.ListQuery, error) {
	q := catalog.ListQuery{
		Name:    c.Query("name"),
		SortBy:  c.DefaultQuery("sortBy", "name"),
		SortDir: c.DefaultQuery("sortDir", catalog.SortAsc),
	}
	if s := c.Query("minPrice"); s != "" {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return q, err
		}
		q.MinPrice = decimal.NewNullDecimal(d)
	}
	if s := c.Query("maxPrice"); s != "" {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return q, err
		}
		q.MaxPrice = decimal.NewNullDecimal(d)
	}
	if s := c.Query("onSale"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return q, err
		}
		q.OnSale = &b
	}
	if s := c.Query("inStock"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return q, err
		}
		q.InStock = b
	}
	return q, nil
}
