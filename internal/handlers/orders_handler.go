package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/acmeshop/storefront/internal/orders"
	"github.com/acmeshop/storefront/internal/payments"
	"github.com/acmeshop/storefront/internal/storage"
	"github.com/acmeshop/storefront/internal/validation"
)

// OrdersConfig groups dependencies for the order handlers.
type OrdersConfig struct {
	Assembler  *orders.Assembler
	Reconciler *orders.Reconciler
	Store      *orders.Store
}

// RegisterOrderRoutes registers order creation, lookup, checkout and
// payment-reconciliation routes.
func RegisterOrderRoutes(r *gin.Engine, cfg OrdersConfig) {
	v := validation.New()

	r.POST("/api/orders", func(c *gin.Context) {
		var req validation.CreateOrderRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		result, err := cfg.Assembler.CreateOrder(c.Request.Context(), req.CustomerEmail, toLineItems(req.Items))
		if err != nil {
			writeOrderError(c, err)
			return
		}

		c.Header("Location", fmt.Sprintf("/api/orders/%d", result.Order.ID))
		c.JSON(http.StatusCreated, result.Order)
	})

	// The web client posts the cart here and follows the returned URL to the
	// processor's hosted checkout page.
	r.POST("/api/checkout/create-session", func(c *gin.Context) {
		var req validation.CreateOrderRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		result, err := cfg.Assembler.CreateOrder(c.Request.Context(), req.CustomerEmail, toLineItems(req.Items))
		if err != nil {
			writeOrderError(c, err)
			return
		}

		resp := gin.H{"orderId": result.Order.ID, "url": result.RedirectURL}
		if result.Order.CheckoutSessionID != nil {
			resp["sessionId"] = *result.Order.CheckoutSessionID
		}
		c.JSON(http.StatusOK, resp)
	})

	r.GET("/api/orders/:id", func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_order_id"})
			return
		}
		order, err := cfg.Store.GetWithItems(c.Request.Context(), id)
		if errors.Is(err, storage.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "get_failed"})
			return
		}
		c.JSON(http.StatusOK, order)
	})

	// Polled by the confirmation page after the processor redirects back.
	// Registered under the :id wildcard because gin's tree cannot hold a
	// static /api/orders/session next to it.
	r.GET("/api/orders/:id/:sessionToken", func(c *gin.Context) {
		if c.Param("id") != "session" {
			c.Status(http.StatusNotFound)
			return
		}
		order, err := cfg.Reconciler.Reconcile(c.Request.Context(), c.Param("sessionToken"))
		if err != nil {
			writeOrderError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	})
}

func toLineItems(items []validation.CartItemRequest) []orders.LineItem {
	out := make([]orders.LineItem, 0, len(items))
	for _, it := range items {
		out = append(out, orders.LineItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return out
}

// writeOrderError maps order-workflow failures onto the HTTP surface:
// empty cart and unknown product ids are 400s, a missing order is a 404,
// processor failures are 400s carrying the processor's message.
func writeOrderError(c *gin.Context, err error) {
	var (
		invalidRef *orders.InvalidReferenceError
		upstream   *payments.UpstreamError
	)
	switch {
	case errors.Is(err, orders.ErrEmptyOrder):
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty_cart", "msg": "Cart is empty"})
	case errors.As(err, &invalidRef):
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown_product", "msg": invalidRef.Error()})
	case errors.As(err, &upstream):
		c.JSON(http.StatusBadRequest, gin.H{"error": "payment_provider_error", "msg": upstream.Msg})
	case errors.Is(err, storage.ErrNotFound):
		c.Status(http.StatusNotFound)
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	}
}
