package httpserver

import (
	"net/http"

	cartsvc "marketplace-backend/internal/service/cart"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// addToCartRequest supports two payload shapes: a single product
// (productId + quantity) or a batch (items). Quantities are pointers so that
// an absent quantity can default to one unit downstream.
type addToCartRequest struct {
	CustomerID string          `json:"customerId"`
	ShopID     string          `json:"shopId"`
	ProductID  string          `json:"productId"`
	Quantity   *int            `json:"quantity"`
	Items      []addToCartItem `json:"items"`
}

type addToCartItem struct {
	ProductID string `json:"productId"`
	Quantity  *int   `json:"quantity"`
}

func addToCart(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addToCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondFail(c, http.StatusBadRequest, "invalid request body")
			return
		}

		items := make([]cartsvc.AddItemInput, 0, len(req.Items)+1)
		for _, item := range req.Items {
			items = append(items, cartsvc.AddItemInput{ProductID: item.ProductID, Quantity: intOrZero(item.Quantity)})
		}
		if len(items) == 0 && req.ProductID != "" {
			items = append(items, cartsvc.AddItemInput{ProductID: req.ProductID, Quantity: intOrZero(req.Quantity)})
		}

		res, err := svc.MergeAdd(c.Request.Context(), req.CustomerID, req.ShopID, items)
		if err != nil {
			respondError(c, err)
			return
		}
		if res.Created {
			respond(c, http.StatusCreated, "Cart created", res.Cart)
			return
		}
		respond(c, http.StatusOK, "Items merged into cart", res.Cart)
	}
}

func getCartsByCustomer(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID := c.Param("customerId")
		if _, err := uuid.Parse(customerID); err != nil {
			respondFail(c, http.StatusBadRequest, "Invalid customerId")
			return
		}

		views, err := svc.ListForCustomer(c.Request.Context(), customerID)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, "", views)
	}
}

type updateCartItemRequest struct {
	Quantity *int `json:"quantity"`
}

func updateCartItem(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
			respondFail(c, http.StatusBadRequest, "Quantity must be a number")
			return
		}

		res, err := svc.UpdateItemQuantity(
			c.Request.Context(),
			c.Param("customerId"),
			c.Param("shopId"),
			c.Param("productId"),
			*req.Quantity,
		)
		if err != nil {
			respondError(c, err)
			return
		}
		if res.Deleted {
			respond(c, http.StatusOK, "Item removed and cart deleted", nil)
			return
		}
		respond(c, http.StatusOK, "Cart updated", res.Cart)
	}
}

func deleteCart(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := svc.Delete(c.Request.Context(), c.Param("customerId"), c.Param("shopId"))
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, "Cart deleted", nil)
	}
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
