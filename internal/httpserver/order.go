package httpserver

import (
	"fmt"
	"net/http"

	"marketplace-backend/internal/domain"
	ordersvc "marketplace-backend/internal/service/order"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func createOrder(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in ordersvc.CreateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			respondFail(c, http.StatusBadRequest, "invalid request body")
			return
		}

		order, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusCreated, "Order created successfully", order)
	}
}

func getOrdersByCustomer(query OrderQueryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID := c.Param("customerId")
		if _, err := uuid.Parse(customerID); err != nil {
			respondFail(c, http.StatusBadRequest, "Invalid customerId")
			return
		}

		views, err := query.ListByCustomer(c.Request.Context(), customerID)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, "", views)
	}
}

func getOrdersByShop(query OrderQueryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		shopID := c.Param("shopId")
		if _, err := uuid.Parse(shopID); err != nil {
			respondFail(c, http.StatusBadRequest, "Invalid shopId")
			return
		}

		views, err := query.ListByShop(c.Request.Context(), shopID)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, "", views)
	}
}

func getOrder(query OrderQueryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderId")
		if _, err := uuid.Parse(orderID); err != nil {
			respondFail(c, http.StatusBadRequest, "Invalid orderId")
			return
		}

		view, err := query.GetByID(c.Request.Context(), orderID)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, "", view)
	}
}

type updateStatusRequest struct {
	OrderStatus string `json:"orderStatus"`
}

func updateOrderStatus(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondFail(c, http.StatusBadRequest, "invalid request body")
			return
		}

		order, err := svc.UpdateStatus(c.Request.Context(), c.Param("orderId"), domain.OrderStatus(req.OrderStatus))
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, "Order status updated", order)
	}
}

type cancelProductRequest struct {
	ProductID        string `json:"productId"`
	QuantityToCancel int    `json:"quantityToCancel"`
	CustomerID       string `json:"customerId"`
}

func cancelOrderProduct(svc OrderService, query OrderQueryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req cancelProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondFail(c, http.StatusBadRequest, "invalid request body")
			return
		}

		orderID := c.Param("orderId")
		order, err := svc.CancelItem(c.Request.Context(), orderID, req.ProductID, req.QuantityToCancel, req.CustomerID)
		if err != nil {
			respondError(c, err)
			return
		}

		msg := fmt.Sprintf("Successfully cancelled %d item(s) from order", req.QuantityToCancel)

		// Reply with the joined view when the read side can produce one.
		if view, err := query.GetByID(c.Request.Context(), orderID); err == nil {
			respond(c, http.StatusOK, msg, view)
			return
		}
		respond(c, http.StatusOK, msg, order)
	}
}

type verifyOTPRequest struct {
	OTP string `json:"otp"`
}

func verifyOrderOTP(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req verifyOTPRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondFail(c, http.StatusBadRequest, "invalid request body")
			return
		}

		order, err := svc.VerifyOTPAndDeliver(c.Request.Context(), c.Param("orderId"), req.OTP)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, "Order marked as delivered", order)
	}
}
