package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Thin read-only endpoints for the directory collaborators. No business
// logic lives here.

func getShop(dir ShopDirectory) gin.HandlerFunc {
	return func(c *gin.Context) {
		shopID := c.Param("shopId")
		if _, err := uuid.Parse(shopID); err != nil {
			respondFail(c, http.StatusBadRequest, "Invalid shopId")
			return
		}

		shop, err := dir.GetByID(c.Request.Context(), shopID)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, "", shop)
	}
}

func getCustomer(dir CustomerDirectory) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID := c.Param("customerId")
		if _, err := uuid.Parse(customerID); err != nil {
			respondFail(c, http.StatusBadRequest, "Invalid customerId")
			return
		}

		customer, err := dir.GetByID(c.Request.Context(), customerID)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, "", customer)
	}
}

func listShopProducts(dir ProductDirectory) gin.HandlerFunc {
	return func(c *gin.Context) {
		shopID := c.Param("shopId")
		if _, err := uuid.Parse(shopID); err != nil {
			respondFail(c, http.StatusBadRequest, "Invalid shopId")
			return
		}

		products, err := dir.ListByShop(c.Request.Context(), shopID)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, "", products)
	}
}
