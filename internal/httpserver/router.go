package httpserver

import (
	"context"
	"log"

	"marketplace-backend/internal/domain"
	cartsvc "marketplace-backend/internal/service/cart"
	ordersvc "marketplace-backend/internal/service/order"
	"marketplace-backend/internal/service/orderquery"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CartService is the cart aggregate surface the handlers consume.
type CartService interface {
	MergeAdd(ctx context.Context, customerID, shopID string, items []cartsvc.AddItemInput) (*cartsvc.MergeResult, error)
	UpdateItemQuantity(ctx context.Context, customerID, shopID, productID string, quantity int) (*cartsvc.UpdateResult, error)
	Delete(ctx context.Context, customerID, shopID string) error
	ListForCustomer(ctx context.Context, customerID string) ([]cartsvc.View, error)
}

// OrderService is the order aggregate surface the handlers consume.
type OrderService interface {
	Create(ctx context.Context, in ordersvc.CreateInput) (*domain.Order, error)
	CancelItem(ctx context.Context, orderID, productID string, quantity int, cancelledBy string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error)
	VerifyOTPAndDeliver(ctx context.Context, orderID, otp string) (*domain.Order, error)
}

// OrderQueryService is the read side for order listings and details.
type OrderQueryService interface {
	ListByCustomer(ctx context.Context, customerID string) ([]orderquery.OrderView, error)
	ListByShop(ctx context.Context, shopID string) ([]orderquery.OrderView, error)
	GetByID(ctx context.Context, orderID string) (*orderquery.OrderView, error)
}

// Directory lookups for the thin read-only collaborator endpoints.
type ProductDirectory interface {
	ListByShop(ctx context.Context, shopID string) ([]domain.Product, error)
}

type CustomerDirectory interface {
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
}

type ShopDirectory interface {
	GetByID(ctx context.Context, id string) (*domain.Shop, error)
}

// Deps carries everything the router needs.
type Deps struct {
	CartSvc     CartService
	OrderSvc    OrderService
	OrderQuery  OrderQueryService
	ProductDir  ProductDirectory
	CustomerDir CustomerDirectory
	ShopDir     ShopDirectory
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type", "Authorization"},
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")
	api.GET("/health", healthHandler)

	carts := api.Group("/cart")
	carts.POST("", addToCart(deps.CartSvc))
	carts.GET("/customer/:customerId", getCartsByCustomer(deps.CartSvc))
	carts.PATCH("/:customerId/:shopId/item/:productId", updateCartItem(deps.CartSvc))
	carts.DELETE("/:customerId/:shopId", deleteCart(deps.CartSvc))

	orders := api.Group("/orders")
	orders.POST("", createOrder(deps.OrderSvc))
	orders.GET("/customer/:customerId", getOrdersByCustomer(deps.OrderQuery))
	orders.GET("/shop/:shopId", getOrdersByShop(deps.OrderQuery))
	orders.GET("/:orderId", getOrder(deps.OrderQuery))
	orders.PATCH("/:orderId/status", updateOrderStatus(deps.OrderSvc))
	orders.POST("/:orderId/cancel-product", cancelOrderProduct(deps.OrderSvc, deps.OrderQuery))
	orders.PATCH("/:orderId/verify-otp", verifyOrderOTP(deps.OrderSvc))

	api.GET("/Shops/:shopId", getShop(deps.ShopDir))
	api.GET("/customers/:customerId", getCustomer(deps.CustomerDir))
	api.GET("/products/shop/:shopId", listShopProducts(deps.ProductDir))

	return router
}
