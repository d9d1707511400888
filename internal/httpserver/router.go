package httpserver

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// buildRouter wires the cart API routes the storefront glue consumes.
func buildRouter(logger *log.Logger, store *CartStore) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowCredentials = false
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)

	router.GET("/w/cart", getCartHandler(store))
	router.POST("/w/cart/order_items", updateOrderItemsHandler(store, logger))
	router.GET("/w/checkout/payment", paymentHandler)

	return router
}
