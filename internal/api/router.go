package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures the Gin router with all routes and middleware.
func SetupRouter(payments *PaymentHandler, products *ProductHandler, ginMode string) *gin.Engine {
	gin.SetMode(ginMode)

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(CORSMiddleware())
	router.Use(RequestIDMiddleware())

	// Liveness probe, stateless.
	router.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
	})

	api := router.Group("/api")
	{
		p := api.Group("/products")
		{
			p.GET("", products.ListProducts)
			p.GET("/:id", products.GetProduct)
			p.POST("", products.CreateProduct)
			p.PUT("/:id", products.UpdateProduct)
			p.DELETE("/:id", products.DeleteProduct)
		}

		pay := api.Group("/payments")
		{
			pay.POST("/create-intent", payments.CreatePaymentIntent)
			pay.POST("/confirm", payments.ConfirmPaymentIntent)
			// Called by the provider; authenticated by signature.
			pay.POST("/webhook", payments.HandleWebhook)
			pay.GET("/:id", payments.GetPaymentIntent)
			pay.POST("/:id/cancel", payments.CancelPaymentIntent)
		}
	}

	return router
}
