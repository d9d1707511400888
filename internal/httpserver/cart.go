package httpserver

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionCookie = "cart_session"

type orderItemsRequest struct {
	OrderItems []orderItemUpdate `json:"order_items" binding:"required"`
}

type orderItemUpdate struct {
	VariantID int64 `json:"variant_id"`
	Quantity  int   `json:"quantity"`
}

// sessionID reads the cart session cookie, minting one for new visitors.
func sessionID(c *gin.Context) string {
	if id, err := c.Cookie(sessionCookie); err == nil && id != "" {
		return id
	}
	id := uuid.NewString()
	c.SetCookie(sessionCookie, id, 0, "/", "", false, true)
	return id
}

func getCartHandler(store *CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, store.Snapshot(sessionID(c)))
	}
}

func updateOrderItemsHandler(store *CartStore, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req orderItemsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Printf("reject order items update: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order items payload"})
			return
		}

		sid := sessionID(c)
		snap := store.Snapshot(sid)
		for _, update := range req.OrderItems {
			snap = store.SetQuantity(sid, update.VariantID, update.Quantity)
		}
		c.JSON(http.StatusOK, snap)
	}
}

// paymentHandler stands in for the payment recomputation endpoint; callers
// only look at success or failure.
func paymentHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
