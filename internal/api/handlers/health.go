package handlers

import (
	"net/http"

	"agri-market/internal/api/models"
	"agri-market/internal/data"

	"github.com/gin-gonic/gin"
)

// ClientCounter reports connected notification clients.
type ClientCounter interface {
	ClientCount() int
}

// Health handles GET /health. It answers 503 until a dataset is loaded.
func Health(store *data.Store, clients ClientCounter) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := models.HealthResponse{Status: "ok", Source: store.SourceName()}
		if clients != nil {
			resp.Clients = clients.ClientCount()
		}
		ds, err := store.Current()
		if err != nil {
			resp.Status = "loading"
			c.JSON(http.StatusServiceUnavailable, resp)
			return
		}
		resp.DatasetVersion = ds.Version
		c.JSON(http.StatusOK, resp)
	}
}
