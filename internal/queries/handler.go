package queries

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"docmanager-backend/internal/shared/server/respond"
)

// Handler exposes the document query endpoint. Retrieval against stored
// documents is not implemented yet; Process echoes an acknowledgement so
// clients can integrate against the final contract.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

type queryResponse struct {
	Response string `json:"response"`
}

// Process handles GET /queries/query.
func (h *Handler) Process(c *gin.Context) {
	q := strings.TrimSpace(c.Query("query"))
	if q == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "query parameter must not be empty", nil)
		return
	}
	respond.JSON(c, http.StatusOK, queryResponse{
		Response: fmt.Sprintf("Processed query: %s", q),
	})
}
