package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "uangsaku/internal/errors"
	"uangsaku/internal/services"
)

// SyncHandler handles whole-store export, import, and reset.
type SyncHandler struct {
	syncService services.SyncServicer
}

// NewSyncHandler creates a new SyncHandler.
func NewSyncHandler(syncService services.SyncServicer) *SyncHandler {
	return &SyncHandler{syncService: syncService}
}

// Export handles downloading a snapshot of the whole store.
func (h *SyncHandler) Export(c *gin.Context) {
	snapshot, err := h.syncService.Export()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="uangsaku-export.json"`)
	c.JSON(http.StatusOK, snapshot)
}

// Import handles a destructive restore from an uploaded snapshot. The body
// is passed through as-is so malformed payloads are rejected before any
// collection is cleared.
func (h *SyncHandler) Import(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInvalidFormat, err))
		return
	}

	if err := h.syncService.Import(raw); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Import completed"})
}

// Reset handles clearing all four collections.
func (h *SyncHandler) Reset(c *gin.Context) {
	if err := h.syncService.Reset(); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Store reset"})
}
