package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"jewel-tracker/internal/database"
	"jewel-tracker/internal/models"
	"jewel-tracker/internal/services/ledger"
)

const maxPageSize = 500

// LedgerReader is the read side of the ledger store.
type LedgerReader interface {
	Read() (*ledger.Table, error)
}

// SnapshotLister queries the snapshot mirror.
type SnapshotLister interface {
	List(ctx context.Context, filter database.SnapshotFilter) ([]models.PriceSnapshot, error)
}

type APIHandler struct {
	ledger    LedgerReader
	snapshots SnapshotLister
	logger    zerolog.Logger
}

// SetupRoutes registers the read-only ledger endpoints on r. snapshots may be
// nil when no database is configured.
func SetupRoutes(r *gin.RouterGroup, store LedgerReader, snapshots SnapshotLister, logger zerolog.Logger) *APIHandler {
	handler := &APIHandler{
		ledger:    store,
		snapshots: snapshots,
		logger:    logger,
	}

	ledgerGroup := r.Group("/ledger")
	{
		ledgerGroup.GET("", handler.ListLedger)
		ledgerGroup.GET("/latest", handler.LatestRow)
	}
	r.GET("/snapshots", handler.ListSnapshots)

	return handler
}

// ListLedger returns ledger rows, oldest first. ?limit=N keeps the last N.
func (h *APIHandler) ListLedger(c *gin.Context) {
	limit, err := queryLimit(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	table, err := h.ledger.Read()
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to load ledger")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load ledger"})
		return
	}

	rows := table.Rows
	if limit > 0 && len(rows) > limit {
		rows = rows[len(rows)-limit:]
	}
	if rows == nil {
		rows = []models.LedgerRow{}
	}
	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": "ok", "data": gin.H{"count": len(rows), "total": len(table.Rows), "items": rows}})
}

// LatestRow returns the most recent ledger row.
func (h *APIHandler) LatestRow(c *gin.Context) {
	table, err := h.ledger.Read()
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to load ledger")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load ledger"})
		return
	}

	last := table.Last()
	if last == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "ledger is empty"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": "ok", "data": last})
}

// ListSnapshots queries the mirror by ?instrument=, ?date= and ?limit=.
func (h *APIHandler) ListSnapshots(c *gin.Context) {
	if h.snapshots == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "snapshot database not configured"})
		return
	}

	limit, err := queryLimit(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filter := database.SnapshotFilter{
		Instrument: strings.TrimSpace(c.Query("instrument")),
		Date:       strings.TrimSpace(c.Query("date")),
		Limit:      limit,
	}
	items, err := h.snapshots.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list snapshots")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list snapshots"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": "ok", "data": gin.H{"count": len(items), "items": items}})
}

var errBadLimit = errors.New("limit must be a non-negative integer")

func queryLimit(c *gin.Context) (int, error) {
	raw := strings.TrimSpace(c.Query("limit"))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errBadLimit
	}
	if n > maxPageSize {
		n = maxPageSize
	}
	return n, nil
}
