package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/EmadRadwan/Contracts-sub015/internal/apperrors"
	portssvc "github.com/EmadRadwan/Contracts-sub015/internal/core/ports/services"
	"github.com/EmadRadwan/Contracts-sub015/internal/dto"
	"github.com/EmadRadwan/Contracts-sub015/internal/middleware"
)

// acctgTransHandler handles HTTP requests for accounting transactions and
// their entries.
type acctgTransHandler struct {
	acctgTransService portssvc.AcctgTransSvcFacade
	postingService    portssvc.PostingSvcFacade
}

func newAcctgTransHandler(ts portssvc.AcctgTransSvcFacade, ps portssvc.PostingSvcFacade) *acctgTransHandler {
	return &acctgTransHandler{
		acctgTransService: ts,
		postingService:    ps,
	}
}

// RegisterAcctgTransRoutes registers routes for accounting transactions.
func RegisterAcctgTransRoutes(rg *gin.RouterGroup, ts portssvc.AcctgTransSvcFacade, ps portssvc.PostingSvcFacade) {
	h := newAcctgTransHandler(ts, ps)

	transactions := rg.Group("/acctg-trans")
	{
		transactions.POST("", h.createAcctgTrans)
		transactions.POST("/quick", h.quickCreateAcctgTrans)
		transactions.GET("", h.listAcctgTrans)
		transactions.GET("/:acctgTransID", h.getAcctgTrans)
		transactions.PUT("/:acctgTransID", h.updateAcctgTrans)
		transactions.POST("/:acctgTransID/entries", h.createEntry)
		transactions.DELETE("/:acctgTransID/entries/:seqID", h.deleteEntry)
		transactions.POST("/:acctgTransID/post", h.postAcctgTrans)
	}
}

// respondServiceError maps service-layer sentinel errors to HTTP statuses.
func respondServiceError(c *gin.Context, err error, internalMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Conflicting state", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error(internalMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalMsg})
	}
}

// createAcctgTrans creates a new unposted transaction header.
func (h *acctgTransHandler) createAcctgTrans(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAcctgTransRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAcctgTrans", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorPartyID, _ := middleware.GetPartyIDFromContext(c)
	trans, err := h.acctgTransService.CreateAcctgTrans(c.Request.Context(), req, creatorPartyID)
	if err != nil {
		respondServiceError(c, err, "Failed to create accounting transaction")
		return
	}

	logger.Info("Accounting transaction created", slog.String("acctg_trans_id", trans.AcctgTransID))
	c.JSON(http.StatusCreated, dto.ToAcctgTransResponse(trans))
}

// quickCreateAcctgTrans creates a header plus a balanced debit/credit pair
// in one call.
func (h *acctgTransHandler) quickCreateAcctgTrans(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.QuickCreateAcctgTransRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for QuickCreateAcctgTrans", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorPartyID, _ := middleware.GetPartyIDFromContext(c)
	trans, err := h.acctgTransService.QuickCreateAcctgTrans(c.Request.Context(), req, creatorPartyID)
	if err != nil {
		respondServiceError(c, err, "Failed to quick-create accounting transaction")
		return
	}

	logger.Info("Accounting transaction quick-created", slog.String("acctg_trans_id", trans.AcctgTransID))
	c.JSON(http.StatusCreated, dto.ToAcctgTransResponse(trans))
}

// getAcctgTrans retrieves a transaction header with its entries.
func (h *acctgTransHandler) getAcctgTrans(c *gin.Context) {
	acctgTransID := c.Param("acctgTransID")
	trans, err := h.acctgTransService.GetAcctgTransByID(c.Request.Context(), acctgTransID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve accounting transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToAcctgTransResponse(trans))
}

// listAcctgTrans retrieves a paginated list of transaction headers.
func (h *acctgTransHandler) listAcctgTrans(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListAcctgTransParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListAcctgTrans", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.acctgTransService.ListAcctgTrans(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err, "Failed to list accounting transactions")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// updateAcctgTrans updates header fields of an unposted transaction.
func (h *acctgTransHandler) updateAcctgTrans(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	acctgTransID := c.Param("acctgTransID")

	var req dto.UpdateAcctgTransRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateAcctgTrans", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterPartyID, _ := middleware.GetPartyIDFromContext(c)
	trans, err := h.acctgTransService.UpdateAcctgTrans(c.Request.Context(), acctgTransID, req, updaterPartyID)
	if err != nil {
		respondServiceError(c, err, "Failed to update accounting transaction")
		return
	}

	logger.Info("Accounting transaction updated", slog.String("acctg_trans_id", acctgTransID))
	c.JSON(http.StatusOK, dto.ToAcctgTransResponse(trans))
}

// createEntry appends one entry to an existing transaction.
func (h *acctgTransHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	acctgTransID := c.Param("acctgTransID")

	var req dto.CreateAcctgTransEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAcctgTransEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	// The path owns the transaction id.
	req.AcctgTransID = acctgTransID

	creatorPartyID, _ := middleware.GetPartyIDFromContext(c)
	entry, err := h.acctgTransService.CreateAcctgTransEntry(c.Request.Context(), req, creatorPartyID)
	if err != nil {
		respondServiceError(c, err, "Failed to create transaction entry")
		return
	}

	logger.Info("Transaction entry created",
		slog.String("acctg_trans_id", acctgTransID),
		slog.Int("seq_id", entry.AcctgTransEntrySeqID))
	c.JSON(http.StatusCreated, dto.ToAcctgTransEntryResponse(entry))
}

// deleteEntry removes one entry of an unposted transaction.
func (h *acctgTransHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	acctgTransID := c.Param("acctgTransID")

	seqID, err := strconv.Atoi(c.Param("seqID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid entry sequence id"})
		return
	}

	if err := h.acctgTransService.DeleteAcctgTransEntry(c.Request.Context(), acctgTransID, seqID); err != nil {
		respondServiceError(c, err, "Failed to delete transaction entry")
		return
	}

	logger.Info("Transaction entry deleted",
		slog.String("acctg_trans_id", acctgTransID),
		slog.Int("seq_id", seqID))
	c.Status(http.StatusNoContent)
}

// postAcctgTrans runs the posting algorithm. The verifyOnly query flag runs
// all checks without persisting.
func (h *acctgTransHandler) postAcctgTrans(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	acctgTransID := c.Param("acctgTransID")
	verifyOnly, _ := strconv.ParseBool(c.DefaultQuery("verifyOnly", "false"))

	posterPartyID, _ := middleware.GetPartyIDFromContext(c)
	result, err := h.postingService.PostAcctgTrans(c.Request.Context(), acctgTransID, verifyOnly, posterPartyID)
	if err != nil {
		respondServiceError(c, err, "Failed to post accounting transaction")
		return
	}

	if !result.Succeeded() {
		// Verification failures are reported, not applied.
		c.JSON(http.StatusUnprocessableEntity, dto.ToPostAcctgTransResponse(result))
		return
	}

	logger.Info("Posting request handled",
		slog.String("acctg_trans_id", acctgTransID),
		slog.Bool("verify_only", verifyOnly),
		slog.Bool("posted", result.Posted))
	c.JSON(http.StatusOK, dto.ToPostAcctgTransResponse(result))
}
