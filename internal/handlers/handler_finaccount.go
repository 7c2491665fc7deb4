package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/EmadRadwan/Contracts-sub015/internal/core/ports/services"
	"github.com/EmadRadwan/Contracts-sub015/internal/dto"
	"github.com/EmadRadwan/Contracts-sub015/internal/middleware"
)

// finAccountHandler handles HTTP requests for financial accounts and their
// transaction ledger.
type finAccountHandler struct {
	finAccountService portssvc.FinAccountSvcFacade
}

func newFinAccountHandler(fs portssvc.FinAccountSvcFacade) *finAccountHandler {
	return &finAccountHandler{finAccountService: fs}
}

// registerFinAccountRoutes registers routes for financial accounts.
func registerFinAccountRoutes(rg *gin.RouterGroup, fs portssvc.FinAccountSvcFacade) {
	h := newFinAccountHandler(fs)

	finAccounts := rg.Group("/fin-accounts")
	{
		finAccounts.GET("/:finAccountID", h.getFinAccount)
		finAccounts.GET("/:finAccountID/transactions", h.listFinAccountTrans)
		finAccounts.POST("/:finAccountID/deposit-withdraw", h.depositWithdraw)
	}

	finAccountTrans := rg.Group("/fin-account-trans")
	{
		finAccountTrans.PUT("/:finAccountTransID/status", h.updateFinAccountTransStatus)
	}
}

// getFinAccount retrieves a financial account with its cached balances.
func (h *finAccountHandler) getFinAccount(c *gin.Context) {
	finAccountID := c.Param("finAccountID")
	account, err := h.finAccountService.GetFinAccountByID(c.Request.Context(), finAccountID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve financial account")
		return
	}
	c.JSON(http.StatusOK, dto.ToFinAccountResponse(account))
}

// listFinAccountTrans returns the filtered transaction list together with
// the status-partitioned running totals.
func (h *finAccountHandler) listFinAccountTrans(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	finAccountID := c.Param("finAccountID")

	var params dto.ListFinAccountTransParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListFinAccountTrans", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.finAccountService.GetFinAccountTransListAndTotals(c.Request.Context(), finAccountID, params)
	if err != nil {
		respondServiceError(c, err, "Failed to aggregate financial account transactions")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// depositWithdraw batches payments into financial-account transactions.
func (h *finAccountHandler) depositWithdraw(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	finAccountID := c.Param("finAccountID")

	var req dto.DepositWithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for DepositWithdraw", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	// The path owns the account id.
	req.FinAccountID = finAccountID

	performerPartyID, _ := middleware.GetPartyIDFromContext(c)
	resp, err := h.finAccountService.DepositWithdrawPayments(c.Request.Context(), req, performerPartyID)
	if err != nil {
		respondServiceError(c, err, "Failed to process deposit/withdraw batch")
		return
	}

	logger.Info("Deposit/withdraw batch processed",
		slog.String("fin_account_id", finAccountID),
		slog.Int("created_transactions", len(resp.FinAccountTransIDs)))
	c.JSON(http.StatusCreated, resp)
}

// updateFinAccountTransStatus advances one ledger row's status.
func (h *finAccountHandler) updateFinAccountTransStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	finAccountTransID := c.Param("finAccountTransID")

	var req dto.UpdateFinAccountTransStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateFinAccountTransStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterPartyID, _ := middleware.GetPartyIDFromContext(c)
	err := h.finAccountService.UpdateFinAccountTransStatus(c.Request.Context(), finAccountTransID, req.StatusID, updaterPartyID)
	if err != nil {
		respondServiceError(c, err, "Failed to update financial account transaction status")
		return
	}

	logger.Info("Financial account transaction status updated",
		slog.String("fin_account_trans_id", finAccountTransID),
		slog.String("status", string(req.StatusID)))
	c.Status(http.StatusNoContent)
}
