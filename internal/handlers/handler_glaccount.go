package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/EmadRadwan/Contracts-sub015/internal/core/ports/services"
	"github.com/EmadRadwan/Contracts-sub015/internal/dto"
)

// glAccountHandler handles HTTP requests for the GL account directory and
// currency UOM reference data.
type glAccountHandler struct {
	glAccountService portssvc.GlAccountSvcFacade
	uomService       portssvc.UomSvcFacade
}

func newGlAccountHandler(gs portssvc.GlAccountSvcFacade, us portssvc.UomSvcFacade) *glAccountHandler {
	return &glAccountHandler{
		glAccountService: gs,
		uomService:       us,
	}
}

// registerGlAccountRoutes registers routes for GL accounts and UOMs.
func registerGlAccountRoutes(rg *gin.RouterGroup, gs portssvc.GlAccountSvcFacade, us portssvc.UomSvcFacade) {
	h := newGlAccountHandler(gs, us)

	glAccounts := rg.Group("/gl-accounts")
	{
		glAccounts.GET("/:glAccountID", h.getGlAccount)
	}

	uoms := rg.Group("/uoms")
	{
		uoms.GET("", h.listCurrencyUoms)
		uoms.GET("/:uomID", h.getUom)
	}
}

// getGlAccount retrieves one directory entry.
func (h *glAccountHandler) getGlAccount(c *gin.Context) {
	glAccountID := c.Param("glAccountID")
	account, err := h.glAccountService.GetGlAccountByID(c.Request.Context(), glAccountID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve GL account")
		return
	}
	c.JSON(http.StatusOK, dto.ToGlAccountResponse(account))
}

// listCurrencyUoms lists the currency units of measure.
func (h *glAccountHandler) listCurrencyUoms(c *gin.Context) {
	uoms, err := h.uomService.ListCurrencyUoms(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to list currency UOMs")
		return
	}
	c.JSON(http.StatusOK, dto.ToUomResponses(uoms))
}

// getUom retrieves one unit of measure.
func (h *glAccountHandler) getUom(c *gin.Context) {
	uomID := c.Param("uomID")
	uom, err := h.uomService.GetUomByID(c.Request.Context(), uomID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve UOM")
		return
	}
	c.JSON(http.StatusOK, dto.ToUomResponse(uom))
}
