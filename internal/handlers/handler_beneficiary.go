package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Manav-gyani/Bank-Management-System/internal/apperrors"
	portssvc "github.com/Manav-gyani/Bank-Management-System/internal/core/ports/services"
	"github.com/Manav-gyani/Bank-Management-System/internal/dto"
	"github.com/Manav-gyani/Bank-Management-System/internal/middleware"
	"github.com/gin-gonic/gin"
)

// beneficiaryHandler handles HTTP requests for saved payees.
type beneficiaryHandler struct {
	beneficiaryService portssvc.BeneficiarySvcFacade
}

// registerBeneficiaryRoutes registers the saved-payee routes.
func registerBeneficiaryRoutes(rg *gin.RouterGroup, beneficiaryService portssvc.BeneficiarySvcFacade) {
	h := &beneficiaryHandler{beneficiaryService: beneficiaryService}

	beneficiaries := rg.Group("/beneficiaries")
	{
		beneficiaries.POST("", h.create)
		beneficiaries.GET("", h.list)
		beneficiaries.GET("/:id", h.get)
		beneficiaries.PUT("/:id", h.update)
		beneficiaries.DELETE("/:id", h.delete)
		beneficiaries.PATCH("/:id/verify", middleware.RequireAdmin(), h.verify)
	}
}

// create godoc
// @Summary Save a beneficiary
// @Description Registers a payee the logged-in customer can transfer to
// @Tags beneficiaries
// @Accept  json
// @Produce  json
// @Param   beneficiary body dto.CreateBeneficiaryRequest true "Beneficiary details"
// @Success 201 {object} dto.BeneficiaryResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 409 {object} ErrorResponse "Account number already saved"
// @Security BearerAuth
// @Router /beneficiaries [post]
func (h *beneficiaryHandler) create(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateBeneficiaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for beneficiary", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	customerID, ok := middleware.GetCustomerIDFromContext(c)
	if !ok || customerID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	beneficiary, err := h.beneficiaryService.CreateBeneficiary(c.Request.Context(), customerID, req)
	if err != nil {
		c.JSON(apperrors.StatusCode(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, dto.ToBeneficiaryResponse(beneficiary))
}

// list godoc
// @Summary List the caller's beneficiaries
// @Tags beneficiaries
// @Produce  json
// @Success 200 {array} dto.BeneficiaryResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /beneficiaries [get]
func (h *beneficiaryHandler) list(c *gin.Context) {
	customerID, ok := middleware.GetCustomerIDFromContext(c)
	if !ok || customerID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	beneficiaries, err := h.beneficiaryService.ListBeneficiaries(c.Request.Context(), customerID)
	if err != nil {
		c.JSON(apperrors.StatusCode(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.ToBeneficiaryResponses(beneficiaries))
}

// get godoc
// @Summary Get a beneficiary by ID
// @Tags beneficiaries
// @Produce  json
// @Param   id path string true "Beneficiary ID"
// @Success 200 {object} dto.BeneficiaryResponse
// @Failure 403 {object} ErrorResponse "Beneficiary saved by another customer"
// @Failure 404 {object} ErrorResponse "Beneficiary not found"
// @Security BearerAuth
// @Router /beneficiaries/{id} [get]
func (h *beneficiaryHandler) get(c *gin.Context) {
	customerID, _ := middleware.GetCustomerIDFromContext(c)
	if isAdmin(c) {
		customerID = ""
	}

	beneficiary, err := h.beneficiaryService.GetBeneficiary(c.Request.Context(), customerID, c.Param("id"))
	if err != nil {
		c.JSON(apperrors.StatusCode(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.ToBeneficiaryResponse(beneficiary))
}

// update godoc
// @Summary Rename a beneficiary
// @Description Changes the payee's display name and nickname; account details are immutable
// @Tags beneficiaries
// @Accept  json
// @Produce  json
// @Param   id path string true "Beneficiary ID"
// @Param   beneficiary body dto.UpdateBeneficiaryRequest true "New names"
// @Success 200 {object} dto.BeneficiaryResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 403 {object} ErrorResponse "Beneficiary saved by another customer"
// @Failure 404 {object} ErrorResponse "Beneficiary not found"
// @Security BearerAuth
// @Router /beneficiaries/{id} [put]
func (h *beneficiaryHandler) update(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateBeneficiaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for beneficiary update", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	customerID, _ := middleware.GetCustomerIDFromContext(c)
	if isAdmin(c) {
		customerID = ""
	}

	beneficiary, err := h.beneficiaryService.UpdateBeneficiary(c.Request.Context(), customerID, c.Param("id"), req)
	if err != nil {
		c.JSON(apperrors.StatusCode(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.ToBeneficiaryResponse(beneficiary))
}

// delete godoc
// @Summary Delete a beneficiary
// @Tags beneficiaries
// @Param   id path string true "Beneficiary ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse "Beneficiary saved by another customer"
// @Failure 404 {object} ErrorResponse "Beneficiary not found"
// @Security BearerAuth
// @Router /beneficiaries/{id} [delete]
func (h *beneficiaryHandler) delete(c *gin.Context) {
	customerID, _ := middleware.GetCustomerIDFromContext(c)
	if isAdmin(c) {
		customerID = ""
	}

	if err := h.beneficiaryService.DeleteBeneficiary(c.Request.Context(), customerID, c.Param("id")); err != nil {
		c.JSON(apperrors.StatusCode(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// verify godoc
// @Summary Mark a beneficiary as verified
// @Description Operator-only confirmation that the payee's details were checked
// @Tags beneficiaries
// @Produce  json
// @Param   id path string true "Beneficiary ID"
// @Success 200 {object} dto.BeneficiaryResponse
// @Failure 403 {object} ErrorResponse "Admin role required"
// @Failure 404 {object} ErrorResponse "Beneficiary not found"
// @Security BearerAuth
// @Router /beneficiaries/{id}/verify [patch]
func (h *beneficiaryHandler) verify(c *gin.Context) {
	beneficiary, err := h.beneficiaryService.VerifyBeneficiary(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(apperrors.StatusCode(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.ToBeneficiaryResponse(beneficiary))
}
