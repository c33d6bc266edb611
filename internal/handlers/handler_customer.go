package handlers

import (
	"net/http"

	"github.com/Manav-gyani/Bank-Management-System/internal/apperrors"
	portssvc "github.com/Manav-gyani/Bank-Management-System/internal/core/ports/services"
	"github.com/Manav-gyani/Bank-Management-System/internal/dto"
	"github.com/Manav-gyani/Bank-Management-System/internal/middleware"
	"github.com/gin-gonic/gin"
)

type customerHandler struct {
	customerService portssvc.CustomerSvcFacade
}

// registerCustomerRoutes registers the customer identity routes.
func registerCustomerRoutes(rg *gin.RouterGroup, customerService portssvc.CustomerSvcFacade) {
	h := &customerHandler{customerService: customerService}

	customers := rg.Group("/customers")
	{
		customers.GET("/me", h.getMe)
	}
}

// getMe godoc
// @Summary Get the caller's customer record
// @Tags customers
// @Produce  json
// @Success 200 {object} dto.CustomerResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "No customer record for this login"
// @Security BearerAuth
// @Router /customers/me [get]
func (h *customerHandler) getMe(c *gin.Context) {
	customerID, ok := middleware.GetCustomerIDFromContext(c)
	if !ok || customerID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	customer, err := h.customerService.GetCustomerByID(c.Request.Context(), customerID)
	if err != nil {
		c.JSON(apperrors.StatusCode(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}
