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

// loanHandler handles loan application and lifecycle requests.
type loanHandler struct {
	loanService portssvc.LoanSvcFacade
}

func newLoanHandler(ls portssvc.LoanSvcFacade) *loanHandler {
	return &loanHandler{loanService: ls}
}

// registerLoanRoutes registers the loan routes.
func registerLoanRoutes(rg *gin.RouterGroup, loanService portssvc.LoanSvcFacade) {
	h := newLoanHandler(loanService)

	loans := rg.Group("/loans")
	{
		loans.POST("", h.createLoan)
		loans.GET("", h.listLoans)
		loans.GET("/:id", h.getLoan)
		loans.PATCH("/:id/status", middleware.RequireAdmin(), h.updateLoanStatus)
	}
}

// createLoan godoc
// @Summary Apply for a loan
// @Description Computes the EMI, records the application as PENDING and schedules the deferred underwriting decision. The response returns before the decision is made.
// @Tags loans
// @Accept  json
// @Produce  json
// @Param   loan body dto.CreateLoanRequest true "Loan application"
// @Success 202 {object} dto.LoanResponse
// @Failure 400 {object} ErrorResponse "Invalid input or validation error"
// @Failure 403 {object} ErrorResponse "Funding account held by another customer"
// @Failure 404 {object} ErrorResponse "Funding account not found"
// @Security BearerAuth
// @Router /loans [post]
func (h *loanHandler) createLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createLoan", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	customerID, ok := middleware.GetCustomerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	loan, err := h.loanService.CreateLoan(c.Request.Context(), customerID, req)
	if err != nil {
		logger.Warn("Failed to create loan", slog.String("error", err.Error()))
		c.JSON(apperrors.StatusCode(err), ErrorResponse{Error: err.Error()})
		return
	}

	logger.Info("Loan application received",
		slog.String("loan_id", loan.LoanID),
		slog.String("loan_number", loan.LoanNumber))
	c.JSON(http.StatusAccepted, dto.ToLoanResponse(loan))
}

// listLoans godoc
// @Summary List the caller's loans
// @Tags loans
// @Produce  json
// @Success 200 {array} dto.LoanResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /loans [get]
func (h *loanHandler) listLoans(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	customerID, ok := middleware.GetCustomerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	loans, err := h.loanService.ListCustomerLoans(c.Request.Context(), customerID)
	if err != nil {
		logger.Error("Failed to list loans", slog.String("error", err.Error()))
		c.JSON(apperrors.StatusCode(err), ErrorResponse{Error: "Failed to list loans"})
		return
	}

	c.JSON(http.StatusOK, dto.ToLoanResponses(loans))
}

// getLoan godoc
// @Summary Get a loan by ID or loan number
// @Tags loans
// @Produce  json
// @Param   id path string true "Loan ID"
// @Success 200 {object} dto.LoanResponse
// @Failure 403 {object} ErrorResponse "Loan belongs to another customer"
// @Failure 404 {object} ErrorResponse "Loan not found"
// @Security BearerAuth
// @Router /loans/{id} [get]
func (h *loanHandler) getLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID := c.Param("id")

	customerID, ok := middleware.GetCustomerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	loan, err := h.loanService.GetLoanByID(c.Request.Context(), loanID)
	if err != nil {
		logger.Warn("Failed to get loan", slog.String("loan_id", loanID), slog.String("error", err.Error()))
		c.JSON(apperrors.StatusCode(err), ErrorResponse{Error: err.Error()})
		return
	}
	if !isAdmin(c) && loan.CustomerID != customerID {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Loan belongs to another customer"})
		return
	}

	c.JSON(http.StatusOK, dto.ToLoanResponse(loan))
}

// updateLoanStatus godoc
// @Summary Move a loan through its lifecycle
// @Description Admin-only operator transition, validated against the loan state machine. Decided loans never return to PENDING.
// @Tags loans
// @Accept  json
// @Produce  json
// @Param   id path string true "Loan ID"
// @Param   status body dto.UpdateLoanStatusRequest true "Target status"
// @Success 200 {object} dto.LoanResponse
// @Failure 400 {object} ErrorResponse "Unknown status or transition not allowed from the current status"
// @Failure 403 {object} ErrorResponse "Admin role required"
// @Failure 404 {object} ErrorResponse "Loan not found"
// @Security BearerAuth
// @Router /loans/{id}/status [patch]
func (h *loanHandler) updateLoanStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID := c.Param("id")

	var req dto.UpdateLoanStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	loan, err := h.loanService.UpdateLoanStatus(c.Request.Context(), loanID, req.Status)
	if err != nil {
		logger.Warn("Failed to update loan status",
			slog.String("loan_id", loanID),
			slog.String("status", string(req.Status)),
			slog.String("error", err.Error()))
		c.JSON(apperrors.StatusCode(err), ErrorResponse{Error: err.Error()})
		return
	}

	logger.Info("Loan status updated",
		slog.String("loan_id", loanID), slog.String("status", string(loan.Status)))
	c.JSON(http.StatusOK, dto.ToLoanResponse(loan))
}
