package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Manav-gyani/Bank-Management-System/internal/apperrors"
	"github.com/Manav-gyani/Bank-Management-System/internal/core/domain"
	portssvc "github.com/Manav-gyani/Bank-Management-System/internal/core/ports/services"
	"github.com/Manav-gyani/Bank-Management-System/internal/dto"
	"github.com/Manav-gyani/Bank-Management-System/internal/middleware"
	"github.com/gin-gonic/gin"
)

// isAdmin reports whether the authenticated caller holds the admin role.
func isAdmin(c *gin.Context) bool {
	role, _ := middleware.GetRoleFromContext(c)
	return role == string(domain.RoleAdmin)
}

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
	ledgerService  portssvc.LedgerSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade, ls portssvc.LedgerSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: as,
		ledgerService:  ls,
	}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade, ledgerService portssvc.LedgerSvcFacade) {
	h := newAccountHandler(accountService, ledgerService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:accountNumber", h.getAccount)
		accounts.GET("/:accountNumber/balance", h.getBalance)
		accounts.GET("/:accountNumber/transactions", h.listTransactions)
		accounts.PATCH("/:accountNumber/status", middleware.RequireAdmin(), h.updateAccountStatus)
	}
}

// createAccount godoc
// @Summary Open a new account
// @Description Opens a zero-balance account for the logged-in customer
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	customerID, ok := middleware.GetCustomerIDFromContext(c)
	if !ok {
		logger.Error("Customer ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), customerID, req.AccountType)
	if err != nil {
		logger.Warn("Failed to create account", slog.String("error", err.Error()))
		c.JSON(apperrors.StatusCode(err), ErrorResponse{Error: err.Error()})
		return
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List the caller's accounts
// @Tags accounts
// @Produce  json
// @Success 200 {array} dto.AccountResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	customerID, ok := middleware.GetCustomerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	accounts, err := h.accountService.ListCustomerAccounts(c.Request.Context(), customerID)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()))
		c.JSON(apperrors.StatusCode(err), ErrorResponse{Error: "Failed to list accounts"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponses(accounts))
}

// getAccount godoc
// @Summary Get an account by number
// @Tags accounts
// @Produce  json
// @Param   accountNumber path string true "Account number"
// @Success 200 {object} dto.AccountResponse
// @Failure 403 {object} ErrorResponse "Account held by another customer"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountNumber} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountNumber := c.Param("accountNumber")

	customerID, ok := middleware.GetCustomerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	// Admins may inspect any account.
	if isAdmin(c) {
		customerID = ""
	}

	account, err := h.accountService.GetAccountByNumber(c.Request.Context(), customerID, accountNumber)
	if err != nil {
		logger.Warn("Failed to get account", slog.String("account_number", accountNumber), slog.String("error", err.Error()))
		c.JSON(apperrors.StatusCode(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// getBalance godoc
// @Summary Get an account balance
// @Description Read-only balance snapshot; has no side effect on the account
// @Tags accounts
// @Produce  json
// @Param   accountNumber path string true "Account number"
// @Success 200 {object} dto.BalanceResponse
// @Failure 403 {object} ErrorResponse "Account held by another customer"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountNumber}/balance [get]
func (h *accountHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountNumber := c.Param("accountNumber")

	customerID, ok := middleware.GetCustomerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	if isAdmin(c) {
		customerID = ""
	}

	balance, err := h.ledgerService.GetBalance(c.Request.Context(), customerID, accountNumber)
	if err != nil {
		logger.Warn("Failed to get balance", slog.String("account_number", accountNumber), slog.String("error", err.Error()))
		c.JSON(apperrors.StatusCode(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		AccountNumber: accountNumber,
		Balance:       balance,
		Currency:      "INR",
	})
}

// listTransactions godoc
// @Summary List an account's transactions
// @Description Returns the account statement, optionally bounded by from/to timestamps
// @Tags accounts
// @Produce  json
// @Param   accountNumber path string true "Account number"
// @Param   from query string false "Window start (RFC3339)"
// @Param   to query string false "Window end (RFC3339)"
// @Success 200 {array} dto.TransactionResponse
// @Failure 403 {object} ErrorResponse "Account held by another customer"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountNumber}/transactions [get]
func (h *accountHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountNumber := c.Param("accountNumber")

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	customerID, ok := middleware.GetCustomerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	if isAdmin(c) {
		customerID = ""
	}

	txns, err := h.ledgerService.ListTransactions(c.Request.Context(), customerID, accountNumber, params)
	if err != nil {
		logger.Warn("Failed to list transactions", slog.String("account_number", accountNumber), slog.String("error", err.Error()))
		c.JSON(apperrors.StatusCode(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponses(txns))
}

// updateAccountStatus godoc
// @Summary Change an account's lifecycle status
// @Description Admin-only operator action
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   accountNumber path string true "Account number"
// @Param   status body dto.UpdateAccountStatusRequest true "New status"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse "Unknown status"
// @Failure 403 {object} ErrorResponse "Admin role required"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountNumber}/status [patch]
func (h *accountHandler) updateAccountStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountNumber := c.Param("accountNumber")

	var req dto.UpdateAccountStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.accountService.GetAccountByNumber(c.Request.Context(), "", accountNumber)
	if err != nil {
		c.JSON(apperrors.StatusCode(err), ErrorResponse{Error: err.Error()})
		return
	}

	updated, err := h.accountService.UpdateAccountStatus(c.Request.Context(), account.AccountID, req.Status)
	if err != nil {
		logger.Warn("Failed to update account status", slog.String("account_number", accountNumber), slog.String("error", err.Error()))
		c.JSON(apperrors.StatusCode(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(updated))
}
