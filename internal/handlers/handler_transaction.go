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

// transactionHandler handles money movement requests. All writes go through
// the ledger engine; nothing here touches balances directly.
type transactionHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newTransactionHandler(ls portssvc.LedgerSvcFacade) *transactionHandler {
	return &transactionHandler{ledgerService: ls}
}

// registerTransactionRoutes registers the money movement routes.
func registerTransactionRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newTransactionHandler(ledgerService)

	txns := rg.Group("/transactions")
	{
		txns.POST("/deposit", h.deposit)
		txns.POST("/withdraw", h.withdraw)
		txns.POST("/transfer", h.transfer)
		txns.GET("/:reference", h.getByReference)
	}
}

// deposit godoc
// @Summary Deposit into an account
// @Description Credits the account and records a DEPOSIT transaction
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   deposit body dto.DepositRequest true "Deposit details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse "Invalid input or non-positive amount"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /transactions/deposit [post]
func (h *transactionHandler) deposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for deposit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
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

	txn, err := h.ledgerService.Deposit(c.Request.Context(), customerID, req.AccountNumber, req.Amount, req.Description)
	if err != nil {
		logger.Warn("Deposit failed", slog.String("account_number", req.AccountNumber), slog.String("error", err.Error()))
		c.JSON(apperrors.StatusCode(err), ErrorResponse{Error: err.Error()})
		return
	}

	logger.Info("Deposit completed",
		slog.String("reference", txn.Reference),
		slog.String("account_number", req.AccountNumber))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// withdraw godoc
// @Summary Withdraw from an account
// @Description Debits the account and records a WITHDRAWAL transaction; the balance must cover the amount
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   withdrawal body dto.WithdrawRequest true "Withdrawal details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse "Invalid input or non-positive amount"
// @Failure 403 {object} ErrorResponse "Account held by another customer"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Failure 422 {object} ErrorResponse "Insufficient balance"
// @Security BearerAuth
// @Router /transactions/withdraw [post]
func (h *transactionHandler) withdraw(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for withdraw", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
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

	txn, err := h.ledgerService.Withdraw(c.Request.Context(), customerID, req.AccountNumber, req.Amount, req.Description)
	if err != nil {
		logger.Warn("Withdrawal failed", slog.String("account_number", req.AccountNumber), slog.String("error", err.Error()))
		c.JSON(apperrors.StatusCode(err), ErrorResponse{Error: err.Error()})
		return
	}

	logger.Info("Withdrawal completed",
		slog.String("reference", txn.Reference),
		slog.String("account_number", req.AccountNumber))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// transfer godoc
// @Summary Transfer between two accounts
// @Description Atomically debits the source and credits the destination; both legs commit or neither does
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transfer body dto.TransferRequest true "Transfer details"
// @Success 201 {object} dto.TransferResponse
// @Failure 400 {object} ErrorResponse "Invalid input, non-positive amount or same account on both sides"
// @Failure 403 {object} ErrorResponse "Source account held by another customer"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Failure 422 {object} ErrorResponse "Insufficient balance or account not active"
// @Security BearerAuth
// @Router /transactions/transfer [post]
func (h *transactionHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for transfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
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

	debit, credit, err := h.ledgerService.Transfer(c.Request.Context(), customerID, req.FromAccountNumber, req.ToAccountNumber, req.Amount, req.Description)
	if err != nil {
		logger.Warn("Transfer failed",
			slog.String("from_account", req.FromAccountNumber),
			slog.String("to_account", req.ToAccountNumber),
			slog.String("error", err.Error()))
		c.JSON(apperrors.StatusCode(err), ErrorResponse{Error: err.Error()})
		return
	}

	logger.Info("Transfer completed",
		slog.String("debit_reference", debit.Reference),
		slog.String("credit_reference", credit.Reference))
	c.JSON(http.StatusCreated, dto.TransferResponse{
		Debit:  dto.ToTransactionResponse(debit),
		Credit: dto.ToTransactionResponse(credit),
	})
}

// getByReference godoc
// @Summary Get a transaction by reference
// @Description Looks up a single ledger entry by its unique reference
// @Tags transactions
// @Produce  json
// @Param   reference path string true "Transaction Reference"
// @Success 200 {object} dto.TransactionResponse
// @Failure 403 {object} ErrorResponse "Transaction held by another customer"
// @Failure 404 {object} ErrorResponse "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{reference} [get]
func (h *transactionHandler) getByReference(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	reference := c.Param("reference")

	customerID, ok := middleware.GetCustomerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	if isAdmin(c) {
		customerID = ""
	}

	txn, err := h.ledgerService.GetTransaction(c.Request.Context(), customerID, reference)
	if err != nil {
		logger.Warn("Transaction lookup failed", slog.String("reference", reference), slog.String("error", err.Error()))
		c.JSON(apperrors.StatusCode(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}
