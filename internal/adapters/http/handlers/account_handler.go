package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Haleralex/branchledger/internal/adapters/http/common"
	"github.com/Haleralex/branchledger/internal/application/dtos"
)

// ============================================
// Use Case Interfaces
// ============================================

// OpenAccountUseCase - интерфейс открытия счёта.
type OpenAccountUseCase interface {
	Execute(ctx context.Context, cmd dtos.OpenAccountCommand) (*dtos.AccountOperationDTO, error)
}

// CloseAccountUseCase - интерфейс закрытия счёта по идентификатору.
type CloseAccountUseCase interface {
	Execute(ctx context.Context, cmd dtos.CloseAccountCommand) (*dtos.CloseResultDTO, error)
}

// CloseHolderUseCase - интерфейс закрытия всех счетов владельца.
type CloseHolderUseCase interface {
	Execute(ctx context.Context, cmd dtos.CloseHolderCommand) (*dtos.CloseResultDTO, error)
}

// DepositUseCase - интерфейс зачисления.
type DepositUseCase interface {
	Execute(ctx context.Context, cmd dtos.DepositCommand) (*dtos.AccountOperationDTO, error)
}

// WithdrawUseCase - интерфейс списания.
type WithdrawUseCase interface {
	Execute(ctx context.Context, cmd dtos.WithdrawCommand) (*dtos.AccountOperationDTO, error)
}

// ListAccountsUseCase - интерфейс отчёта по открытым счетам.
type ListAccountsUseCase interface {
	Execute(ctx context.Context, query dtos.ListAccountsQuery) (*dtos.AccountListDTO, error)
}

// ListArchiveUseCase - интерфейс отчёта по архиву.
type ListArchiveUseCase interface {
	Execute(ctx context.Context) (*dtos.AccountListDTO, error)
}

// SummaryUseCase - интерфейс агрегированного отчёта.
type SummaryUseCase interface {
	Execute(ctx context.Context) (*dtos.SummaryDTO, error)
}

// AccountUseCases - набор use cases для AccountHandler.
type AccountUseCases struct {
	Open        OpenAccountUseCase
	Close       CloseAccountUseCase
	CloseHolder CloseHolderUseCase
	Deposit     DepositUseCase
	Withdraw    WithdrawUseCase
	List        ListAccountsUseCase
	ListArchive ListArchiveUseCase
	Summary     SummaryUseCase
}

// ============================================
// Account Handler
// ============================================

// AccountHandler обрабатывает HTTP запросы для счетов.
type AccountHandler struct {
	uc AccountUseCases
}

// NewAccountHandler создаёт новый AccountHandler.
func NewAccountHandler(uc AccountUseCases) *AccountHandler {
	return &AccountHandler{uc: uc}
}

// ============================================
// Request DTOs
// ============================================

// AmountRequest - тело запроса deposit/withdraw.
type AmountRequest struct {
	Amount string `json:"amount" validate:"required,money_amount"`
}

// ============================================
// HTTP Handlers
// ============================================

// OpenAccount открывает счёт.
//
// @Summary Open an account
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body dtos.OpenAccountCommand true "Account data"
// @Success 201 {object} common.APIResponse{data=dtos.AccountOperationDTO}
// @Failure 400 {object} common.APIResponse
// @Failure 409 {object} common.APIResponse "Holder already has this type"
// @Router /api/v1/accounts [post]
func (h *AccountHandler) OpenAccount(c *gin.Context) {
	var cmd dtos.OpenAccountCommand
	if !BindJSON(c, &cmd) {
		return
	}

	result, err := h.uc.Open.Execute(c.Request.Context(), cmd)
	if err != nil {
		common.HandleDomainError(c, err)
		return
	}

	common.Success(c, http.StatusCreated, result)
}

// CloseAccount закрывает счёт по идентификатору и переносит его в архив.
//
// @Summary Close an account
// @Tags Accounts
// @Produce json
// @Param id path string true "Account number (9 digits)"
// @Success 200 {object} common.APIResponse{data=dtos.CloseResultDTO}
// @Failure 400 {object} common.APIResponse
// @Failure 404 {object} common.APIResponse
// @Router /api/v1/accounts/{id} [delete]
func (h *AccountHandler) CloseAccount(c *gin.Context) {
	result, err := h.uc.Close.Execute(c.Request.Context(), dtos.CloseAccountCommand{
		Identifier: c.Param("id"),
	})
	if err != nil {
		common.HandleDomainError(c, err)
		return
	}

	common.Success(c, http.StatusOK, result)
}

// CloseHolder закрывает все счета владельца.
//
// @Summary Close all accounts of a holder
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body dtos.CloseHolderCommand true "Holder"
// @Success 200 {object} common.APIResponse{data=dtos.CloseResultDTO}
// @Failure 400 {object} common.APIResponse
// @Failure 404 {object} common.APIResponse "Holder has no accounts"
// @Router /api/v1/holders/close [post]
func (h *AccountHandler) CloseHolder(c *gin.Context) {
	var cmd dtos.CloseHolderCommand
	if !BindJSON(c, &cmd) {
		return
	}

	result, err := h.uc.CloseHolder.Execute(c.Request.Context(), cmd)
	if err != nil {
		common.HandleDomainError(c, err)
		return
	}

	common.Success(c, http.StatusOK, result)
}

// Deposit зачисляет сумму на счёт.
//
// @Summary Deposit into an account
// @Tags Accounts
// @Accept json
// @Produce json
// @Param id path string true "Account number (9 digits)"
// @Param request body AmountRequest true "Amount"
// @Success 200 {object} common.APIResponse{data=dtos.AccountOperationDTO}
// @Failure 400 {object} common.APIResponse
// @Failure 404 {object} common.APIResponse
// @Router /api/v1/accounts/{id}/deposit [post]
func (h *AccountHandler) Deposit(c *gin.Context) {
	var req AmountRequest
	if !BindJSON(c, &req) {
		return
	}

	result, err := h.uc.Deposit.Execute(c.Request.Context(), dtos.DepositCommand{
		Identifier: c.Param("id"),
		Amount:     req.Amount,
	})
	if err != nil {
		common.HandleDomainError(c, err)
		return
	}

	common.Success(c, http.StatusOK, result)
}

// Withdraw списывает сумму со счёта. MONEY_MARKET ниже минимума
// понижается до SAVINGS и получает новый идентификатор.
//
// @Summary Withdraw from an account
// @Tags Accounts
// @Accept json
// @Produce json
// @Param id path string true "Account number (9 digits)"
// @Param request body AmountRequest true "Amount"
// @Success 200 {object} common.APIResponse{data=dtos.AccountOperationDTO}
// @Failure 400 {object} common.APIResponse
// @Failure 404 {object} common.APIResponse
// @Failure 422 {object} common.APIResponse "Insufficient funds"
// @Router /api/v1/accounts/{id}/withdraw [post]
func (h *AccountHandler) Withdraw(c *gin.Context) {
	var req AmountRequest
	if !BindJSON(c, &req) {
		return
	}

	result, err := h.uc.Withdraw.Execute(c.Request.Context(), dtos.WithdrawCommand{
		Identifier: c.Param("id"),
		Amount:     req.Amount,
	})
	if err != nil {
		common.HandleDomainError(c, err)
		return
	}

	common.Success(c, http.StatusOK, result)
}

// ListAccounts возвращает открытые счета в заданном порядке.
//
// @Summary List open accounts
// @Tags Reports
// @Produce json
// @Param order query string false "Order" Enums(none, branch, holder, type)
// @Success 200 {object} common.APIResponse{data=dtos.AccountListDTO}
// @Failure 400 {object} common.APIResponse
// @Router /api/v1/accounts [get]
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	var query dtos.ListAccountsQuery
	if !BindQuery(c, &query) {
		return
	}

	result, err := h.uc.List.Execute(c.Request.Context(), query)
	if err != nil {
		common.HandleDomainError(c, err)
		return
	}

	common.Success(c, http.StatusOK, result)
}

// ListArchive возвращает закрытые счета, последние первыми.
//
// @Summary List archived accounts
// @Tags Reports
// @Produce json
// @Success 200 {object} common.APIResponse{data=dtos.AccountListDTO}
// @Router /api/v1/archive [get]
func (h *AccountHandler) ListArchive(c *gin.Context) {
	result, err := h.uc.ListArchive.Execute(c.Request.Context())
	if err != nil {
		common.HandleDomainError(c, err)
		return
	}

	common.Success(c, http.StatusOK, result)
}

// Summary возвращает количество и сумму балансов по типам счетов.
//
// @Summary Ledger summary
// @Tags Reports
// @Produce json
// @Success 200 {object} common.APIResponse{data=dtos.SummaryDTO}
// @Router /api/v1/reports/summary [get]
func (h *AccountHandler) Summary(c *gin.Context) {
	result, err := h.uc.Summary.Execute(c.Request.Context())
	if err != nil {
		common.HandleDomainError(c, err)
		return
	}

	common.Success(c, http.StatusOK, result)
}

// RegisterRoutes регистрирует маршруты для AccountHandler.
//
// Routes:
// - POST   /accounts              - Open account
// - GET    /accounts              - List accounts (?order=)
// - DELETE /accounts/:id          - Close account
// - POST   /accounts/:id/deposit  - Deposit
// - POST   /accounts/:id/withdraw - Withdraw
// - POST   /holders/close         - Close all accounts of a holder
// - GET    /archive               - Archived accounts
// - GET    /reports/summary       - Totals per account type
func (h *AccountHandler) RegisterRoutes(router *gin.RouterGroup) {
	accounts := router.Group("/accounts")
	{
		accounts.POST("", h.OpenAccount)
		accounts.GET("", h.ListAccounts)
		accounts.DELETE("/:id", h.CloseAccount)
		accounts.POST("/:id/deposit", h.Deposit)
		accounts.POST("/:id/withdraw", h.Withdraw)
	}

	router.POST("/holders/close", h.CloseHolder)
	router.GET("/archive", h.ListArchive)
	router.GET("/reports/summary", h.Summary)
}
