package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Haleralex/branchledger/internal/adapters/http/common"
)

// CommandExecutor выполняет одну строку командного протокола.
// Реализуется cli.Interpreter.
type CommandExecutor interface {
	Execute(ctx context.Context, line string) ([]string, bool)
}

// CommandHandler даёт HTTP клиентам тот же построчный протокол, что и CLI.
type CommandHandler struct {
	executor CommandExecutor
}

// NewCommandHandler создаёт новый CommandHandler.
func NewCommandHandler(executor CommandExecutor) *CommandHandler {
	return &CommandHandler{executor: executor}
}

// CommandRequest - одна строка протокола.
type CommandRequest struct {
	Line string `json:"line" validate:"required"`
}

// CommandResponse - строки, которые CLI напечатал бы в stdout.
type CommandResponse struct {
	Output []string `json:"output"`
	Quit   bool     `json:"quit"`
}

// Execute выполняет строку протокола.
//
// Отказы команды - это часть вывода, поэтому ответ всегда 200.
// Q лишь возвращает баннер завершения: сервер продолжает работу.
//
// @Summary Run one protocol line
// @Tags Commands
// @Accept json
// @Produce json
// @Param request body CommandRequest true "Command line"
// @Success 200 {object} common.APIResponse{data=CommandResponse}
// @Failure 400 {object} common.APIResponse
// @Router /api/v1/commands [post]
func (h *CommandHandler) Execute(c *gin.Context) {
	var req CommandRequest
	if !BindJSON(c, &req) {
		return
	}

	output, quit := h.executor.Execute(c.Request.Context(), req.Line)
	if output == nil {
		output = []string{}
	}

	common.Success(c, http.StatusOK, CommandResponse{Output: output, Quit: quit})
}

// RegisterRoutes регистрирует POST /commands.
func (h *CommandHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/commands", h.Execute)
}
