// Package cli - построчный командный протокол поверх account use cases.
//
// Одна строка - одна команда, токены разделены пробелами:
//
//	O type branch first last dob amount   открыть счёт
//	C id | C first last dob               закрыть счёт(а)
//	D id amount / W id amount             зачисление / списание
//	P, PA, PB, PH, PT                     отчёты
//	Q                                     завершение
//
// Ошибки команд никогда не завершают цикл: отказ печатается как сообщение,
// непредвиденная ошибка - как "Processing error.".
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/Haleralex/branchledger/internal/application/dtos"
	"github.com/Haleralex/branchledger/internal/domain/entities"
	domainErrors "github.com/Haleralex/branchledger/internal/domain/errors"
	"github.com/Haleralex/branchledger/internal/pkg/logger"
)

// Сообщения протокола.
const (
	StartBanner     = "Transaction Manager is running."
	StopBanner      = "Transaction Manager is terminated."
	InvalidCommand  = "Invalid command."
	InvalidArity    = "Invalid command!"
	ProcessingError = "Processing error."

	ListHeader   = "*List of accounts in the account database."
	ListFooter   = "*end of list."
	EmptyStore   = "Account database is empty!"
	EmptyArchive = "Archive is empty."
)

var accountNumber = regexp.MustCompile(`^\d{9}$`)

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

// UseCases - набор use cases, которые вызывает интерпретатор.
type UseCases struct {
	Open        OpenAccountUseCase
	Close       CloseAccountUseCase
	CloseHolder CloseHolderUseCase
	Deposit     DepositUseCase
	Withdraw    WithdrawUseCase
	List        ListAccountsUseCase
	ListArchive ListArchiveUseCase
}

// ============================================
// Interpreter
// ============================================

// Interpreter разбирает строки протокола и вызывает use cases.
// Сам состояния не хранит: всё состояние - в хранилище за use cases.
type Interpreter struct {
	uc     UseCases
	logger *slog.Logger
}

// NewInterpreter создаёт интерпретатор.
func NewInterpreter(uc UseCases, logger *slog.Logger) *Interpreter {
	return &Interpreter{uc: uc, logger: logger}
}

// Run печатает баннер и выполняет команды из in до Q, конца ввода или отмены ctx.
// Возвращает ошибку только при сбое чтения или записи.
func (i *Interpreter) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	w := bufio.NewWriter(out)
	defer w.Flush()

	if err := writeLines(w, StartBanner); err != nil {
		return err
	}

	readCtx, stopReading := context.WithCancel(ctx)
	defer stopReading()

	lines, readErr := readLines(readCtx, in)
	for {
		if err := ctx.Err(); err != nil {
			i.logger.InfoContext(ctx, "interpreter stopped", slog.String("reason", err.Error()))
			return nil
		}

		select {
		case <-ctx.Done():
			i.logger.InfoContext(ctx, "interpreter stopped", slog.String("reason", ctx.Err().Error()))
			return nil
		case line, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("failed to read commands: %w", err)
				}
				i.logger.InfoContext(ctx, "end of input")
				return nil
			}

			output, quit := i.Execute(ctx, line)
			if err := writeLines(w, output...); err != nil {
				return err
			}
			if quit {
				return nil
			}
		}
	}
}

// readLines читает строки в отдельной горутине, чтобы Run мог выйти по ctx,
// пока чтение заблокировано. Горутина завершается вместе с ctx или входом.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				readErr <- nil
				return
			}
		}
		readErr <- scanner.Err()
	}()

	return lines, readErr
}

func writeLines(w *bufio.Writer, lines ...string) error {
	for _, line := range lines {
		if _, err := w.WriteString(line + "\n"); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return w.Flush()
}

// Execute выполняет одну строку и возвращает строки вывода.
// quit == true только для Q. Пустая строка ничего не печатает.
func (i *Interpreter) Execute(ctx context.Context, line string) (output []string, quit bool) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return nil, false
	}

	command, args := tokens[0], tokens[1:]
	ctx = logger.WithCommandID(ctx, uuid.NewString())

	defer func() {
		if r := recover(); r != nil {
			i.logger.ErrorContext(ctx, "command panicked",
				slog.String("command", command),
				slog.Any("panic", r),
			)
			output, quit = []string{ProcessingError}, false
		}
	}()

	switch command {
	case "O":
		return i.open(ctx, args), false
	case "C":
		return i.close(ctx, args), false
	case "D":
		return i.deposit(ctx, args), false
	case "W":
		return i.withdraw(ctx, args), false
	case "P":
		return i.list(ctx, entities.OrderNone), false
	case "PB":
		return i.list(ctx, entities.OrderByBranch), false
	case "PH":
		return i.list(ctx, entities.OrderByHolder), false
	case "PT":
		return i.list(ctx, entities.OrderByType), false
	case "PA":
		return i.listArchive(ctx), false
	case "Q":
		return []string{StopBanner}, true
	default:
		return []string{InvalidCommand}, false
	}
}

// ============================================
// Commands
// ============================================

func (i *Interpreter) open(ctx context.Context, args []string) []string {
	if len(args) < 6 {
		return []string{InvalidArity}
	}
	result, err := i.uc.Open.Execute(ctx, dtos.OpenAccountCommand{
		AccountType:    args[0],
		Branch:         args[1],
		FirstName:      args[2],
		LastName:       args[3],
		DateOfBirth:    args[4],
		InitialDeposit: args[5],
	})
	if err != nil {
		return i.failure(ctx, err)
	}
	return []string{result.Message}
}

// close: 9 цифр - идентификатор, иначе - владелец (first last dob).
func (i *Interpreter) close(ctx context.Context, args []string) []string {
	if len(args) < 1 {
		return []string{InvalidArity}
	}

	if accountNumber.MatchString(args[0]) {
		result, err := i.uc.Close.Execute(ctx, dtos.CloseAccountCommand{Identifier: args[0]})
		if err != nil {
			return i.failure(ctx, err)
		}
		return []string{result.Message}
	}

	if len(args) < 3 {
		return []string{InvalidArity}
	}
	result, err := i.uc.CloseHolder.Execute(ctx, dtos.CloseHolderCommand{
		FirstName:   args[0],
		LastName:    args[1],
		DateOfBirth: args[2],
	})
	if err != nil {
		return i.failure(ctx, err)
	}
	return []string{result.Message}
}

func (i *Interpreter) deposit(ctx context.Context, args []string) []string {
	if len(args) < 2 {
		return []string{InvalidArity}
	}
	result, err := i.uc.Deposit.Execute(ctx, dtos.DepositCommand{Identifier: args[0], Amount: args[1]})
	if err != nil {
		return i.failure(ctx, err)
	}
	return []string{result.Message}
}

func (i *Interpreter) withdraw(ctx context.Context, args []string) []string {
	if len(args) < 2 {
		return []string{InvalidArity}
	}
	result, err := i.uc.Withdraw.Execute(ctx, dtos.WithdrawCommand{Identifier: args[0], Amount: args[1]})
	if err != nil {
		return i.failure(ctx, err)
	}
	return []string{result.Message}
}

func (i *Interpreter) list(ctx context.Context, order entities.AccountOrder) []string {
	result, err := i.uc.List.Execute(ctx, dtos.ListAccountsQuery{Order: string(order)})
	if err != nil {
		return i.failure(ctx, err)
	}
	if len(result.Accounts) == 0 {
		return []string{EmptyStore}
	}

	lines := make([]string, 0, len(result.Accounts)+2)
	lines = append(lines, ListHeader)
	for _, acc := range result.Accounts {
		lines = append(lines, acc.Display)
	}
	return append(lines, ListFooter)
}

func (i *Interpreter) listArchive(ctx context.Context) []string {
	result, err := i.uc.ListArchive.Execute(ctx)
	if err != nil {
		return i.failure(ctx, err)
	}
	if len(result.Accounts) == 0 {
		return []string{EmptyArchive}
	}

	lines := make([]string, len(result.Accounts))
	for n, acc := range result.Accounts {
		lines[n] = acc.Display
	}
	return lines
}

// failure печатает сообщение отказа; всё, что не DomainError, - "Processing error.".
func (i *Interpreter) failure(ctx context.Context, err error) []string {
	if de, ok := domainErrors.AsDomainError(err); ok {
		return []string{de.Message}
	}
	i.logger.ErrorContext(ctx, "command processing failed", slog.String("error", err.Error()))
	return []string{ProcessingError}
}
