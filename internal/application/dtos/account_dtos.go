// Package dtos - Account DTOs для передачи данных о счетах между слоями.
//
// Команды несут сырые токены протокола (строки): разбор и валидация
// выполняются в use case, чтобы сообщения об ошибках совпадали
// для CLI и HTTP.
package dtos

// ============================================
// Commands (Write операции)
// ============================================

// OpenAccountCommand - команда открытия счёта (O type branch first last dob amount).
type OpenAccountCommand struct {
	AccountType    string `json:"account_type" validate:"required,account_type"` // CHECKING, SAVINGS, MONEY_MARKET
	Branch         string `json:"branch" validate:"required,branch_name"`        // EDISON, PRINCETON, ...
	FirstName      string `json:"first_name" validate:"required"`
	LastName       string `json:"last_name" validate:"required"`
	DateOfBirth    string `json:"date_of_birth" validate:"required,dob"`              // m/d/yyyy
	InitialDeposit string `json:"initial_deposit" validate:"required,money_amount"` // Decimal string: "600.00"
}

// CloseAccountCommand - закрытие одного счёта по идентификатору (C id).
type CloseAccountCommand struct {
	Identifier string `json:"identifier" validate:"required,identifier"`
}

// CloseHolderCommand - закрытие всех счетов владельца (C first last dob).
type CloseHolderCommand struct {
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	DateOfBirth string `json:"date_of_birth" validate:"required,dob"`
}

// DepositCommand - зачисление на счёт (D id amount).
type DepositCommand struct {
	Identifier string `json:"identifier" validate:"required,identifier"`
	Amount     string `json:"amount" validate:"required,money_amount"`
}

// WithdrawCommand - списание со счёта (W id amount).
type WithdrawCommand struct {
	Identifier string `json:"identifier" validate:"required,identifier"`
	Amount     string `json:"amount" validate:"required,money_amount"`
}

// ============================================
// Queries (Read операции)
// ============================================

// ListAccountsQuery - запрос списка открытых счетов (P, PB, PH, PT).
type ListAccountsQuery struct {
	Order string `json:"order" form:"order" validate:"omitempty,oneof=none branch holder type"`
}

// ============================================
// Response DTOs
// ============================================

// AccountDTO - представление счёта для API и отчётов.
type AccountDTO struct {
	Identifier  string `json:"identifier"`
	AccountType string `json:"account_type"`
	Branch      string `json:"branch"`
	County      string `json:"county"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"`
	Balance     string `json:"balance"` // Decimal string: "700.00"
	Display     string `json:"display"` // Строка отчёта: Account#[...] Holder[...] ...
}

// AccountOperationDTO - результат open/deposit/withdraw.
type AccountOperationDTO struct {
	Account            AccountDTO `json:"account"`
	Message            string     `json:"message"` // Сообщение протокола, печатается CLI как есть
	Downgraded         bool       `json:"downgraded,omitempty"`
	PreviousIdentifier string     `json:"previous_identifier,omitempty"` // До понижения MONEY_MARKET -> SAVINGS
}

// CloseResultDTO - результат закрытия одного или всех счетов владельца.
type CloseResultDTO struct {
	Closed  []AccountDTO `json:"closed"`
	Message string       `json:"message"`
}

// AccountListDTO - отсортированный список счетов или архив.
type AccountListDTO struct {
	Accounts   []AccountDTO `json:"accounts"`
	Order      string       `json:"order,omitempty"`
	TotalCount int          `json:"total_count"`
}

// TypeTotalsDTO - агрегаты по одному типу счёта.
type TypeTotalsDTO struct {
	AccountType string `json:"account_type"`
	Count       int    `json:"count"`
	Balance     string `json:"balance"`
}

// SummaryDTO - агрегированный отчёт по хранилищу.
type SummaryDTO struct {
	ByType        []TypeTotalsDTO `json:"by_type"`
	TotalCount    int             `json:"total_count"`
	TotalBalance  string          `json:"total_balance"`
	ArchivedCount int             `json:"archived_count"`
}
