// Package dtos - Mappers для конвертации domain entities в DTOs.
//
// Pattern: Mapper/Converter
// Отделяет domain representation от API representation
package dtos

import (
	"github.com/Haleralex/branchledger/internal/domain/entities"
)

// ToAccountDTO конвертирует domain entity Account в DTO.
func ToAccountDTO(account *entities.Account) AccountDTO {
	holder := account.Holder()

	return AccountDTO{
		Identifier:  account.ID().String(),
		AccountType: account.AccountType().String(),
		Branch:      account.Branch().Name(),
		County:      account.Branch().County(),
		FirstName:   holder.FirstName(),
		LastName:    holder.LastName(),
		DateOfBirth: holder.DateOfBirth().String(),
		Balance:     account.Balance().String(),
		Display:     account.String(),
	}
}

// ToAccountDTOList конвертирует список счетов.
func ToAccountDTOList(accounts []*entities.Account) []AccountDTO {
	result := make([]AccountDTO, len(accounts))
	for i, account := range accounts {
		result[i] = ToAccountDTO(account)
	}
	return result
}

// ToSummaryDTO конвертирует агрегаты хранилища.
func ToSummaryDTO(summary entities.Summary, archivedCount int) SummaryDTO {
	byType := make([]TypeTotalsDTO, len(summary.ByType))
	for i, totals := range summary.ByType {
		byType[i] = TypeTotalsDTO{
			AccountType: totals.AccountType.String(),
			Count:       totals.Count,
			Balance:     totals.Balance.String(),
		}
	}

	return SummaryDTO{
		ByType:        byType,
		TotalCount:    summary.Count,
		TotalBalance:  summary.Balance.String(),
		ArchivedCount: archivedCount,
	}
}
