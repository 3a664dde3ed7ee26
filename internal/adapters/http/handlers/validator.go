// Package handlers содержит HTTP handlers для REST API ledger'а.
//
// Handler - это Adapter в терминах Clean Architecture:
// - Принимает HTTP запрос
// - Преобразует в Command/Query DTO
// - Вызывает Use Case
// - Преобразует результат в HTTP ответ
//
// Бизнес-правила (возраст владельца, уникальность типа счёта,
// достаточность средств) проверяют use cases; здесь только форма токенов.
package handlers

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/Haleralex/branchledger/internal/adapters/http/common"
	"github.com/Haleralex/branchledger/internal/domain/valueobjects"
)

// ============================================
// Custom Validator Setup
// ============================================

var setupOnce sync.Once

// SetupValidator настраивает валидатор Gin под DTO ledger'а:
// - теги `validate` вместо `binding` (DTO общие для CLI и HTTP)
// - имена полей в ошибках берутся из json тега
// - регистрируются валидаторы токенов протокола
func SetupValidator() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.SetTagName("validate")
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		registerValidations(v)
	})
}

// registerValidations регистрирует валидаторы токенов.
func registerValidations(v *validator.Validate) {
	_ = v.RegisterValidation("account_type", validateAccountType)
	_ = v.RegisterValidation("branch_name", validateBranchName)
	_ = v.RegisterValidation("dob", validateDateShape)
	_ = v.RegisterValidation("money_amount", validateMoneyAmount)
	_ = v.RegisterValidation("identifier", validateIdentifier)
}

// ============================================
// Custom Validators
// ============================================

// validateAccountType - имя типа счёта из каталога (регистр не важен).
func validateAccountType(fl validator.FieldLevel) bool {
	_, err := valueobjects.ParseAccountType(fl.Field().String())
	return err == nil
}

// validateBranchName - город отделения из каталога (регистр не важен).
func validateBranchName(fl validator.FieldLevel) bool {
	_, err := valueobjects.ParseBranch(fl.Field().String())
	return err == nil
}

// validateDateShape - форма m/d/yyyy. Календарь и возраст проверяет use case,
// чтобы клиент получил то же сообщение, что и оператор CLI.
func validateDateShape(fl validator.FieldLevel) bool {
	_, err := valueobjects.ParseDate(fl.Field().String())
	return err == nil
}

// validateMoneyAmount - десятичное число в допустимом диапазоне. Знак проверяет use case.
func validateMoneyAmount(fl validator.FieldLevel) bool {
	_, err := valueobjects.ParseAmount(fl.Field().String())
	return err == nil || errors.Is(err, valueobjects.ErrNonPositiveAmount)
}

// validateIdentifier - девятизначный номер счёта с известными кодами.
func validateIdentifier(fl validator.FieldLevel) bool {
	_, err := valueobjects.ParseIdentifier(fl.Field().String())
	return err == nil
}

// ============================================
// Validation Error Handling
// ============================================

// HandleValidationErrors преобразует ошибки биндинга в HTTP ответ.
func HandleValidationErrors(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		common.BadRequestResponse(c, "Invalid request body: "+err.Error())
		return
	}

	fieldErrors := make([]common.FieldError, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		fieldErrors = append(fieldErrors, common.FieldError{
			Field:   fieldErr.Field(),
			Message: getValidationMessage(fieldErr),
			Code:    fieldErr.Tag(),
		})
	}
	common.ValidationErrorResponse(c, fieldErrors)
}

// getValidationMessage возвращает человекочитаемое сообщение об ошибке.
func getValidationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "oneof":
		return "Value must be one of: " + fe.Param()
	case "account_type":
		return "Unknown account type (CHECKING, SAVINGS, MONEY_MARKET)"
	case "branch_name":
		return "Unknown branch"
	case "dob":
		return "Invalid date format (use m/d/yyyy)"
	case "money_amount":
		return "Invalid amount format (use decimal like '100.50')"
	case "identifier":
		return "Invalid account number (9 digits)"
	default:
		return "Invalid value"
	}
}

// ============================================
// Request Parsing Helpers
// ============================================

// BindJSON биндит JSON тело запроса.
// Возвращает false, если ответ с ошибкой уже отправлен.
func BindJSON[T any](c *gin.Context, req *T) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		HandleValidationErrors(c, err)
		return false
	}
	return true
}

// BindQuery биндит query параметры.
func BindQuery[T any](c *gin.Context, req *T) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		HandleValidationErrors(c, err)
		return false
	}
	return true
}
