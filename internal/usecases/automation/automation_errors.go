package automation

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de automações
var (
	// Erros de validação
	ErrAutomationIDRequired = errors.New("automation ID is required")
	ErrMotherAccountInvalid = errors.New("mother account is invalid")
	ErrChildAccountInvalid  = errors.New("child account is invalid")

	// Erros de estado
	ErrAutomationNotFound = errors.New("automation not found")

	// Erros de infraestrutura
	ErrGenerateID = errors.New("error generating automation ID")
)

// AutomationError é um erro com contexto adicional para automações
type AutomationError struct {
	Err          error  // Erro base
	Code         string // Código de erro para API
	AutomationID string // ID da automação envolvida (quando aplicável)
	Details      string // Detalhes adicionais
}

// Error implementa a interface error
func (e *AutomationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *AutomationError) Unwrap() error {
	return e.Err
}

// NewAutomationError cria um novo AutomationError
func NewAutomationError(err error, code string, details string) *AutomationError {
	return &AutomationError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

// NewAutomationErrorWithID cria um novo AutomationError com ID da automação
func NewAutomationErrorWithID(err error, code string, automationID string, details string) *AutomationError {
	return &AutomationError{
		Err:          err,
		Code:         code,
		AutomationID: automationID,
		Details:      details,
	}
}

// ErrorCode devolve o código de erro da API
func (e *AutomationError) ErrorCode() string {
	return e.Code
}

// ErrorDetails devolve os detalhes do erro
func (e *AutomationError) ErrorDetails() string {
	return e.Details
}

// IsNotFound verifica se a automação não existe
func IsNotFound(err error) bool {
	return errors.Is(err, ErrAutomationNotFound)
}
