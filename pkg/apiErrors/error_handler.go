package apiErrors

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

// Códigos de erro devolvidos pela API
const (
	// Erros de autenticação
	ErrInvalidToken          = "AUTH_006" // Token inválido
	ErrExpiredToken          = "AUTH_007" // Token expirado
	ErrInsufficientPrivilege = "AUTH_008" // Privilégios insuficientes

	// Erros de automação
	ErrAutomationNotFound = "AUT_001" // Automação não encontrada
	ErrStrategyInvalid    = "AUT_003" // Estratégia fora dos limites

	// Erros de cota
	ErrUnsupportedPlatform = "QTA_001" // Plataforma sem cota configurada
	ErrQuotaUnavailable    = "QTA_002" // Não foi possível consultar a cota

	// Erros de validação
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido

	// Erros do servidor
	ErrInternalServer     = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation  = "SRV_002" // Erro de operação de banco de dados
	ErrExternalService    = "SRV_003" // Erro em serviço externo
	ErrCommunication      = "SRV_004" // Erro de comunicação
	ErrStorageUnavailable = "SRV_005" // Armazenamento indisponível
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrExpiredToken:          http.StatusUnauthorized,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrAutomationNotFound:    http.StatusNotFound,
	ErrStrategyInvalid:       http.StatusUnprocessableEntity,
	ErrUnsupportedPlatform:   http.StatusBadRequest,
	ErrQuotaUnavailable:      http.StatusServiceUnavailable,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrMissingRequiredData:   http.StatusBadRequest,
	ErrInvalidFormat:         http.StatusBadRequest,
	ErrInternalServer:        http.StatusInternalServerError,
	ErrDatabaseOperation:     http.StatusInternalServerError,
	ErrExternalService:       http.StatusBadGateway,
	ErrCommunication:         http.StatusServiceUnavailable,
	ErrStorageUnavailable:    http.StatusServiceUnavailable,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// CodedError é implementado pelos erros de casos de uso que já carregam o código da API
type CodedError interface {
	error
	ErrorCode() string
	ErrorDetails() string
}

// StatusFor devolve o status HTTP associado ao código
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	jsoniter.NewEncoder(w).Encode(apiErr)
}

// WriteFromError escreve um erro de caso de uso, usando o código que ele carrega quando houver
func WriteFromError(w http.ResponseWriter, err error, fallbackCode string) {
	var coded CodedError
	if errors.As(err, &coded) {
		WriteError(w, coded.ErrorCode(), coded.Error(), coded.ErrorDetails())
		return
	}

	apiErr := FromError(err, fallbackCode)
	WriteError(w, apiErr.Code, apiErr.Message, nil)
}

// FromError cria um erro de API a partir de um erro Go
// Útil para quando você quer envolver um erro existente em um erro de API
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "Erro desconhecido",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}
