package platformdomain

// ErrorResponse representa a estrutura de erro do gateway das plataformas
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails contém os detalhes de erro devolvidos pelo gateway
type ErrorDetails struct {
	Message   string `json:"message"`
	Code      string `json:"code"`
	Retryable bool   `json:"retryable,omitempty"`
}

// IsRateLimited verifica se a plataforma pediu para reduzir o ritmo
func (e *ErrorResponse) IsRateLimited() bool {
	return e.Error.Code == "rate_limited" || e.Error.Code == "quota_exceeded"
}
