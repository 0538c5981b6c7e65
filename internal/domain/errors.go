package domain

import "errors"

// Taxonomia de erros do motor de automação
var (
	ErrStrategyInvalid     = errors.New("strategy invalid")
	ErrQuotaExceeded       = errors.New("quota exceeded")
	ErrStorageUnavailable  = errors.New("storage unavailable")
	ErrPlatformTransient   = errors.New("platform transient failure")
	ErrPlatformPermanent   = errors.New("platform permanent failure")
	ErrUnsupportedPlatform = errors.New("unsupported platform")
)
