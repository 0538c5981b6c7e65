package handler

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/engagement-automation-api/internal/domain"
	"github.com/vfg2006/engagement-automation-api/internal/usecases/quota"
	"github.com/vfg2006/engagement-automation-api/pkg/apiErrors"
)

type reserveRequest struct {
	Operations []string `json:"operations"`
}

type reserveResponse struct {
	Platform  domain.Platform `json:"platform"`
	Available bool            `json:"available"`
}

func GetQuotaStatus(service quota.QuotaService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		platform, ok := platformParam(w, r)
		if !ok {
			return
		}

		status, err := service.Status(r.Context(), platform)
		if err != nil {
			writeQuotaError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, status)
	})
}

// ReserveQuota responde se um lote de operações cabe na cota de hoje, sem cobrar nada
func ReserveQuota(service quota.QuotaService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		platform, ok := platformParam(w, r)
		if !ok {
			return
		}

		var request reserveRequest
		if !decodeBody(w, r, &request) {
			return
		}
		if len(request.Operations) == 0 {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Informe ao menos uma operação", nil)
			return
		}

		available, err := service.Reserve(r.Context(), platform, request.Operations)
		if err != nil {
			writeQuotaError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, reserveResponse{Platform: platform, Available: available})
	})
}

func platformParam(w http.ResponseWriter, r *http.Request) (domain.Platform, bool) {
	platform, ok := domain.ParsePlatform(httprouter.ParamsFromContext(r.Context()).ByName("platform"))
	if !ok {
		apiErrors.WriteError(w, apiErrors.ErrUnsupportedPlatform, "Plataforma não suportada", nil)
		return "", false
	}
	return platform, true
}

func writeQuotaError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnsupportedPlatform):
		apiErrors.WriteError(w, apiErrors.ErrUnsupportedPlatform, err.Error(), nil)
	case errors.Is(err, domain.ErrStorageUnavailable):
		apiErrors.WriteError(w, apiErrors.ErrQuotaUnavailable, "Cota indisponível no momento", nil)
	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao consultar cota", nil)
	}
}
