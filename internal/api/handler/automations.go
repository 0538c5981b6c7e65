package handler

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/engagement-automation-api/internal/domain"
	"github.com/vfg2006/engagement-automation-api/internal/usecases/automation"
	"github.com/vfg2006/engagement-automation-api/pkg/apiErrors"
	"github.com/vfg2006/engagement-automation-api/pkg/log"
	"github.com/vfg2006/engagement-automation-api/pkg/middleware"
)

type strategyPayload struct {
	ActionsPerDay           int                `json:"actions_per_day"`
	InteractionDelaySeconds int                `json:"interaction_delay_seconds"`
	TargetHashtags          []string           `json:"target_hashtags"`
	ContentTypes            []string           `json:"content_types"`
	ActionRatios            map[string]float64 `json:"action_ratios,omitempty"`
}

type startAutomationRequest struct {
	MotherAccount domain.SocialAccount  `json:"mother_account"`
	ChildAccounts []domain.ChildAccount `json:"child_accounts"`
	Strategy      strategyPayload       `json:"strategy"`
}

type automationResponse struct {
	ID            string                   `json:"id"`
	MotherAccount domain.SocialAccount     `json:"mother_account"`
	ChildAccounts []domain.ChildAccount    `json:"child_accounts"`
	Strategy      strategyPayload          `json:"strategy"`
	Status        domain.AutomationStatus  `json:"status"`
	Metrics       domain.AutomationMetrics `json:"metrics"`
	StartedAt     time.Time                `json:"started_at"`
	PausedAt      *time.Time               `json:"paused_at,omitempty"`
	ResumedAt     *time.Time               `json:"resumed_at,omitempty"`
}

func (p strategyPayload) toDomain() domain.Strategy {
	return domain.Strategy{
		ActionsPerDay:    p.ActionsPerDay,
		InteractionDelay: time.Duration(p.InteractionDelaySeconds) * time.Second,
		TargetHashtags:   p.TargetHashtags,
		ContentTypes:     p.ContentTypes,
		ActionRatios:     p.ActionRatios,
	}
}

func toAutomationResponse(a *domain.Automation) automationResponse {
	return automationResponse{
		ID:            a.ID,
		MotherAccount: a.MotherAccount,
		ChildAccounts: a.ChildAccounts,
		Strategy: strategyPayload{
			ActionsPerDay:           a.Strategy.ActionsPerDay,
			InteractionDelaySeconds: int(a.Strategy.InteractionDelay / time.Second),
			TargetHashtags:          a.Strategy.TargetHashtags,
			ContentTypes:            a.Strategy.ContentTypes,
			ActionRatios:            a.Strategy.ActionRatios,
		},
		Status:    a.Status,
		Metrics:   a.Metrics,
		StartedAt: a.StartedAt,
		PausedAt:  a.PausedAt,
		ResumedAt: a.ResumedAt,
	}
}

func StartAutomation(service automation.AutomationManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.ClaimsFromContext(r.Context())

		var request startAutomationRequest
		if !decodeBody(w, r, &request) {
			return
		}

		// Só administradores criam automações em nome de outro usuário
		if !claims.IsAdmin() || request.MotherAccount.UserID == "" {
			request.MotherAccount.UserID = claims.UserID
		}

		created, err := service.Start(r.Context(), automation.StartRequest{
			MotherAccount: request.MotherAccount,
			ChildAccounts: request.ChildAccounts,
			Strategy:      request.Strategy.toDomain(),
		})
		if err != nil {
			log.ForContext(r.Context()).WithFields(log.Fields{
				"user_id": claims.UserID,
				"error":   err.Error(),
			}).Warn("Erro ao iniciar automação")
			apiErrors.WriteFromError(w, err, apiErrors.ErrInternalServer)
			return
		}

		log.ForContext(r.Context()).WithAutomation(created.ID).
			WithField("user_id", claims.UserID).
			Info("Automação iniciada")

		writeJSON(w, http.StatusCreated, toAutomationResponse(created))
	})
}

func ListAutomations(service automation.AutomationManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.ClaimsFromContext(r.Context())

		owner := claims.UserID
		if claims.IsAdmin() {
			owner = r.URL.Query().Get("owner")
		}

		automations, err := service.List(r.Context(), owner)
		if err != nil {
			apiErrors.WriteFromError(w, err, apiErrors.ErrInternalServer)
			return
		}

		response := make([]automationResponse, 0, len(automations))
		for _, a := range automations {
			response = append(response, toAutomationResponse(a))
		}

		writeJSON(w, http.StatusOK, response)
	})
}

func GetAutomation(service automation.AutomationManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		current, ok := ownedAutomation(w, r, service)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, toAutomationResponse(current))
	})
}

func PauseAutomation(service automation.AutomationManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		current, ok := ownedAutomation(w, r, service)
		if !ok {
			return
		}

		paused, err := service.Pause(r.Context(), current.ID)
		if err != nil {
			apiErrors.WriteFromError(w, err, apiErrors.ErrInternalServer)
			return
		}
		log.ForContext(r.Context()).WithAutomation(current.ID).Info("Automação pausada")

		writeJSON(w, http.StatusOK, toAutomationResponse(paused))
	})
}

func ResumeAutomation(service automation.AutomationManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		current, ok := ownedAutomation(w, r, service)
		if !ok {
			return
		}

		resumed, err := service.Resume(r.Context(), current.ID)
		if err != nil {
			apiErrors.WriteFromError(w, err, apiErrors.ErrInternalServer)
			return
		}
		log.ForContext(r.Context()).WithAutomation(current.ID).Info("Automação retomada")

		writeJSON(w, http.StatusOK, toAutomationResponse(resumed))
	})
}

func DeleteAutomation(service automation.AutomationManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		current, ok := ownedAutomation(w, r, service)
		if !ok {
			return
		}

		if err := service.Delete(r.Context(), current.ID); err != nil {
			apiErrors.WriteFromError(w, err, apiErrors.ErrInternalServer)
			return
		}
		log.ForContext(r.Context()).WithAutomation(current.ID).Info("Automação removida")

		w.WriteHeader(http.StatusNoContent)
	})
}

// ownedAutomation carrega a automação da rota; automações de outros usuários aparecem
// como inexistentes para quem não é administrador.
func ownedAutomation(w http.ResponseWriter, r *http.Request, service automation.AutomationManager) (*domain.Automation, bool) {
	claims, _ := middleware.ClaimsFromContext(r.Context())
	id := httprouter.ParamsFromContext(r.Context()).ByName("id")

	current, err := service.Status(r.Context(), id)
	if err != nil {
		apiErrors.WriteFromError(w, err, apiErrors.ErrInternalServer)
		return nil, false
	}

	if !claims.IsAdmin() && current.MotherAccount.UserID != claims.UserID {
		apiErrors.WriteError(w, apiErrors.ErrAutomationNotFound, "Automação não encontrada", nil)
		return nil, false
	}

	return current, true
}
