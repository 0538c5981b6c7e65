package domain

import (
	"strings"
	"time"
)

type ActionType string

const (
	ActionTypePost    ActionType = "post"
	ActionTypeAmplify ActionType = "amplify"

	engagePrefix = "engage:"
)

// Tipos de engajamento (sufixo de ActionType "engage:<tipo>")
const (
	EngageLike    = "like"
	EngageComment = "comment"
	EngageReply   = "reply"
	EngageShare   = "share"
	EngageFollow  = "follow"
)

// Operações de cota cobradas por tipo de ação
const (
	OperationRead   = "read"
	OperationWrite  = "write"
	OperationUpload = "upload"
)

func EngageActionType(kind string) ActionType {
	return ActionType(engagePrefix + kind)
}

func (t ActionType) IsEngagement() bool {
	return strings.HasPrefix(string(t), engagePrefix)
}

// EngagementKind retorna "like", "comment", ... para ações de engajamento e "" para as demais
func (t ActionType) EngagementKind() string {
	if !t.IsEngagement() {
		return ""
	}
	return strings.TrimPrefix(string(t), engagePrefix)
}

// Operation mapeia o tipo de ação para a operação de cota da plataforma
func (t ActionType) Operation() string {
	switch {
	case t == ActionTypePost:
		return OperationUpload
	case t == ActionTypeAmplify, t.IsEngagement():
		return OperationWrite
	default:
		return OperationRead
	}
}

type Action struct {
	ID              string          `json:"id"`
	Type            ActionType      `json:"type"`
	AutomationID    string          `json:"automation_id"`
	Platform        Platform        `json:"platform"`
	ActingAccount   SocialAccount   `json:"acting_account"`
	IsChild         bool            `json:"is_child"`
	TargetAccount   *SocialAccount  `json:"target_account,omitempty"`
	TargetContentID string          `json:"target_content_id,omitempty"`
	Hashtag         string          `json:"hashtag,omitempty"`
	DependsOn       string          `json:"depends_on,omitempty"`
	Voice           EngagementStyle `json:"voice,omitempty"`
	DueAt           time.Time       `json:"due_at"`
	CreatedAt       time.Time       `json:"created_at"`
	Attempts        int             `json:"attempts"`
	QuotaDeferrals  int             `json:"quota_deferrals"`
}

// Clone devolve uma cópia independente da ação
func (a *Action) Clone() *Action {
	if a == nil {
		return nil
	}
	c := *a
	if a.TargetAccount != nil {
		target := *a.TargetAccount
		c.TargetAccount = &target
	}
	return &c
}
