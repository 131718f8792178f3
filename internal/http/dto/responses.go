package dto

import (
	"github.com/google/uuid"
	"github.com/sharklandy/deapsea-project/internal/models"
)

type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type ReputationResponse struct {
	UserID     uuid.UUID `json:"userId"`
	Reputation int       `json:"reputation"`
	Role       string    `json:"role"`
	Promoted   bool      `json:"promoted"`
}

type GlobalHistoryResponse struct {
	TotalActions int                    `json:"totalActions"`
	Limit        int                    `json:"limit"`
	Skip         int                    `json:"skip"`
	Actions      []models.ActionHistory `json:"actions"`
}

type ActorHistoryResponse struct {
	UserID       uuid.UUID              `json:"userId"`
	TotalActions int                    `json:"totalActions"`
	Actions      []models.ActionHistory `json:"actions"`
}

type SpeciesHistoryResponse struct {
	SpeciesID    uuid.UUID              `json:"speciesId"`
	TotalActions int                    `json:"totalActions"`
	Actions      []models.ActionHistory `json:"actions"`
}
