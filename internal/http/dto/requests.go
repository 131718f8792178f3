package dto

import "github.com/google/uuid"

type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Points is a pointer so that an absent field is distinguishable from an
// explicit zero. DeliveryID, when present, dedupes replayed deliveries.
type AdjustReputationRequest struct {
	Points     *int       `json:"points"`
	DeliveryID *uuid.UUID `json:"deliveryId,omitempty"`
}

type UpdateRoleRequest struct {
	Role string `json:"role"`
}

type CreateSpeciesRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CreateObservationRequest struct {
	SpeciesID   uuid.UUID `json:"speciesId"`
	Description string    `json:"description"`
	DangerLevel *int      `json:"dangerLevel"`
}
