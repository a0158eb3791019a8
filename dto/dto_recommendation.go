package dto

type MarkInteractedDTO struct {
	Reaction string `json:"reaction,omitempty" example:"like"`
}
