package dto

type AddReactionDTO struct {
	FeedItemID   string `json:"feedItemId" validate:"required" example:"68bf0f1a2a3c4d5e6f708091"`
	ReactionType string `json:"reactionType" validate:"required" example:"like"`
}

type ReactionResponse struct {
	Created bool `json:"created" example:"true"`
}
