package dto

type UpsertTopicDTO struct {
	Tag         string `json:"tag" validate:"required" example:"forex"`
	Category    string `json:"category,omitempty" example:"finance"`
	Description string `json:"description,omitempty"`
	CoverImage  string `json:"coverImage,omitempty"`
}

type UnfollowResponse struct {
	Removed bool `json:"removed" example:"true"`
}

type FollowingResponse struct {
	Following bool `json:"following" example:"true"`
}
