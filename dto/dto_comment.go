package dto

type AddCommentDTO struct {
	ParentID        string   `json:"parentId" validate:"required" example:"68bf0f1a2a3c4d5e6f708091"`
	ParentType      string   `json:"parentType" validate:"required" example:"feedItem"`
	Content         string   `json:"content" validate:"required" example:"Great post!"`
	ParentCommentID string   `json:"parentCommentId,omitempty"`
	MediaURLs       []string `json:"mediaUrls,omitempty"`
}

type UpdateCommentDTO struct {
	Content   string   `json:"content" validate:"required"`
	MediaURLs []string `json:"mediaUrls,omitempty"`
	AsAdmin   bool     `json:"asAdmin,omitempty"`
}
