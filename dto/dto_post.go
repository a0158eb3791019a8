package dto

// ===== Request =====
type CreatePostDTO struct {
	Content    string   `json:"content" validate:"required" example:"Markets are wild today #forex"`
	MediaURLs  []string `json:"mediaUrls,omitempty"`
	Visibility string   `json:"visibility" example:"public"`
	ModuleType string   `json:"moduleType,omitempty" example:"group"`
	ModuleID   string   `json:"moduleId,omitempty"`
}

type UpdatePostDTO struct {
	Content    *string  `json:"content,omitempty"`
	MediaURLs  []string `json:"mediaUrls,omitempty"`
	Visibility *string  `json:"visibility,omitempty" example:"private"`
}

type ShareContentDTO struct {
	Content    string `json:"content,omitempty" example:"Worth a read"`
	Visibility string `json:"visibility" example:"public"`
	ModuleType string `json:"moduleType,omitempty"`
	ModuleID   string `json:"moduleId,omitempty"`
}
