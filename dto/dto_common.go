package dto

// ===== Error Response =====
type ErrorResponse struct {
	Message string `json:"message" example:"invalid body"`
}

type IDResponse struct {
	ID string `json:"id" example:"68bf0f1a2a3c4d5e6f708091"`
}

type OKResponse struct {
	OK bool `json:"ok" example:"true"`
}
