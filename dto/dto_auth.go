package dto

type RegisterDTO struct {
	Email    string `json:"email" validate:"required" example:"jy@example.com"`
	Name     string `json:"name" validate:"required" example:"JY"`
	Password string `json:"password" validate:"required" example:"s3cret-pass"`
}

type LoginDTO struct {
	Email    string `json:"email" validate:"required" example:"jy@example.com"`
	Password string `json:"password" validate:"required" example:"s3cret-pass"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID    string `json:"id" example:"68bf0f1a2a3c4d5e6f708091"`
	Email string `json:"email" example:"jy@example.com"`
	Name  string `json:"name" example:"JY"`
	Image string `json:"image,omitempty"`
}
