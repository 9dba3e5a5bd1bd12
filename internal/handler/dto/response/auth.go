package response

import "coupon-wallet/internal/domain/user"

type LoginResponse struct {
	Message string          `json:"message"`
	User    user.PublicView `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type MeResponse struct {
	User user.PublicView `json:"user"`
}
