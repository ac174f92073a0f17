package request

type LoginRequest struct {
	Token string `json:"externalToken" binding:"required"`
}
