package request

type SyncUserRequest struct {
	UserID string `json:"user_id"`
}

type RegisterDeviceRequest struct {
	UserID    string `json:"user_id"`
	VoipToken string `json:"voip_token" binding:"required,max=512"`
}
