package response_models

type AccountLoginResponse struct {
	Token   string          `json:"token"`
	Account AccountResponse `json:"account"`
}

type AccountResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatar_url,omitempty"`
}
