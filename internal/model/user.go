package model

type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Points    uint64 `json:"points"`
	CreatedAt string `json:"createdAt"`
}

type GetMeRequest struct{}

type GetMeResponse struct {
	User
}
