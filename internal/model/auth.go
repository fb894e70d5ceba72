package model

// AccessToken is the payload carried by an access token.
type AccessToken struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
