package domain

// User is the identity-provider profile of a submitting user.
// It is embedded by value into every Upload at creation time and is
// immutable afterwards. Mail-origin submissions carry a synthetic
// profile with ID 0 and the sender address as username.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
	WebURL    string `json:"web_url,omitempty"`
}
