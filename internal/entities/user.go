package entities

import "time"

// Role IDs as seeded by the migrations.
const (
	RoleAdmin int32 = 1
	RoleUser  int32 = 2
)

type User struct {
	ID           int64      `json:"id"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Title        string     `json:"title"`
	Image        string     `json:"image"`
	Phone        string     `json:"phone"`
	RoleID       int32      `json:"role_id"`
	DeletedAt    *time.Time `json:"-"` // nil means active
}

// Profile is the public projection of a user returned by the API.
type Profile struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Title     string `json:"title"`
	Image     string `json:"image"`
	RoleID    int32  `json:"role_id"`
}

func (u User) Profile() Profile {
	return Profile{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
		Email:     u.Email,
		Phone:     u.Phone,
		Title:     u.Title,
		Image:     u.Image,
		RoleID:    u.RoleID,
	}
}
