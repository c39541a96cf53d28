package domain

import "time"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type UserProfile struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

type AuthResponse struct {
	Authenticated bool        `json:"authenticated"`
	Token         string      `json:"token,omitempty"`
	User          UserProfile `json:"user"`
	ErrorMessage  string      `json:"error_message,omitempty"`
}

type UserRepository interface {
	CreateUser(user *User) (*User, error)
	GetUserByEmail(email string) (*User, error)
	GetUserByID(id int64) (*User, error)
	UpdateUser(user *User) (*User, error)
	ListUsers() ([]UserProfile, error)
	CountUsers() (int, error)
}

type UserUseCase interface {
	RegisterUser(name, email, password string) (*User, error)
	AuthenticateUser(email, password string) (*AuthResponse, error)
	GetUserProfile(id int64) (*UserProfile, error)
	UpdateProfile(id int64, name, email string) (*UserProfile, error)
	ChangePassword(id int64, currentPassword, newPassword string) error
}

func (u *User) Profile() UserProfile {
	return UserProfile{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
