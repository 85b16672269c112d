package models

const RoleAdmin = "admin"

// AdminUser represents an admin user for the back-office.
type AdminUser struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	IsActive     bool   `json:"isActive"`
	LastLoginAt  string `json:"lastLoginAt,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty"`
	UpdatedAt    string `json:"updatedAt,omitempty"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *AdminUser) IsAdmin() bool {
	return u.Role == RoleAdmin
}
