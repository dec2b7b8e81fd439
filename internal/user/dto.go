package user

// CreateUserRequest represents the request body for creating a user
type CreateUserRequest struct {
	Username  string  `json:"username" validate:"required,min=3,max=30"`
	Name      string  `json:"name" validate:"required,min=1,max=120"`
	Email     string  `json:"email" validate:"required,email"`
	Bio       *string `json:"bio,omitempty" validate:"omitempty,max=500"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Website   *string `json:"website,omitempty"`
}

// ToUser maps the request onto a new document
func (r *CreateUserRequest) ToUser() *User {
	return &User{
		Username:  r.Username,
		Name:      r.Name,
		Email:     r.Email,
		Bio:       r.Bio,
		AvatarURL: r.AvatarURL,
		Website:   r.Website,
	}
}

// UserResponse represents the response for a single user
type UserResponse struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
	Website   *string `json:"website"`
}

// ToResponse converts a User model to a UserResponse DTO
func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID.Hex(),
		Username:  u.Username,
		Name:      u.Name,
		Email:     u.Email,
		Bio:       u.Bio,
		AvatarURL: u.AvatarURL,
		Website:   u.Website,
	}
}
