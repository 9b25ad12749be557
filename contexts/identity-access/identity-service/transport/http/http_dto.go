package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RegisterRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
	StudentID  string `json:"student_id,omitempty"`
	SourceTag  string `json:"source_tag,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserDTO struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
	StudentID  string `json:"student_id,omitempty"`
	SourceTag  string `json:"source_tag,omitempty"`
	CreatedAt  string `json:"created_at"`
}

type AuthResponse struct {
	Status string  `json:"status"`
	Token  string  `json:"token"`
	Data   UserDTO `json:"data"`
}

type TokenClaimsDTO struct {
	UserID    int64  `json:"user_id"`
	Role      string `json:"role"`
	SourceTag string `json:"source_tag,omitempty"`
}

type ValidateResponse struct {
	Status string         `json:"status"`
	Data   TokenClaimsDTO `json:"data"`
}

type ProfileResponse struct {
	Status string  `json:"status"`
	Data   UserDTO `json:"data"`
}
