package dto

import "github.com/SscSPs/expense_portal/internal/core/domain"

// LoginRequest is the asserted identity triple.
type LoginRequest struct {
	FirstName  string `json:"firstName" form:"firstName" binding:"required"`
	LastName   string `json:"lastName" form:"lastName" binding:"required"`
	EmployeeID string `json:"employeeId" form:"employeeId" binding:"required"`
}

// Identity converts the request into the domain identity.
func (r LoginRequest) Identity() domain.Identity {
	return domain.Identity{FirstName: r.FirstName, LastName: r.LastName, EmployeeID: r.EmployeeID}
}

// UserResponse is the public view of the logged-in user.
type UserResponse struct {
	UserID      string `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	EmployeeID  string `json:"employeeId"`
	DisplayName string `json:"displayName"`
	IsDirector  bool   `json:"isDirector"`
}

// LoginResponse carries the session token for API clients, which send it
// back as "Authorization: Bearer <token>".
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ToUserResponse builds the response for a session's user.
func ToUserResponse(s *domain.Session) UserResponse {
	return UserResponse{
		UserID:      s.User.UserID,
		FirstName:   s.User.FirstName,
		LastName:    s.User.LastName,
		EmployeeID:  s.User.EmployeeID,
		DisplayName: s.User.DisplayName(),
		IsDirector:  s.IsDirector,
	}
}
