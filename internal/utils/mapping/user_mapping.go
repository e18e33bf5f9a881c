package mapping

import (
	"github.com/SscSPs/expense_portal/internal/core/domain"
	"github.com/SscSPs/expense_portal/internal/models"
)

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:     m.UserID,
		FirstName:  m.FirstName,
		LastName:   m.LastName,
		EmployeeID: m.EmployeeID,
		IsAdmin:    m.IsAdmin,
		CreatedAt:  m.CreatedAt,
	}
}
