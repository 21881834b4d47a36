package domain

import "fmt"

// Stakeholder assigns a person to a role on a use case. The natural key is
// (use case, role, email); RoleName is copied from the role mapping when
// the row is written.
type Stakeholder struct {
	ID        int64
	UseCaseID int64
	RoleID    int64
	Email     string
	RoleName  string
	Audit
}

// Validate normalizes the email and checks the key fields.
func (s *Stakeholder) Validate() error {
	s.Email = NormalizeEmail(s.Email)
	if s.RoleID <= 0 || s.Email == "" {
		return fmt.Errorf("roleId and stakeholderEmail are required")
	}
	if s.ID < 0 {
		return fmt.Errorf("invalid stakeholder id %d", s.ID)
	}
	return nil
}
