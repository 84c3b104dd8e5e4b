package workspace

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role represents a member's role within a workspace
type Role string

const (
	RoleOwner    Role = "Owner"
	RoleAdmin    Role = "Workspace Admin"
	RoleEmployee Role = "Employee"
)

// IsValid checks if the role is one of the known workspace roles
func (r Role) IsValid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleEmployee:
		return true
	}
	return false
}

// CanManage reports whether the role may approve extensions and manage
// workspace settings.
func (r Role) CanManage() bool {
	return r == RoleOwner || r == RoleAdmin
}

// Member is a workspace membership entry
type Member struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// MemberList stores workspace members as a JSONB column
type MemberList []Member

// Value implements the driver.Valuer interface for MemberList
func (m MemberList) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "[]", nil
	}
	return json.Marshal(m)
}

// Scan implements the sql.Scanner interface for MemberList
func (m *MemberList) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to unmarshal MemberList value: %v", value)
	}
	return json.Unmarshal(bytes, m)
}

// StatusList stores the workspace's ordered status vocabulary as JSONB
type StatusList []string

// Value implements the driver.Valuer interface for StatusList
func (s StatusList) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

// Scan implements the sql.Scanner interface for StatusList
func (s *StatusList) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to unmarshal StatusList value: %v", value)
	}
	return json.Unmarshal(bytes, s)
}

// Contains reports whether the given status is part of the vocabulary
func (s StatusList) Contains(status string) bool {
	for _, v := range s {
		if v == status {
			return true
		}
	}
	return false
}

// StatusCompleted is the terminal status every vocabulary is expected to
// carry.
const StatusCompleted = "Completed"

// DefaultStatuses is the canonical status vocabulary for new workspaces.
func DefaultStatuses() StatusList {
	return StatusList{"To Do", "In Progress", "In Review", "Blocked", StatusCompleted}
}

// Workspace is the top-level tenant container owning projects, members and
// the status vocabulary.
type Workspace struct {
	ID             uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Name           string     `json:"name" gorm:"type:varchar(255);not null"`
	OwnerEmail     string     `json:"owner_email" gorm:"type:varchar(255);not null;index:idx_workspace_owner"`
	Members        MemberList `json:"members" gorm:"type:jsonb"`
	CustomStatuses StatusList `json:"custom_statuses" gorm:"type:jsonb"`
	CreatedAt      time.Time  `json:"created_at" gorm:"not null;default:current_timestamp"`
	UpdatedAt      time.Time  `json:"updated_at" gorm:"not null;default:current_timestamp"`
}

// TableName specifies the table name for the Workspace model
func (Workspace) TableName() string {
	return "workspaces"
}

// Validate checks if the workspace data is valid
func (w *Workspace) Validate() error {
	if w.Name == "" {
		return ErrInvalidInput
	}
	if w.OwnerEmail == "" {
		return ErrInvalidOwner
	}
	if len(w.CustomStatuses) == 0 {
		return ErrEmptyStatusSet
	}
	for _, m := range w.Members {
		if !m.Role.IsValid() {
			return ErrInvalidRole
		}
	}
	return nil
}

// BeforeCreate is called before creating a new workspace record
func (w *Workspace) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	if len(w.CustomStatuses) == 0 {
		w.CustomStatuses = DefaultStatuses()
	}
	w.CreatedAt = time.Now()
	w.UpdatedAt = time.Now()
	return w.Validate()
}

// BeforeUpdate is called before updating a workspace record
func (w *Workspace) BeforeUpdate(tx *gorm.DB) error {
	w.UpdatedAt = time.Now()
	return w.Validate()
}

// MemberByName resolves a member by display name, case-insensitively.
func (w *Workspace) MemberByName(name string) (*Member, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for i := range w.Members {
		if strings.ToLower(w.Members[i].Name) == needle {
			return &w.Members[i], true
		}
	}
	return nil, false
}

// MemberByEmail resolves a member by email, case-insensitively.
func (w *Workspace) MemberByEmail(email string) (*Member, bool) {
	needle := strings.ToLower(strings.TrimSpace(email))
	for i := range w.Members {
		if strings.ToLower(w.Members[i].Email) == needle {
			return &w.Members[i], true
		}
	}
	return nil, false
}

// AdminEmails returns the emails of all members that can manage the
// workspace, owner included.
func (w *Workspace) AdminEmails() []string {
	var admins []string
	for _, m := range w.Members {
		if m.Role.CanManage() {
			admins = append(admins, m.Email)
		}
	}
	return admins
}
