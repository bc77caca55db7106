package domain

import "time"

type Tenant struct {
	ID          string
	Name        string
	Slug        string // Unique, human-readable scope token used in invitations
	Domain      string
	Description string
	IsActive    bool
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
