package domain

// TenantDefinition describes a tenant created during bootstrap.
type TenantDefinition struct {
	Name        string
	Slug        string
	Domain      string
	Description string
}
