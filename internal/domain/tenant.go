package domain

import "time"

// Tenant is an isolated customer organization. All business data is
// partitioned by tenant id; tenants are created by provisioning/seed and
// immutable afterwards.
type Tenant struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateTenantRequest struct {
	Slug string `json:"slug" validate:"required,min=2,max=64"`
	Name string `json:"name" validate:"required,min=2,max=128"`
}
