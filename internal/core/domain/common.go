package domain

import "time"

// AuditFields holds standard audit information for domain entities.
// Actor fields carry an admin user ID or a system actor such as "system:seed".
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}
