package models

import "time"

type AuditLog struct {
	ID string `json:"id"`

	Actor    string `json:"actor"`
	Action   string `json:"action"`
	Entity   string `json:"entity"`
	EntityID string `json:"entityId"`
	Metadata any    `json:"metadata,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}
