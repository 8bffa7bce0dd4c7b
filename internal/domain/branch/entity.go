package branch

import "time"

type Branch struct {
	ID        string
	Name      string
	Location  string
	ManagerID *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
