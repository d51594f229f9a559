package model

// Agent is a field operator running a village kiosk. Agents register
// patients on their behalf and log in with a short numeric PIN instead
// of a password.
type Agent struct {
	Base
	Username         string   `db:"username" json:"username"`
	PINHash          string   `db:"pin_hash" json:"-"`
	AssignedVillages []string `db:"-" json:"assigned_villages"`
	VillagesJSON     []byte   `db:"assigned_villages" json:"-"`
	IsActive         bool     `db:"is_active" json:"is_active"`
}

type AgentLoginRequest struct {
	Username string `json:"username" binding:"required"`
	PIN      string `json:"pin" binding:"required,len=6,numeric"`
}
