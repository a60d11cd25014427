package auth

// Role is a coarse access level for dashboard users.
type Role string

const (
	RoleViewer    Role = "viewer"
	RoleScheduler Role = "scheduler"
)

// Policy is the injected authorization check consulted before mutating
// operations. It replaces any notion of comparing usernames inline.
type Policy interface {
	CanEdit(user string) bool
	CanReorder(user string) bool
	CanChangePriority(user string) bool
}

// AllowAll grants every capability. The dashboard is not a security boundary;
// this is the default policy when no role table is configured.
type AllowAll struct{}

func (AllowAll) CanEdit(string) bool           { return true }
func (AllowAll) CanReorder(string) bool        { return true }
func (AllowAll) CanChangePriority(string) bool { return true }

// RoleTable grants editing capabilities to schedulers and read-only access to
// everyone else. Unknown users are viewers.
type RoleTable struct {
	roles map[string]Role
}

func NewRoleTable(roles map[string]Role) *RoleTable {
	if roles == nil {
		roles = map[string]Role{}
	}
	return &RoleTable{roles: roles}
}

func (t *RoleTable) role(user string) Role {
	if r, ok := t.roles[user]; ok {
		return r
	}
	return RoleViewer
}

func (t *RoleTable) CanEdit(user string) bool           { return t.role(user) == RoleScheduler }
func (t *RoleTable) CanReorder(user string) bool        { return t.role(user) == RoleScheduler }
func (t *RoleTable) CanChangePriority(user string) bool { return t.role(user) == RoleScheduler }
