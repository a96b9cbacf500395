package navigation

// RoleLevels maps role names to numeric levels. Higher sees more.
var RoleLevels = map[string]int{
	"viewer":  10,
	"staff":   30,
	"support": 40,
	"manager": 70,
	"admin":   90,
	"owner":   100,
}

// RoleLevel returns the level for a role name. Unknown roles resolve to 0 so
// a typo in a config restricts rather than exposes.
func RoleLevel(name string) (int, bool) {
	level, ok := RoleLevels[name]
	return level, ok
}

// minLevelFor returns the level an item's MinRole demands. Unknown role
// names lock the node to everyone.
func minLevelFor(name string) int {
	if level, ok := RoleLevels[name]; ok {
		return level
	}
	return int(^uint(0) >> 1)
}

// RoleSource produces a role level, or reports that it has nothing. Sources
// are consulted in order; the first one with an answer wins.
type RoleSource func() (int, bool)

// ResolveRoleLevel walks the fallback chain. The canonical order is
// permission-derived priority, then a static role-name lookup, then the
// tenant's role string, then the user's default role. Partially loaded
// permission data therefore still yields a (usually more restrictive)
// navigation set instead of blocking the UI. With no answer at all the
// level is 0.
func ResolveRoleLevel(sources ...RoleSource) int {
	for _, source := range sources {
		if level, ok := source(); ok {
			return level
		}
	}
	return 0
}

// PermissionPriority uses the live permission system's numeric priority,
// when it has loaded.
func PermissionPriority(priority *int) RoleSource {
	return func() (int, bool) {
		if priority == nil {
			return 0, false
		}
		return *priority, true
	}
}

// StaticRole resolves a role name against the static RoleLevels table.
func StaticRole(name string) RoleSource {
	return func() (int, bool) {
		if name == "" {
			return 0, false
		}
		return RoleLevel(name)
	}
}

// TenantRole resolves the per-tenant role string.
func TenantRole(name string) RoleSource {
	return StaticRole(name)
}

// DefaultRole resolves the user's default role.
func DefaultRole(name string) RoleSource {
	return StaticRole(name)
}
