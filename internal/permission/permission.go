package permission

// Set is the per-module permission tuple assigned to a role.
type Set struct {
	View   bool `json:"view"`
	Create bool `json:"create"`
	Edit   bool `json:"edit"`
	Delete bool `json:"delete"`
}

// Map associates module names with permission sets. Modules absent
// from the map grant nothing.
type Map map[string]Set

// Module names, in navigation order.
const (
	ModuleDashboard     = "dashboard"
	ModuleCrops         = "crops"
	ModuleEnvironment   = "environment"
	ModuleSmartDevices  = "smartdevices"
	ModuleGap           = "gap"
	ModuleInventory     = "inventory"
	ModuleSales         = "sales"
	ModuleHR            = "hr"
	ModuleLedger        = "ledger"
	ModuleProfitability = "profitability"
	ModuleReports       = "reports"
	ModuleAssistant     = "assistant"
	ModuleSettings      = "settings"
	ModuleAdmin         = "admin"
)

// Actions within a module.
const (
	ActionView   = "view"
	ActionCreate = "create"
	ActionEdit   = "edit"
	ActionDelete = "delete"
)

// Modules lists every known module in navigation order.
var Modules = []string{
	ModuleDashboard,
	ModuleCrops,
	ModuleEnvironment,
	ModuleSmartDevices,
	ModuleGap,
	ModuleInventory,
	ModuleSales,
	ModuleHR,
	ModuleLedger,
	ModuleProfitability,
	ModuleReports,
	ModuleAssistant,
	ModuleSettings,
	ModuleAdmin,
}

// Evaluate returns the permission set for a module. A module missing
// from the map yields the zero set (everything denied).
func Evaluate(m Map, module string) Set {
	if m == nil {
		return Set{}
	}
	return m[module]
}

// Allows reports whether the given action is granted for the module.
func (s Set) Allows(action string) bool {
	switch action {
	case ActionView:
		return s.View
	case ActionCreate:
		return s.Create
	case ActionEdit:
		return s.Edit
	case ActionDelete:
		return s.Delete
	}
	return false
}

// Normalize enforces the admin-editor rules on a permission map:
// granting create, edit or delete implies view, and revoking view
// revokes the other three. Unknown module keys are dropped.
func Normalize(m Map) Map {
	out := make(Map, len(Modules))
	for _, module := range Modules {
		s, ok := m[module]
		if !ok {
			continue
		}
		if s.Create || s.Edit || s.Delete {
			s.View = true
		}
		out[module] = s
	}
	return out
}

// ViewableModules returns, in navigation order, the modules the map
// grants view access to. The first element is the landing module for
// a session whose requested view is unauthorized.
func ViewableModules(m Map) []string {
	var viewable []string
	for _, module := range Modules {
		if Evaluate(m, module).View {
			viewable = append(viewable, module)
		}
	}
	return viewable
}
