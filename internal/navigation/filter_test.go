package navigation

import "testing"

func testTree() []Item {
	return []Item{
		{Key: "dashboard", Title: "Dashboard", Path: "/"},
		{
			Key: "reports", Title: "Reports", Path: "/reports", MinRole: "manager",
			Children: []Item{
				{Key: "sales", Title: "Sales", Path: "/reports/sales"},
				{Key: "payouts", Title: "Payouts", Path: "/reports/payouts", MinRole: "admin"},
			},
		},
		{
			Key: "vendors", Title: "Vendors", Path: "/vendors",
			BusinessModels: []BusinessModel{BusinessModelMarketplace},
		},
		{Key: "labs", Title: "Labs", Path: "/labs", Hidden: true},
		{
			Key: "catalog", Title: "Catalog", Path: "/catalog",
			Children: []Item{
				{Key: "products", Title: "Products", Path: "/catalog/products"},
				{Key: "collections", Title: "Collections", Path: "/catalog/collections", MinRole: "manager"},
			},
		},
	}
}

func keys(items []Item) []string {
	var out []string
	for _, item := range items {
		out = append(out, item.Key)
	}
	return out
}

func find(items []Item, key string) *Item {
	for i := range items {
		if items[i].Key == key {
			return &items[i]
		}
	}
	return nil
}

func TestFilterDropsNodesAboveRoleLevel(t *testing.T) {
	// Role level 30 (staff) against a manager-only (70) subtree: the node
	// and all its children disappear.
	filtered := Filter(testTree(), FilterInput{
		RoleLevel:     30,
		BusinessModel: BusinessModelMarketplace,
	})

	if find(filtered, "reports") != nil {
		t.Errorf("expected reports dropped for role level 30, got keys %v", keys(filtered))
	}

	catalog := find(filtered, "catalog")
	if catalog == nil {
		t.Fatal("expected catalog to survive")
	}
	if got := keys(catalog.Children); len(got) != 1 || got[0] != "products" {
		t.Errorf("expected only products under catalog, got %v", got)
	}
}

func TestFilterRoleLevelAdmits(t *testing.T) {
	filtered := Filter(testTree(), FilterInput{
		RoleLevel:     70,
		BusinessModel: BusinessModelOnlineStore,
	})

	reports := find(filtered, "reports")
	if reports == nil {
		t.Fatal("expected reports visible at level 70")
	}
	// The admin-only child is still filtered.
	if got := keys(reports.Children); len(got) != 1 || got[0] != "sales" {
		t.Errorf("expected only sales under reports, got %v", got)
	}
}

func TestFilterBusinessModelRestriction(t *testing.T) {
	cases := []struct {
		model BusinessModel
		want  bool
	}{
		{BusinessModelMarketplace, true},
		{BusinessModelOnlineStore, false},
	}
	for _, tc := range cases {
		filtered := Filter(testTree(), FilterInput{RoleLevel: 100, BusinessModel: tc.model})
		got := find(filtered, "vendors") != nil
		if got != tc.want {
			t.Errorf("model %s: vendors visible = %v, want %v", tc.model, got, tc.want)
		}
	}
}

func TestFilterVisibilityOverrides(t *testing.T) {
	// Hidden by default.
	filtered := Filter(testTree(), FilterInput{RoleLevel: 100, BusinessModel: BusinessModelOnlineStore})
	if find(filtered, "labs") != nil {
		t.Error("expected statically hidden labs to be dropped")
	}

	// Config reveals a hidden node.
	filtered = Filter(testTree(), FilterInput{
		RoleLevel:     100,
		BusinessModel: BusinessModelOnlineStore,
		Visibility:    map[string]bool{"labs": true},
	})
	if find(filtered, "labs") == nil {
		t.Error("expected labs visible with config override")
	}

	// Config hides a visible node.
	filtered = Filter(testTree(), FilterInput{
		RoleLevel:     100,
		BusinessModel: BusinessModelOnlineStore,
		Visibility:    map[string]bool{"dashboard": false},
	})
	if find(filtered, "dashboard") != nil {
		t.Error("expected dashboard hidden with config override")
	}
}

func TestFilterDropsParentWithNoSurvivingChildren(t *testing.T) {
	tree := []Item{
		{
			Key: "admin", Title: "Admin", Path: "/admin",
			Children: []Item{
				{Key: "users", Title: "Users", Path: "/admin/users", MinRole: "admin"},
			},
		},
	}
	filtered := Filter(tree, FilterInput{RoleLevel: 30})
	if len(filtered) != 0 {
		t.Errorf("expected empty tree, parent must not be shown as a dead end; got %v", keys(filtered))
	}
}

func TestFilterUnknownMinRoleLocksNode(t *testing.T) {
	tree := []Item{{Key: "x", Path: "/x", MinRole: "superuser"}}
	filtered := Filter(tree, FilterInput{RoleLevel: 100})
	if len(filtered) != 0 {
		t.Error("expected node with unknown role name to be dropped")
	}
}

func TestFilterActivePathExpandsAncestors(t *testing.T) {
	filtered := Filter(testTree(), FilterInput{
		RoleLevel:     100,
		BusinessModel: BusinessModelOnlineStore,
		ActivePath:    "/catalog/products",
	})

	catalog := find(filtered, "catalog")
	if catalog == nil {
		t.Fatal("expected catalog present")
	}
	if !catalog.Expanded {
		t.Error("expected parent of active item to be expanded")
	}
	products := find(catalog.Children, "products")
	if products == nil || !products.Active {
		t.Error("expected products marked active")
	}

	dashboard := find(filtered, "dashboard")
	if dashboard.Active || dashboard.Expanded {
		t.Error("expected dashboard neither active nor expanded")
	}
}

func TestDefaultTreeFiltersByRole(t *testing.T) {
	viewer := Filter(DefaultTree(), FilterInput{RoleLevel: 10, BusinessModel: BusinessModelOnlineStore})
	owner := Filter(DefaultTree(), FilterInput{RoleLevel: 100, BusinessModel: BusinessModelMarketplace})

	if len(viewer) >= len(owner) {
		t.Errorf("expected viewer tree (%d) smaller than owner tree (%d)", len(viewer), len(owner))
	}
	if find(viewer, "settings") != nil {
		t.Error("expected settings hidden from viewer")
	}
	if find(owner, "vendors") == nil {
		t.Error("expected vendors visible to marketplace owner")
	}
}
