// Package navigation filters the admin sidebar tree down to what a given
// user may see, based on role level, tenant business model and visibility
// flags.
package navigation

// BusinessModel is the tenant-level classification gating marketplace-only
// admin features.
type BusinessModel string

const (
	BusinessModelOnlineStore BusinessModel = "ONLINE_STORE"
	BusinessModelMarketplace BusinessModel = "MARKETPLACE"
)

// Item is one node of the static navigation tree.
type Item struct {
	Key            string
	Title          string
	Path           string
	Icon           string
	MinRole        string          // role name; empty means no restriction
	BusinessModels []BusinessModel // empty means all business models
	Hidden         bool            // statically hidden unless config overrides
	Children       []Item

	// Set by Filter on the returned copies.
	Active   bool
	Expanded bool
}

// DefaultTree is the admin dashboard's navigation config.
func DefaultTree() []Item {
	return []Item{
		{Key: "dashboard", Title: "Dashboard", Path: "/", Icon: "home"},
		{Key: "orders", Title: "Orders", Path: "/orders", Icon: "package"},
		{
			Key: "catalog", Title: "Catalog", Path: "/catalog", Icon: "tag",
			Children: []Item{
				{Key: "products", Title: "Products", Path: "/catalog/products"},
				{Key: "categories", Title: "Categories", Path: "/catalog/categories"},
				{Key: "collections", Title: "Collections", Path: "/catalog/collections", MinRole: "staff"},
			},
		},
		{Key: "customers", Title: "Customers", Path: "/customers", Icon: "users", MinRole: "staff"},
		{
			Key: "vendors", Title: "Vendors", Path: "/vendors", Icon: "store",
			MinRole:        "manager",
			BusinessModels: []BusinessModel{BusinessModelMarketplace},
			Children: []Item{
				{Key: "vendor_list", Title: "All Vendors", Path: "/vendors"},
				{Key: "vendor_payouts", Title: "Payouts", Path: "/vendors/payouts", MinRole: "admin"},
			},
		},
		{
			Key: "storefronts", Title: "Storefronts", Path: "/storefronts", Icon: "globe",
			MinRole: "manager",
			Children: []Item{
				{Key: "storefront_list", Title: "All Storefronts", Path: "/storefronts"},
				{Key: "themes", Title: "Themes", Path: "/storefronts/themes"},
			},
		},
		{Key: "analytics", Title: "Analytics", Path: "/analytics", Icon: "chart", MinRole: "manager", Hidden: true},
		{Key: "settings", Title: "Settings", Path: "/settings", Icon: "settings", MinRole: "admin"},
	}
}
