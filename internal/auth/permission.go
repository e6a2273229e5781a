package auth

import "strings"

// Permission is a stable capability identifier checked by the HTTP layer.
type Permission string

const (
	PermOrdersCheckout     Permission = "orders:checkout"
	PermOrdersReadOwn      Permission = "orders:read:own"
	PermOrdersReadAll      Permission = "orders:read:all"
	PermOrdersUpdateStatus Permission = "orders:update-status"
	PermOrdersClaim        Permission = "orders:claim"
	PermDriversRead        Permission = "drivers:read"
	PermProductsRead       Permission = "products:read"
	PermProductsWrite      Permission = "products:write"
	PermStockUpdate        Permission = "stock:update"
	PermCartManage         Permission = "cart:manage"
)

// Role names as carried in the token. Roles only select a default grant
// set; authorization never compares role names.
const (
	RoleAdmin     = "admin"
	RoleCustomer  = "customer"
	RoleDriver    = "driver"
	RoleWarehouse = "warehouse"
)

func AllPermissions() []Permission {
	return []Permission{
		PermOrdersCheckout,
		PermOrdersReadOwn,
		PermOrdersReadAll,
		PermOrdersUpdateStatus,
		PermOrdersClaim,
		PermDriversRead,
		PermProductsRead,
		PermProductsWrite,
		PermStockUpdate,
		PermCartManage,
	}
}

func getRolePermissions() map[string][]Permission {
	return map[string][]Permission{
		RoleAdmin: AllPermissions(),
		RoleCustomer: {
			PermOrdersCheckout,
			PermOrdersReadOwn,
			PermProductsRead,
			PermCartManage,
		},
		RoleDriver: {
			PermOrdersClaim,
			PermProductsRead,
		},
		RoleWarehouse: {
			PermOrdersReadAll,
			PermOrdersUpdateStatus,
			PermDriversRead,
			PermProductsRead,
			PermProductsWrite,
			PermStockUpdate,
		},
	}
}

// DefaultPermissions returns the grant set of role; unknown roles get none.
func DefaultPermissions(role string) []Permission {
	return getRolePermissions()[strings.ToLower(strings.TrimSpace(role))]
}
