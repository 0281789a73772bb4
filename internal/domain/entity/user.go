package entity

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Roles válidos para User.
const (
	RoleAdmin                = "Administrator"
	RoleManufacturingManager = "Manufacturing Manager"
	RoleOperator             = "Operator"
	RoleInventoryManager     = "Inventory Manager"
)

// Estados de cuenta.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// Roles lista los roles que acepta el sistema.
var Roles = []string{RoleAdmin, RoleManufacturingManager, RoleOperator, RoleInventoryManager}

// User representa un usuario del sistema.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

var roleFolder = cases.Fold()

// RoleEquals compara dos nombres de rol sin distinguir mayúsculas.
func RoleEquals(a, b string) bool {
	return roleFolder.String(strings.TrimSpace(a)) == roleFolder.String(strings.TrimSpace(b))
}

// RoleContains indica si el rol contiene el fragmento dado, sin distinguir mayúsculas.
func RoleContains(role, fragment string) bool {
	return strings.Contains(roleFolder.String(role), roleFolder.String(fragment))
}

// NormalizeRole devuelve el nombre canónico del rol o "" si no es válido.
func NormalizeRole(role string) string {
	for _, r := range Roles {
		if RoleEquals(r, role) {
			return r
		}
	}
	return ""
}

// CanBeAssignedOrders indica si el usuario puede ser responsable de una orden de fabricación
// (el rol contiene "manufacturing manager" u "operator").
func (u *User) CanBeAssignedOrders() bool {
	return RoleContains(u.Role, "manufacturing manager") || RoleContains(u.Role, "operator")
}

// IsActive indica si la cuenta puede iniciar sesión.
func (u *User) IsActive() bool { return u.Status == UserStatusActive }
