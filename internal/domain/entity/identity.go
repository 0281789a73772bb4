package entity

// Identity es el usuario autenticado que invoca una operación.
// Se pasa explícitamente a los casos de uso; no existe contexto global de petición.
type Identity struct {
	UserID string
	Role   string
}

// HasRole indica si la identidad tiene alguno de los roles dados.
func (i Identity) HasRole(roles ...string) bool {
	for _, r := range roles {
		if RoleEquals(i.Role, r) {
			return true
		}
	}
	return false
}

// IsSupervisor agrupa a administradores y jefes de manufactura.
func (i Identity) IsSupervisor() bool {
	return i.HasRole(RoleAdmin, RoleManufacturingManager)
}
