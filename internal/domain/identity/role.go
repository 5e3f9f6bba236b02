package identity

// Role is the closed set of access roles. Adding a role is a breaking
// contract change: every action mapping in the authorization gate must be
// updated together with it.
type Role string

const (
	RoleAdmin          Role = "ADMIN"
	RoleVendedor       Role = "VENDEDOR"
	RoleComprador      Role = "COMPRADOR"
	RoleFinanceiro     Role = "FINANCEIRO"
	RoleEstoquista     Role = "ESTOQUISTA"
	RoleInstalador     Role = "INSTALADOR"
	RoleGestorProducao Role = "GESTOR_PRODUCAO"
	RoleMarketer       Role = "MARKETER"
	RoleCliente        Role = "CLIENTE"
)

// AllRoles lists every valid role
var AllRoles = []Role{
	RoleAdmin,
	RoleVendedor,
	RoleComprador,
	RoleFinanceiro,
	RoleEstoquista,
	RoleInstalador,
	RoleGestorProducao,
	RoleMarketer,
	RoleCliente,
}

// IsValid checks if the role is part of the closed role set
func (r Role) IsValid() bool {
	for _, role := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}
