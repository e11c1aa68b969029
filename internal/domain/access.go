package domain

// Role - плоская роль доступа; иерархии нет, членство проверяется на
// каждой мутирующей операции.
type Role string

const (
	// RoleAdmin управляет зонами, туристами и выдачей ролей
	RoleAdmin Role = "ADMIN"
	// RoleIssuer якорит credentials
	RoleIssuer Role = "ISSUER"
	// RoleResponder ведёт алерты, инциденты и реагирования
	RoleResponder Role = "RESPONDER"
)

// IsValid проверяет известность роли
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleIssuer || r == RoleResponder
}
