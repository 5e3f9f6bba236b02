package authz

import (
	"github.com/google/uuid"
	"github.com/lojamae/backend/internal/domain/identity"
	"github.com/lojamae/backend/internal/domain/shared"
)

// Action is a declarative tag naming an operation subject to authorization
type Action string

const (
	// CRM
	ActionViewLeads      Action = "view_leads"
	ActionClaimLead      Action = "claim_lead"
	ActionTransitionLead Action = "transition_lead"
	ActionManageClientes Action = "manage_clientes"
	ActionScheduleVisita Action = "schedule_visita"

	// Sales
	ActionManageOrcamento     Action = "manage_orcamento"
	ActionApproveDesconto     Action = "approve_desconto"
	ActionCreateChecklist     Action = "create_checklist"
	ActionExecuteChecklist    Action = "execute_checklist"
	ActionManageOrdemProducao Action = "manage_ordem_producao"

	// Procurement
	ActionManageFornecedores  Action = "manage_fornecedores"
	ActionManagePedidosCompra Action = "manage_pedidos_compra"
	ActionImportNFe           Action = "import_nfe"

	// Inventory / finance / reports
	ActionManageEstoque        Action = "manage_estoque"
	ActionManageFinanceiro     Action = "manage_financeiro"
	ActionViewFinanceiroReport Action = "view_financeiro_report"
	ActionViewSalesReport      Action = "view_sales_report"
	ActionViewStockReport      Action = "view_stock_report"

	// Marketing / administration
	ActionManageMarketing Action = "manage_marketing"
	ActionManageUsers     Action = "manage_users"
)

type roleSet map[identity.Role]struct{}

func roles(rs ...identity.Role) roleSet {
	set := make(roleSet, len(rs))
	for _, r := range rs {
		set[r] = struct{}{}
	}
	return set
}

// policy is the single static ActionTag to role-set mapping. Every
// endpoint consults this table; role checks are never re-implemented
// per handler.
var policy = map[Action]roleSet{
	ActionViewLeads:      roles(identity.RoleAdmin, identity.RoleVendedor),
	ActionClaimLead:      roles(identity.RoleAdmin, identity.RoleVendedor),
	ActionTransitionLead: roles(identity.RoleAdmin, identity.RoleVendedor),
	ActionManageClientes: roles(identity.RoleAdmin, identity.RoleVendedor),
	ActionScheduleVisita: roles(identity.RoleAdmin, identity.RoleVendedor),

	ActionManageOrcamento:     roles(identity.RoleAdmin, identity.RoleVendedor),
	ActionApproveDesconto:     roles(identity.RoleAdmin),
	ActionCreateChecklist:     roles(identity.RoleAdmin, identity.RoleFinanceiro),
	ActionExecuteChecklist:    roles(identity.RoleAdmin, identity.RoleInstalador),
	ActionManageOrdemProducao: roles(identity.RoleAdmin, identity.RoleGestorProducao),

	ActionManageFornecedores:  roles(identity.RoleAdmin, identity.RoleComprador),
	ActionManagePedidosCompra: roles(identity.RoleAdmin, identity.RoleComprador),
	ActionImportNFe:           roles(identity.RoleAdmin, identity.RoleComprador, identity.RoleFinanceiro),

	ActionManageEstoque:        roles(identity.RoleAdmin, identity.RoleEstoquista, identity.RoleComprador),
	ActionManageFinanceiro:     roles(identity.RoleAdmin, identity.RoleFinanceiro),
	ActionViewFinanceiroReport: roles(identity.RoleAdmin, identity.RoleFinanceiro),
	ActionViewSalesReport:      roles(identity.RoleAdmin, identity.RoleVendedor),
	ActionViewStockReport:      roles(identity.RoleAdmin, identity.RoleEstoquista, identity.RoleComprador),

	ActionManageMarketing: roles(identity.RoleAdmin, identity.RoleMarketer),
	ActionManageUsers:     roles(identity.RoleAdmin),
}

// ownerScoped lists actions where a non-admin is restricted to resources
// they own (a vendedor to their leads and budgets, an instalador to their
// assigned checklists). ADMIN bypasses every owner check.
var ownerScoped = map[Action]struct{}{
	ActionViewLeads:        {},
	ActionTransitionLead:   {},
	ActionScheduleVisita:   {},
	ActionManageOrcamento:  {},
	ActionExecuteChecklist: {},
	ActionViewSalesReport:  {},
}

// Gate decides allow/deny for a session performing an action. It is
// stateless; decisions are evaluated fresh on every request.
type Gate struct{}

// NewGate creates the authorization gate
func NewGate() *Gate {
	return &Gate{}
}

// Authorize decides whether the session may perform action. For
// owner-scoped actions callers pass the resource owner's ID; pass nil
// when the resource has no owner yet (e.g. an unclaimed lead).
//
// Deny reasons map to shared errors: shared.ErrUnauthenticated for
// anonymous sessions, shared.ErrForbidden for a role outside the
// action's allow-set and shared.ErrNotOwner for an owner mismatch. A
// nil return means allow.
func (g *Gate) Authorize(session identity.Session, action Action, resourceOwnerID *uuid.UUID) error {
	if !session.Authenticated {
		return shared.ErrUnauthenticated
	}

	allowed, ok := policy[action]
	if !ok {
		return shared.ErrForbidden
	}
	if _, ok := allowed[session.Role]; !ok {
		return shared.ErrForbidden
	}

	if session.IsAdmin() {
		return nil
	}
	if _, scoped := ownerScoped[action]; scoped && resourceOwnerID != nil {
		if *resourceOwnerID != session.UserID {
			return shared.ErrNotOwner
		}
	}
	return nil
}
