package rbac

import (
	"sync"

	"github.com/casbin/casbin/v2"

	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/tenant"
)

type EnforceRequest struct {
	Role     string
	Resource string
	Action   string
}

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(req EnforceRequest) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
}

// Matriz estática de papéis. Administradores têm a partição inteira;
// funcionários só enxergam as próprias leituras e lançam o próprio ponto.
var rolePolicies = [][3]string{
	{tenant.RoleAdmin, "timerecord", "read"},
	{tenant.RoleAdmin, "timerecord", "create"},
	{tenant.RoleAdmin, "timerecord", "delete"},
	{tenant.RoleAdmin, "adjustment", "read"},
	{tenant.RoleAdmin, "adjustment", "create"},
	{tenant.RoleAdmin, "adjustment", "update"},
	{tenant.RoleAdmin, "adjustment", "delete"},
	{tenant.RoleAdmin, "meal", "read"},
	{tenant.RoleAdmin, "meal", "create"},
	{tenant.RoleAdmin, "meal", "update"},
	{tenant.RoleAdmin, "meal", "delete"},
	{tenant.RoleAdmin, "kpi", "read"},
	{tenant.RoleAdmin, "bulk", "create"},
	{tenant.RoleAdmin, "employee", "read"},
	{tenant.RoleAdmin, "employee", "create"},
	{tenant.RoleAdmin, "employee", "update"},
	{tenant.RoleAdmin, "schedule", "read"},
	{tenant.RoleAdmin, "schedule", "create"},
	{tenant.RoleAdmin, "schedule", "update"},
	{tenant.RoleAdmin, "schedule", "delete"},
	{tenant.RoleAdmin, "worksite", "read"},
	{tenant.RoleAdmin, "worksite", "create"},
	{tenant.RoleAdmin, "worksite", "update"},
	{tenant.RoleAdmin, "facecache", "rebuild"},

	{tenant.RoleFuncionario, "timerecord", "read"},
	{tenant.RoleFuncionario, "timerecord", "create"},
	{tenant.RoleFuncionario, "kpi", "read"},
}

func NewService(enforcer *casbin.Enforcer) (Service, error) {
	s := &service{enforcer: enforcer}

	for _, p := range rolePolicies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	// SUPER_ADMIN herda tudo de ADMIN
	if _, err := enforcer.AddGroupingPolicy(tenant.RoleSuperAdmin, tenant.RoleAdmin); err != nil {
		return nil, err
	}
	// todo papel herda de si mesmo para o matcher g() funcionar
	if _, err := enforcer.AddGroupingPolicy(tenant.RoleAdmin, tenant.RoleAdmin); err != nil {
		return nil, err
	}
	if _, err := enforcer.AddGroupingPolicy(tenant.RoleFuncionario, tenant.RoleFuncionario); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *service) Enforce(req EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.enforcer.Enforce(req.Role, req.Resource, req.Action)
}
