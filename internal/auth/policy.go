package auth

import (
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/shenikar/disaster_incident_system/internal/models"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// Policy - RBAC-политика возможностей на casbin.
// Действие "incident:update" раскладывается в объект "incident" и операцию "update".
type Policy struct {
	enforcer *casbin.Enforcer
}

// NewPolicy строит политику по умолчанию: должностное лицо меняет и удаляет инциденты.
// Тип учетной записи government_official наследует роль official.
func NewPolicy() (*Policy, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("failed to load rbac model: %w", err)
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create enforcer: %w", err)
	}

	for _, action := range []models.Action{models.ActionUpdateIncident, models.ActionDeleteIncident} {
		obj, act := splitAction(action)
		if _, err := e.AddPolicy(models.RoleOfficial, obj, act); err != nil {
			return nil, fmt.Errorf("failed to add policy for %s: %w", action, err)
		}
	}
	if _, err := e.AddGroupingPolicy("government_official", models.RoleOfficial); err != nil {
		return nil, fmt.Errorf("failed to add role grouping: %w", err)
	}

	return &Policy{enforcer: e}, nil
}

// Allowed сообщает, разрешено ли действие роли
func (p *Policy) Allowed(role string, action models.Action) (bool, error) {
	if role == "" {
		return false, nil
	}
	obj, act := splitAction(action)
	return p.enforcer.Enforce(role, obj, act)
}

func splitAction(a models.Action) (string, string) {
	obj, act, _ := strings.Cut(string(a), ":")
	return obj, act
}
