package permission

import (
	"fmt"
	"sync"

	"github.com/casbin/casbin/v2"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"crmdesk/internal/shared/authorization"
	"crmdesk/internal/shared/logger"
)

// Enforcer gates HTTP routes by role. Fine-grained per-ticket rules
// (ownership, claim pool) live in the domain permission checks; casbin
// only answers "may this role hit this surface at all", so operators can
// tighten access without a redeploy.
type Enforcer struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   logger.Interface
}

func NewEnforcer(db *gorm.DB, modelPath string, log logger.Interface) (*Enforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(modelPath, adapter)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("failed to load policy: %w", err)
	}

	e := &Enforcer{
		enforcer: enforcer,
		logger:   log,
	}

	if err := e.seedDefaultPolicies(); err != nil {
		return nil, err
	}

	return e, nil
}

// defaultPolicies is the baseline role grant set, written to storage the
// first time the desk starts against an empty policy table.
var defaultPolicies = [][]string{
	{authorization.RoleAgent.String(), "tickets", "read"},
	{authorization.RoleAgent.String(), "tickets", "write"},
	{authorization.RoleCoordinator.String(), "tickets", "read"},
	{authorization.RoleCoordinator.String(), "tickets", "write"},
	{authorization.RoleCoordinator.String(), "tickets", "manage"},
	{authorization.RoleAdmin.String(), "tickets", "read"},
	{authorization.RoleAdmin.String(), "tickets", "write"},
	{authorization.RoleAdmin.String(), "tickets", "manage"},
}

func (e *Enforcer) seedDefaultPolicies() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	existing, err := e.enforcer.GetPolicy()
	if err != nil {
		return fmt.Errorf("failed to read policy: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	for _, p := range defaultPolicies {
		if _, err := e.enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return fmt.Errorf("failed to seed policy %v: %w", p, err)
		}
	}

	if err := e.enforcer.SavePolicy(); err != nil {
		return fmt.Errorf("failed to persist seeded policies: %w", err)
	}

	e.logger.Infow("seeded default route policies", "count", len(defaultPolicies))
	return nil
}

func (e *Enforcer) Enforce(role string, resource string, action string) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	allowed, err := e.enforcer.Enforce(role, resource, action)
	if err != nil {
		e.logger.Errorw("permission check failed", "error", err, "role", role, "resource", resource, "action", action)
		return false, fmt.Errorf("permission check failed: %w", err)
	}

	return allowed, nil
}

func (e *Enforcer) AddPolicy(role string, resource string, action string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, err := e.enforcer.AddPolicy(role, resource, action)
	if err != nil {
		e.logger.Errorw("failed to add policy", "error", err)
		return fmt.Errorf("failed to add policy: %w", err)
	}

	return e.enforcer.SavePolicy()
}

func (e *Enforcer) RemovePolicy(role string, resource string, action string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, err := e.enforcer.RemovePolicy(role, resource, action)
	if err != nil {
		e.logger.Errorw("failed to remove policy", "error", err)
		return fmt.Errorf("failed to remove policy: %w", err)
	}

	return e.enforcer.SavePolicy()
}

func (e *Enforcer) LoadPolicy() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.enforcer.LoadPolicy(); err != nil {
		return fmt.Errorf("failed to reload policy: %w", err)
	}

	e.logger.Info("policy reloaded successfully")
	return nil
}
