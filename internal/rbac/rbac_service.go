package rbac

import (
	"sort"
	"sync"

	"go-attendance/internal/domain"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(req domain.EnforceRequest) (bool, error)
	Permissions(role string) (RolePermissionsResponse, error)
	Reload() error
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   *zap.Logger
}

func NewService(enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{enforcer: enforcer, logger: l}
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	if req.Role == "" {
		return false, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	allowed, err := s.enforcer.Enforce(req.Role, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", req.Role),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("role", req.Role),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

// Permissions lists what role may do, including inherited grants, sorted by
// resource then action.
func (s *service) Permissions(role string) (RolePermissionsResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rules, err := s.enforcer.GetImplicitPermissionsForUser(role)
	if err != nil {
		return RolePermissionsResponse{}, err
	}

	seen := make(map[PermissionResponse]bool, len(rules))
	perms := make([]PermissionResponse, 0, len(rules))
	for _, rule := range rules {
		if len(rule) < 3 {
			continue
		}
		p := PermissionResponse{Resource: rule[1], Action: rule[2]}
		if seen[p] {
			continue
		}
		seen[p] = true
		perms = append(perms, p)
	}
	sort.Slice(perms, func(i, j int) bool {
		if perms[i].Resource != perms[j].Resource {
			return perms[i].Resource < perms[j].Resource
		}
		return perms[i].Action < perms[j].Action
	})

	return RolePermissionsResponse{Role: role, Permissions: perms}, nil
}

// Reload re-reads the policy from the enforcer's adapter.
func (s *service) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.enforcer.LoadPolicy(); err != nil {
		s.logger.Error("rbac policy reload failed", zap.Error(err))
		return err
	}
	s.logger.Info("rbac policy reloaded")
	return nil
}
