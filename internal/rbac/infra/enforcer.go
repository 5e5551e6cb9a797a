package infra

import (
	_ "embed"
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/casbin/casbin/v2/persist"
	fileadapter "github.com/casbin/casbin/v2/persist/file-adapter"
	stringadapter "github.com/casbin/casbin/v2/persist/string-adapter"
)

var (
	//go:embed model.conf
	bundledModel string

	//go:embed policy.csv
	bundledPolicy string
)

// NewEnforcer loads the model and policy from disk. Empty paths fall back
// to the copies bundled with the binary.
func NewEnforcer(modelPath, policyPath string) (*casbin.Enforcer, error) {
	var (
		m   model.Model
		err error
	)
	if modelPath == "" {
		m, err = model.NewModelFromString(bundledModel)
	} else {
		m, err = model.NewModelFromFile(modelPath)
	}
	if err != nil {
		return nil, fmt.Errorf("load rbac model: %w", err)
	}

	var adapter persist.Adapter = stringadapter.NewAdapter(bundledPolicy)
	if policyPath != "" {
		adapter = fileadapter.NewAdapter(policyPath)
	}

	e, err := casbin.NewEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("load rbac policy: %w", err)
	}
	return e, nil
}
