package infra

import "github.com/casbin/casbin/v2"

// NewEnforcer builds an enforcer from the RBAC-with-domains model file.
// No policy adapter: the service loads policy rows from Postgres itself.
func NewEnforcer(modelPath string) (*casbin.Enforcer, error) {
	return casbin.NewEnforcer(modelPath)
}
