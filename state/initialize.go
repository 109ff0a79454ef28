package state

import (
	"time"

	"stylegen/env"
	"stylegen/registry"
)

// newLocalEnv creates LocalEnv usable before configuration is loaded.
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start:    time.Now(),
		Catalog:  env.DefaultCatalog(),
		Registry: registry.New(),
	}
}
