package cache

import (
	"sync"
)

// Resource maps a role permission to a route pattern and method.
type Resource struct {
	Code   string
	Path   string
	Method string
	Role   string
}

// RbacRolesCache stores role to resources map.
type RbacRolesCache struct {
	mu        sync.RWMutex
	resources map[string][]Resource
}

func NewRbacRolesCache() *RbacRolesCache {
	return &RbacRolesCache{resources: make(map[string][]Resource)}
}

func (c *RbacRolesCache) Add(role string, r Resource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resources[role] = append(c.resources[role], r)
}

func (c *RbacRolesCache) GetRolesAndResources(roles []string) []Resource {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Resource, 0)
	for _, role := range roles {
		out = append(out, c.resources[role]...)
	}
	return out
}
