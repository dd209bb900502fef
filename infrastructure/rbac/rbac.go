package rbac

import (
	"strings"

	"monterhyra/infrastructure/cache"
)

const (
	// RoleAdmin manages orders, events and price tables.
	RoleAdmin = "admin"
	// RoleWarehouse reads orders and downloads packing slips and print archives.
	RoleWarehouse = "warehouse"
)

// ValidRole reports whether role is one of the known portal roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleWarehouse
}

// Rbac stores route resources in cache.
type Rbac struct {
	cache *cache.RbacRolesCache
}

func New(c *cache.RbacRolesCache) *Rbac {
	return &Rbac{cache: c}
}

func (r *Rbac) Add(role, code, method, path string) {
	if r == nil || r.cache == nil {
		return
	}
	r.cache.Add(role, cache.Resource{
		Role:   role,
		Code:   code,
		Method: strings.ToUpper(method),
		Path:   path,
	})
}

// Allow registers the same resource for several roles.
func (r *Rbac) Allow(code, method, path string, roles ...string) {
	for _, role := range roles {
		r.Add(role, code, method, path)
	}
}

// Permitted reports whether any of roles may call method on urlPath.
func (r *Rbac) Permitted(roles []string, urlPath, method string) bool {
	if r == nil || r.cache == nil || len(roles) == 0 {
		return false
	}
	return ValidateResourceAccess(r.cache.GetRolesAndResources(roles), urlPath, method)
}

func ValidateResourceAccess(resources []cache.Resource, urlPath, method string) bool {
	method = strings.ToUpper(method)
	for _, res := range resources {
		if res.Method != method {
			continue
		}
		if matchPath(res.Path, urlPath) {
			return true
		}
	}
	return false
}

func matchPath(pattern, path string) bool {
	if pattern == path {
		return true
	}

	pattern = strings.Trim(pattern, "/")
	path = strings.Trim(path, "/")

	patternSeg := strings.Split(pattern, "/")
	pathSeg := strings.Split(path, "/")

	// Segment wildcard matching: /a/*/c and /a/*/*/d.
	if len(patternSeg) == len(pathSeg) {
		for i := range patternSeg {
			if patternSeg[i] == "*" {
				continue
			}
			if patternSeg[i] != pathSeg[i] {
				return false
			}
		}
		return true
	}

	// Prefix wildcard matching: /a/b/* should match any deeper suffix.
	if len(patternSeg) > 0 && patternSeg[len(patternSeg)-1] == "*" {
		prefix := "/" + strings.Join(patternSeg[:len(patternSeg)-1], "/")
		return strings.HasPrefix("/"+path, prefix+"/") || "/"+path == prefix
	}

	return false
}
