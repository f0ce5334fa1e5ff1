package rbac

import (
	"regexp"

	"iga-backend/models"
)

type HTTPMethod string

const (
	GET    HTTPMethod = "GET"
	POST   HTTPMethod = "POST"
	PUT    HTTPMethod = "PUT"
	DELETE HTTPMethod = "DELETE"
	PATCH  HTTPMethod = "PATCH"
	// rule applied to any method without its own match
	ALL    HTTPMethod = "ALL"
)

func (m HTTPMethod) IsValid() bool {
	switch m {
	case GET, POST, PUT, DELETE, PATCH, ALL:
		return true
	}
	return false
}

type PathRule struct {
	Exact    map[string]models.RbacFunc
	Patterns []PatternRule
}

type PatternRule struct {
	Pattern *regexp.Regexp
	Handler models.RbacFunc
}
