package rbac

import (
	"regexp"
	"slices"
	"strings"

	"iga-backend/models"

	"github.com/pkg/errors"
)

type Provider interface {
	GetRuleFunc(method, path string) (models.RbacFunc, bool)
	RegisterRule(module models.Module, permission models.Permission, roles []models.UserRole, swaggerPattern string, handler models.RbacFunc) error
	GetPermissions(role models.UserRole) map[models.Module][]models.Permission
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance()
}

// NewInstance returns a table holding every route rule of the API.
func NewInstance() Provider {
	i := &impl{
		rules:       map[HTTPMethod]*PathRule{},
		permissions: map[models.UserRole]map[models.Module][]models.Permission{},
	}
	i.initRules()
	return i
}

type impl struct {
	rules       map[HTTPMethod]*PathRule
	permissions map[models.UserRole]map[models.Module][]models.Permission
}

var placeholderRe = regexp.MustCompile(`\{[^}]+?\}`)

func (i *impl) GetRuleFunc(method, path string) (models.RbacFunc, bool) {
	path = normalizePath(path)
	for _, httpMethod := range []HTTPMethod{HTTPMethod(strings.ToUpper(method)), ALL} {
		if handler, found := i.rules[httpMethod].find(path); found {
			return handler, true
		}
	}
	return nil, false
}

func (i *impl) RegisterRule(module models.Module, permission models.Permission, roles []models.UserRole, swaggerPattern string, handler models.RbacFunc) error {
	path, methods, err := parseSwaggerPattern(swaggerPattern)
	if err != nil {
		return err
	}
	if handler == nil {
		handler = AllowByRoleFunc(roles)
	}
	var pattern *regexp.Regexp
	if !isExactPath(path) {
		if pattern, err = pathToRegex(path); err != nil {
			return errors.Wrapf(err, "invalid rule pattern (%v)", swaggerPattern)
		}
	}
	for _, method := range methods {
		pathRule, ok := i.rules[method]
		if !ok {
			pathRule = &PathRule{Exact: map[string]models.RbacFunc{}}
			i.rules[method] = pathRule
		}
		if pattern == nil {
			if _, dup := pathRule.Exact[path]; dup {
				return errors.Errorf("rule already registered (%v %v)", method, path)
			}
			pathRule.Exact[path] = handler
			continue
		}
		pathRule.Patterns = append(pathRule.Patterns, PatternRule{Pattern: pattern, Handler: handler})
	}
	i.grant(module, permission, roles)
	return nil
}

// GetPermissions returns a copy of the module permissions granted to the role,
// each list sorted.
func (i *impl) GetPermissions(role models.UserRole) map[models.Module][]models.Permission {
	result := make(map[models.Module][]models.Permission, len(i.permissions[role]))
	for module, permissions := range i.permissions[role] {
		sorted := slices.Clone(permissions)
		slices.Sort(sorted)
		result[module] = sorted
	}
	return result
}

func (i *impl) grant(module models.Module, permission models.Permission, roles []models.UserRole) {
	for _, role := range roles {
		modules, ok := i.permissions[role]
		if !ok {
			modules = map[models.Module][]models.Permission{}
			i.permissions[role] = modules
		}
		if !slices.Contains(modules[module], permission) {
			modules[module] = append(modules[module], permission)
		}
	}
}

// find checks exact paths first, then patterns in registration order.
func (r *PathRule) find(path string) (models.RbacFunc, bool) {
	if r == nil {
		return nil, false
	}
	if handler, exists := r.Exact[path]; exists {
		return handler, true
	}
	for _, patternRule := range r.Patterns {
		if patternRule.Pattern.MatchString(path) {
			return patternRule.Handler, true
		}
	}
	return nil, false
}

func isExactPath(path string) bool {
	return !strings.Contains(path, "{") && !strings.Contains(path, "*")
}

// pathToRegex turns "/api/v1/reviews/{id}/decision" into a regexp matching one
// segment per placeholder. A trailing "*" matches any suffix.
func pathToRegex(path string) (*regexp.Regexp, error) {
	pattern := regexp.QuoteMeta(path)
	pattern = strings.NewReplacer(`\{`, "{", `\}`, "}").Replace(pattern)
	pattern = placeholderRe.ReplaceAllString(pattern, `([^/]+)`)
	pattern = strings.ReplaceAll(pattern, `\*`, `.*?`)
	return regexp.Compile("^" + pattern + "$")
}

func AllowFunc() models.RbacFunc {
	return func(email string, role models.UserRole, uri string) bool {
		return true
	}
}

func AllowByRoleFunc(accessRoles []models.UserRole) models.RbacFunc {
	allowMap := map[models.UserRole]bool{}
	for _, role := range accessRoles {
		allowMap[role] = true
	}
	return func(email string, role models.UserRole, uri string) bool {
		return allowMap[role]
	}
}

// parseSwaggerPattern splits a swag "@router" value such as
// "/api/v1/campaigns [post]" or "/api/v1/assets [get,post]" into path and methods.
func parseSwaggerPattern(pattern string) (path string, methods []HTTPMethod, err error) {
	pattern = strings.TrimSpace(pattern)
	bracketStart := strings.LastIndex(pattern, "[")
	bracketEnd := strings.LastIndex(pattern, "]")
	if bracketStart == -1 || bracketEnd < bracketStart {
		return "", nil, errors.Errorf("method not provided for pattern (%v)", pattern)
	}
	for _, value := range strings.Split(pattern[bracketStart+1:bracketEnd], ",") {
		method := HTTPMethod(strings.ToUpper(strings.TrimSpace(value)))
		if !method.IsValid() {
			return "", nil, errors.Errorf("unknown method %q in pattern (%v)", value, pattern)
		}
		methods = append(methods, method)
	}
	return normalizePath(strings.TrimSpace(pattern[:bracketStart])), methods, nil
}

func normalizePath(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}
