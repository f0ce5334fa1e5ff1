package models

type UserRole string

const (
	AdminRole    UserRole = "admin"
	ReviewerRole UserRole = "user"
)

var roleHumanName = map[UserRole]string{
	AdminRole:    "Administrator",
	ReviewerRole: "Reviewer",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == AdminRole
}

// actor recorded on audit entries written by background side effects
const SystemActor = "system@iga"
