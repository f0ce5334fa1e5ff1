package oktaapimodels

type Group struct {
	ID      string       `json:"id"`
	Profile GroupProfile `json:"profile"`
}

type GroupProfile struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// DisplayName falls back to the group id when the profile has no name.
func (g Group) DisplayName() string {
	if g.Profile.Name != "" {
		return g.Profile.Name
	}
	return g.ID
}

type User struct {
	ID      string      `json:"id"`
	Status  string      `json:"status"`
	Profile UserProfile `json:"profile"`
}

type UserProfile struct {
	Email     string `json:"email"`
	Login     string `json:"login"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// ResolvedEmail prefers the profile email over the login.
func (u User) ResolvedEmail() string {
	if u.Profile.Email != "" {
		return u.Profile.Email
	}
	return u.Profile.Login
}

type ErrorData struct {
	ErrorCode    string `json:"errorCode"`
	ErrorSummary string `json:"errorSummary"`
	ErrorID      string `json:"errorId"`
}

type GroupWithMembers struct {
	Group   Group
	Members []User
}
