package slackapimodels

type BaseResponse struct {
	Ok    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type UsersListResponse struct {
	BaseResponse
	Members          []Member         `json:"members"`
	ResponseMetadata ResponseMetadata `json:"response_metadata"`
}

type ResponseMetadata struct {
	NextCursor string `json:"next_cursor"`
}

type Member struct {
	ID      string  `json:"id"`
	Deleted bool    `json:"deleted"`
	IsBot   bool    `json:"is_bot"`
	Profile Profile `json:"profile"`
}

type Profile struct {
	Email    string `json:"email"`
	RealName string `json:"real_name"`
}

type PostMessageRequest struct {
	Channel string `json:"channel"`
	Text    string `json:"text"`
}

type PostMessageResponse struct {
	BaseResponse
	Channel string `json:"channel"`
	TS      string `json:"ts"`
}

type AuthTestResponse struct {
	BaseResponse
	Team   string `json:"team"`
	User   string `json:"user"`
	TeamID string `json:"team_id"`
}
