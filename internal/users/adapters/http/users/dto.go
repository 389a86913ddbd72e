package users

import "userdirectory/internal/users/domain/entities"

// UserResponse - запись пользователя в ответе REST.
type UserResponse struct {
	ID        string   `json:"id"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	FullName  string   `json:"fullName"`
	Followers []string `json:"followers"`
}

// ProfileResponse - запись с подписчиками, раскрытыми в полные записи.
type ProfileResponse struct {
	ID        string         `json:"id"`
	FirstName string         `json:"firstName"`
	LastName  string         `json:"lastName"`
	Username  string         `json:"username"`
	Email     string         `json:"email"`
	FullName  string         `json:"fullName"`
	Followers []UserResponse `json:"followers"`
}

func toUserResponse(u *entities.User) UserResponse {
	followers := u.Followers
	if followers == nil {
		followers = []string{}
	}
	return UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName(),
		Followers: followers,
	}
}

func toUserResponses(users []*entities.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

func toProfileResponse(p *entities.Profile) *ProfileResponse {
	if p == nil || p.User == nil {
		return nil
	}
	return &ProfileResponse{
		ID:        p.User.ID,
		FirstName: p.User.FirstName,
		LastName:  p.User.LastName,
		Username:  p.User.Username,
		Email:     p.User.Email,
		FullName:  p.User.FullName(),
		Followers: toUserResponses(p.Followers),
	}
}
