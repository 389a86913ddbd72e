package entities

// User - запись справочника пользователей.
// ID назначает хранилище, после создания он не меняется.
type User struct {
	ID        string
	FirstName string
	LastName  string
	Username  string
	Email     string
	// Followers - ссылки на ID других пользователей в порядке добавления.
	// Ссылка может указывать на несуществующую запись.
	Followers []string
}

// FullName вычисляется при чтении и никогда не сохраняется.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Profile - пользователь с раскрытыми записями подписчиков.
type Profile struct {
	User      *User
	Followers []*User
}

// UserInput - данные для создания пользователя. nil означает, что поле не передано.
type UserInput struct {
	FirstName *string   `json:"firstName" validate:"omitnil,name=3"`
	LastName  *string   `json:"lastName" validate:"omitnil,name=3"`
	Username  *string   `json:"username" validate:"omitnil,name=3"`
	Email     *string   `json:"email" validate:"omitnil,email"`
	Followers *[]string `json:"followers"`
}

// NewUser строит запись из проверенного ввода: отсутствующие строки пустые, followers по умолчанию пустой список.
func NewUser(in *UserInput) *User {
	u := &User{
		FirstName: deref(in.FirstName),
		LastName:  deref(in.LastName),
		Username:  deref(in.Username),
		Email:     deref(in.Email),
		Followers: []string{},
	}
	if in.Followers != nil {
		u.Followers = append(u.Followers, (*in.Followers)...)
	}
	return u
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
