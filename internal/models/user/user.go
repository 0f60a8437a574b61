package user

import "strings"

// User - участник рабочего пространства в том виде, как его отдаёт backend:
// вложенным в задачу или в справочнике.
type User struct {
	MongoID string `json:"_id,omitempty" yaml:"-"`
	ID      string `json:"id,omitempty" yaml:"id"`
	Name    string `json:"name,omitempty" yaml:"name"`
	Email   string `json:"email,omitempty" yaml:"email"`
	Role    string `json:"role,omitempty" yaml:"role,omitempty"`
	Avatar  string `json:"avatar,omitempty" yaml:"avatar,omitempty"`
}

// Normalize копирует _id backend в ID.
func (u *User) Normalize() {
	if u.MongoID != "" {
		u.ID = u.MongoID
	}
}

// Matches сообщает, является ли key email или идентификатором пользователя.
func (u User) Matches(key string) bool {
	if key == "" {
		return false
	}
	return u.Email == key || u.ID == key || (u.MongoID != "" && u.MongoID == key)
}

// Roster - список известных пользователей для разрешения строковых ссылок.
type Roster []User

func (r Roster) Find(key string) (User, bool) {
	for _, u := range r {
		if u.Matches(key) {
			return u, true
		}
	}
	return User{}, false
}

// EmailLocalPart возвращает текст до "@" или всю строку, если его нет.
func EmailLocalPart(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}
