package task

import (
	"bytes"
	"encoding/json"
	"fmt"

	"brandTracker/internal/models/user"
)

type RefKind int

const (
	RefNone RefKind = iota
	RefKey          // email or user identifier
	RefUser         // embedded user object
)

// Ref - ссылка на пользователя, которую backend присылает либо строкой
// (email или id), либо вложенным объектом пользователя.
type Ref struct {
	Kind RefKind
	Key  string
	User user.User
}

func KeyRef(key string) Ref {
	if key == "" {
		return Ref{}
	}
	return Ref{Kind: RefKey, Key: key}
}

func UserRef(u user.User) Ref {
	return Ref{Kind: RefUser, User: u}
}

func (r Ref) IsZero() bool {
	return r.Kind == RefNone
}

func (r *Ref) normalize() {
	if r.Kind == RefUser {
		r.User.Normalize()
	}
}

func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = Ref{}
		return nil
	}

	switch data[0] {
	case '"':
		var key string
		if err := json.Unmarshal(data, &key); err != nil {
			return fmt.Errorf("ссылка на пользователя: %w", err)
		}
		*r = KeyRef(key)
	case '{':
		var u user.User
		if err := json.Unmarshal(data, &u); err != nil {
			return fmt.Errorf("ссылка на пользователя: %w", err)
		}
		u.Normalize()
		*r = UserRef(u)
	default:
		return fmt.Errorf("ссылка на пользователя: неожиданный JSON %s", string(data))
	}
	return nil
}

func (r Ref) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case RefKey:
		return json.Marshal(r.Key)
	case RefUser:
		return json.Marshal(r.User)
	default:
		return []byte("null"), nil
	}
}
