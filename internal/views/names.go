package views

import (
	"brandTracker/internal/models/task"
	"brandTracker/internal/models/user"
)

type Side string

const (
	SideAssignedTo Side = "assignedTo"
	SideAssignedBy Side = "assignedBy"
)

const Unknown = "Unknown"

// DisplayName определяет имя, показываемое для одной из сторон задачи.
func DisplayName(t task.Task, side Side, roster user.Roster) string {
	if side == SideAssignedBy {
		return resolveName(t.AssignedByName, t.AssignedBy, roster)
	}
	return resolveName(t.AssignedToName, t.AssignedTo, roster)
}

// resolveName перебирает источники по порядку: готовое имя, имя вложенного
// пользователя, поиск в справочнике, часть email до @, Unknown. Сразу завершает
// только первый источник; следующий пробуется, когда предыдущий ничего не дал.
func resolveName(resolved string, ref task.Ref, roster user.Roster) string {
	if resolved != "" {
		return resolved
	}

	switch ref.Kind {
	case task.RefUser:
		if ref.User.Name != "" {
			return ref.User.Name
		}
		if u, ok := lookupUser(ref.User, roster); ok && u.Name != "" {
			return u.Name
		}
		if local := user.EmailLocalPart(ref.User.Email); local != "" {
			return local
		}
	case task.RefKey:
		if u, ok := roster.Find(ref.Key); ok && u.Name != "" {
			return u.Name
		}
		if local := user.EmailLocalPart(ref.Key); local != "" {
			return local
		}
	case task.RefNone:
	}
	return Unknown
}

func lookupUser(u user.User, roster user.Roster) (user.User, bool) {
	for _, key := range []string{u.Email, u.ID} {
		if found, ok := roster.Find(key); ok {
			return found, true
		}
	}
	return user.User{}, false
}
