package models

// Action - действие, требующее возможности у вызывающего
type Action string

const (
	ActionUpdateIncident Action = "incident:update"
	ActionDeleteIncident Action = "incident:delete"
)

// RoleOfficial - роль с возможностью менять и удалять инциденты
const RoleOfficial = "official"

// Caller - уже проверенная внешним сервисом авторизации личность.
// Name/Phone/Email - данные профиля, из которых берутся поля репортера.
type Caller struct {
	ID    string
	Role  string
	Name  string
	Phone string
	Email string
}

// IsAnonymous - true для незарегистрированного отправителя
func (c *Caller) IsAnonymous() bool {
	return c == nil || c.ID == ""
}
