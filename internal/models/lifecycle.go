package models

// IncidentStatus - публичный статус разбора инцидента
type IncidentStatus string

const (
	StatusReported      IncidentStatus = "REPORTED"
	StatusInvestigating IncidentStatus = "INVESTIGATING"
	StatusResponding    IncidentStatus = "RESPONDING"
	StatusResolved      IncidentStatus = "RESOLVED"
)

// DispatchStatus - статус выезда спасательных команд
type DispatchStatus string

const (
	DispatchPending    DispatchStatus = "PENDING"
	DispatchDispatched DispatchStatus = "DISPATCHED"
	DispatchOnScene    DispatchStatus = "ON_SCENE"
	DispatchCompleted  DispatchStatus = "COMPLETED"
)

// Порядок состояний: переход разрешен только на тот же или больший ранг
var incidentStatusRank = map[IncidentStatus]int{
	StatusReported:      0,
	StatusInvestigating: 1,
	StatusResponding:    2,
	StatusResolved:      3,
}

var dispatchStatusRank = map[DispatchStatus]int{
	DispatchPending:    0,
	DispatchDispatched: 1,
	DispatchOnScene:    2,
	DispatchCompleted:  3,
}

func (s IncidentStatus) IsValid() bool {
	_, ok := incidentStatusRank[s]
	return ok
}

func (s IncidentStatus) IsTerminal() bool { return s == StatusResolved }

// CanAdvanceTo сообщает, допустим ли переход s -> next.
// Повтор текущего состояния допустим и ничего не меняет.
func (s IncidentStatus) CanAdvanceTo(next IncidentStatus) bool {
	from, ok1 := incidentStatusRank[s]
	to, ok2 := incidentStatusRank[next]
	return ok1 && ok2 && to >= from
}

func (s DispatchStatus) IsValid() bool {
	_, ok := dispatchStatusRank[s]
	return ok
}

func (s DispatchStatus) CanAdvanceTo(next DispatchStatus) bool {
	from, ok1 := dispatchStatusRank[s]
	to, ok2 := dispatchStatusRank[next]
	return ok1 && ok2 && to >= from
}
