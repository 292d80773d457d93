package valueobjects

import "fmt"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	// PriorityUnassigned is the initial priority of a freshly created ticket
	// until a coordinator triages it.
	PriorityUnassigned Priority = "unassigned"
)

var validPriorities = map[Priority]bool{
	PriorityLow:        true,
	PriorityMedium:     true,
	PriorityHigh:       true,
	PriorityUnassigned: true,
}

func (p Priority) String() string {
	return string(p)
}

func (p Priority) IsValid() bool {
	return validPriorities[p]
}

func (p Priority) IsLow() bool {
	return p == PriorityLow
}

func (p Priority) IsMedium() bool {
	return p == PriorityMedium
}

func (p Priority) IsHigh() bool {
	return p == PriorityHigh
}

func (p Priority) IsUnassigned() bool {
	return p == PriorityUnassigned
}

func NewPriority(s string) (Priority, error) {
	p := Priority(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid priority: %s", s)
	}
	return p, nil
}
