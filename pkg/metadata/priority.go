package metadata

import (
	"fmt"
	"strings"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func NewPriority(value string) (Priority, error) {
	priority := Priority(strings.ToLower(strings.TrimSpace(value)))
	if !priority.IsValid() {
		return "", fmt.Errorf("invalid priority: %s", value)
	}
	return priority, nil
}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

func (p Priority) String() string {
	return string(p)
}
