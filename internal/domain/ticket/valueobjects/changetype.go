package valueobjects

import "fmt"

// ChangeType classifies what a change-log row records.
type ChangeType string

const (
	ChangeTypeStatus   ChangeType = "status"
	ChangeTypePriority ChangeType = "priority"
	ChangeTypeCategory ChangeType = "category"
	// ChangeTypeBoth marks a combined priority and category change applied in
	// a single operation.
	ChangeTypeBoth ChangeType = "both"
)

var validChangeTypes = map[ChangeType]bool{
	ChangeTypeStatus:   true,
	ChangeTypePriority: true,
	ChangeTypeCategory: true,
	ChangeTypeBoth:     true,
}

func (ct ChangeType) String() string {
	return string(ct)
}

func (ct ChangeType) IsValid() bool {
	return validChangeTypes[ct]
}

func NewChangeType(s string) (ChangeType, error) {
	ct := ChangeType(s)
	if !ct.IsValid() {
		return "", fmt.Errorf("invalid change type: %s", s)
	}
	return ct, nil
}
