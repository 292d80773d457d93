package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPriority(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Priority
		wantErr bool
	}{
		{"low", "low", PriorityLow, false},
		{"medium", "medium", PriorityMedium, false},
		{"high", "high", PriorityHigh, false},
		{"unassigned", "unassigned", PriorityUnassigned, false},
		{"urgent not supported", "urgent", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewPriority(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewCategory(t *testing.T) {
	got, err := NewCategory("ordinary")
	assert.NoError(t, err)
	assert.True(t, got.IsOrdinary())

	got, err = NewCategory("extraordinary")
	assert.NoError(t, err)
	assert.True(t, got.IsExtraordinary())

	_, err = NewCategory("billing")
	assert.Error(t, err)
}

func TestNewChangeType(t *testing.T) {
	for _, s := range []string{"status", "priority", "category", "both"} {
		ct, err := NewChangeType(s)
		assert.NoError(t, err)
		assert.True(t, ct.IsValid())
	}

	_, err := NewChangeType("assignee")
	assert.Error(t, err)
}

func TestNewMessageType(t *testing.T) {
	for _, s := range []string{"text", "attachment", "status_change"} {
		mt, err := NewMessageType(s)
		assert.NoError(t, err)
		assert.True(t, mt.IsValid())
	}

	_, err := NewMessageType("system")
	assert.Error(t, err)
}
