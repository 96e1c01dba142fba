package steps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepRegistry_Consistency(t *testing.T) {
	for name, def := range StepRegistry {
		assert.Equal(t, name, def.Name)
		assert.NotEmpty(t, def.Category)
		for _, next := range def.Next {
			_, ok := StepRegistry[next]
			assert.True(t, ok, "step %s leads to unknown step %s", name, next)
		}
	}
}

func TestValidateTransition(t *testing.T) {
	tests := []struct {
		from, to string
		wantErr  bool
	}{
		{"", Start, false},
		{Start, Score, false},
		{Score, Done, false},
		{Score, AIFallback, false},
		{AIFallback, Done, false},
		{"", Score, true},
		{Start, Done, true},
		{Start, AIFallback, true},
		{Done, Start, true},
		{AIFallback, Score, true},
		{Start, "RENDER", true},
		{"RENDER", Done, true},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			err := ValidateTransition(tt.from, tt.to)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
		})
	}

	var tErr *TransitionError
	require.ErrorAs(t, ValidateTransition(Start, Done), &tErr)
	assert.Equal(t, "invalid stage transition: START -> DONE", tErr.Error())
}
