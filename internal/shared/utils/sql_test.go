package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoin(t *testing.T) {
	assert.Equal(t, "a = 1 AND b = 2", JoinWithAnd([]string{"a = 1", "b = 2"}))
	assert.Equal(t, "", JoinWithAnd(nil))
	assert.Equal(t, "(a = 1 OR b = 2)", JoinWithOr([]string{"a = 1", "b = 2"}))
	assert.Equal(t, "a = 1", JoinWithOr([]string{"a = 1"}))
}

func TestContainsPattern(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"django", "%django%"},
		{"50%_off", `%50\%\_off%`},
		{`back\slash`, `%back\\slash%`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsPattern(tt.in))
		})
	}
}
