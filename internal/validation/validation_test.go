package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `yaml:"name" validate:"required"`
	Count int    `json:"count" validate:"min=1,max=10"`
	Mode  string `validate:"omitempty,oneof=a b"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name      string
		in        sample
		wantField string
		wantMsg   string
	}{
		{name: "valid", in: sample{Name: "x", Count: 3}},
		{name: "missing name", in: sample{Count: 3}, wantField: "name", wantMsg: "name is required"},
		{name: "count too low", in: sample{Name: "x"}, wantField: "count", wantMsg: "count must be at least 1"},
		{name: "count too high", in: sample{Name: "x", Count: 11}, wantField: "count", wantMsg: "count must be at most 10"},
		{name: "bad mode", in: sample{Name: "x", Count: 1, Mode: "c"}, wantField: "Mode", wantMsg: "Mode must be one of: a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.in)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var verr *Error
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
			assert.Contains(t, verr.Message, tt.wantMsg)
		})
	}
}
