package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    PhoneID
		wantErr bool
	}{
		{name: "digits", input: "5550102030", want: "5550102030"},
		{name: "formatted with plus", input: "+1 (555) 010-2030", want: "+15550102030"},
		{name: "dots", input: "555.010.2030", want: "5550102030"},
		{name: "surrounding space", input: "  123  ", want: "123"},
		{name: "empty", input: "", wantErr: true},
		{name: "plus only", input: "+", wantErr: true},
		{name: "inner plus", input: "1+2", wantErr: true},
		{name: "letters", input: "555-CALL", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePhone(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPhone)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewPairKey_Canonical(t *testing.T) {
	ab, err := NewPairKey("200", "100")
	require.NoError(t, err)
	ba, err := NewPairKey("100", "200")
	require.NoError(t, err)

	assert.Equal(t, ab, ba)
	assert.Equal(t, PhoneID("100"), ab.A)
	assert.Equal(t, "100|200", ab.String())
	assert.Equal(t, PhoneID("200"), ab.Other("100"))
	assert.True(t, ab.Has("200"))
	assert.False(t, ab.Has("300"))
}

func TestNewPairKey_SelfLoop(t *testing.T) {
	_, err := NewPairKey("100", "100")
	assert.ErrorIs(t, err, ErrSelfLoop)

	var loop *SelfLoopError
	require.ErrorAs(t, err, &loop)
	assert.Equal(t, PhoneID("100"), loop.Phone)
}

func TestParsePairKey(t *testing.T) {
	pair, err := ParsePairKey("+200|100")
	require.NoError(t, err)
	assert.Equal(t, PairKey{A: "+200", B: "100"}, pair)

	_, err = ParsePairKey("100")
	assert.Error(t, err)
	_, err = ParsePairKey("100|100")
	assert.ErrorIs(t, err, ErrSelfLoop)
}

func TestPhone_DisplayLabel(t *testing.T) {
	assert.Equal(t, "100", Phone{ID: "100"}.DisplayLabel())
	assert.Equal(t, "Boss\n100", Phone{ID: "100", Alias: "Boss"}.DisplayLabel())
}

func TestParseDirection(t *testing.T) {
	assert.Equal(t, DirectionOutbound, ParseDirection("OUTGOING"))
	assert.Equal(t, DirectionOutbound, ParseDirection(" out "))
	assert.Equal(t, DirectionInbound, ParseDirection("Inbound"))
	assert.Equal(t, DirectionUnknown, ParseDirection(""))
}
