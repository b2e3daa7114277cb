package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cdrlink/internal/domain"
)

func TestDetectSchema(t *testing.T) {
	tests := []struct {
		name         string
		columns      []string
		wantKind     SchemaKind
		wantCaller   string
		wantReceiver string
		wantTime     string
		wantDuration string
	}{
		{
			name:     "new format",
			columns:  []string{"Target Number", "Call Direction", "From or To Number", "Date", "Start", "End"},
			wantKind: SchemaNew,
		},
		{
			name:         "old format with timestamp",
			columns:      []string{"caller", "receiver", "timestamp", "duration"},
			wantKind:     SchemaOld,
			wantCaller:   "caller",
			wantReceiver: "receiver",
			wantTime:     "timestamp",
			wantDuration: "duration",
		},
		{
			name:         "old format with time-like column",
			columns:      []string{"Caller", "Receiver", "call_date"},
			wantKind:     SchemaOld,
			wantCaller:   "Caller",
			wantReceiver: "Receiver",
			wantTime:     "call_date",
		},
		{
			name:         "old format without time",
			columns:      []string{"caller", "receiver"},
			wantKind:     SchemaOld,
			wantCaller:   "caller",
			wantReceiver: "receiver",
		},
		{
			name:         "fuzzy from/to",
			columns:      []string{"Call Time", "From", "To", "Duration (s)"},
			wantKind:     SchemaAuto,
			wantCaller:   "From",
			wantReceiver: "To",
			wantTime:     "Call Time",
			wantDuration: "Duration (s)",
		},
		{
			name:         "fuzzy a/b number",
			columns:      []string{"A_Number", "B_Number", "when"},
			wantKind:     SchemaAuto,
			wantCaller:   "A_Number",
			wantReceiver: "B_Number",
			wantTime:     "when",
		},
		{
			name:         "customer column does not match to",
			columns:      []string{"customer", "source_msisdn", "destination_msisdn"},
			wantKind:     SchemaAuto,
			wantCaller:   "source_msisdn",
			wantReceiver: "destination_msisdn",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := DetectSchema(tt.columns)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, s.Kind)
			if tt.wantKind == SchemaNew {
				assert.Equal(t, "Target Number", s.Target)
				assert.Equal(t, "End", s.End)
				return
			}
			assert.Equal(t, tt.wantCaller, s.Caller)
			assert.Equal(t, tt.wantReceiver, s.Receiver)
			assert.Equal(t, tt.wantTime, s.Time)
			assert.Equal(t, tt.wantDuration, s.Duration)
		})
	}
}

func TestDetectSchema_Failure(t *testing.T) {
	_, err := DetectSchema([]string{"name", "amount", "notes"})
	assert.ErrorIs(t, err, domain.ErrSchemaDetection)

	var sde *domain.SchemaDetectionError
	require.ErrorAs(t, err, &sde)
	assert.Equal(t, []string{"name", "amount", "notes"}, sde.Columns)
}
