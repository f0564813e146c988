package preferences

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexandrechoske/uniq-adu-portal-sub000/internal/filter"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		wantErr  bool
		validate func(t *testing.T, prefs *Preferences)
	}{
		{
			name:    "Objeto completo",
			payload: `{"auto_refresh_enabled":true,"loop_interval_seconds":300,"selected_companies":["ACME","UNIQ"],"filters":{"year":2025,"cliente":"X"}}`,
			validate: func(t *testing.T, prefs *Preferences) {
				assert.True(t, prefs.AutoRefreshEnabled)
				assert.Equal(t, 300, prefs.LoopIntervalSeconds)
				assert.Equal(t, []string{"ACME", "UNIQ"}, prefs.SelectedCompanies)
				assert.Equal(t, float64(2025), prefs.Filters["year"])
				assert.Equal(t, "X", prefs.Filters["cliente"])
			},
		},
		{
			name:    "Tipos fracos vindos do local storage",
			payload: `{"auto_refresh_enabled":"true","loop_interval_seconds":"60"}`,
			validate: func(t *testing.T, prefs *Preferences) {
				assert.True(t, prefs.AutoRefreshEnabled)
				assert.Equal(t, 60, prefs.LoopIntervalSeconds)
				assert.Empty(t, prefs.Filters)
			},
		},
		{
			name:    "Campos desconhecidos são ignorados",
			payload: `{"tema":"escuro"}`,
			validate: func(t *testing.T, prefs *Preferences) {
				assert.False(t, prefs.AutoRefreshEnabled)
			},
		},
		{
			name:    "JSON inválido",
			payload: `{"auto_refresh_enabled":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefs, err := Decode([]byte(tt.payload))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.validate(t, prefs)
		})
	}
}

func TestPreferences_FilterValues(t *testing.T) {
	prefs := &Preferences{
		SelectedCompanies: []string{"ACME"},
		Filters:           filter.Values{"year": float64(2025), "empresa": "IGNORADA"},
	}

	values := prefs.FilterValues()
	assert.Equal(t, []string{"ACME"}, values[filter.KeyEmpresa])
	assert.Equal(t, float64(2025), values["year"])

	state, err := filter.New(nil)
	require.NoError(t, err)
	require.NoError(t, state.Apply(values))
	assert.Equal(t, "empresa=ACME&year=2025", state.Serialize())
}
