package app

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewConfig_FlagModeRequiresPaths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid flag mode",
			cfg:  Config{DataPath: "stars.csv", OutputPath: "sky.png"},
		},
		{
			name:    "missing data path",
			cfg:     Config{OutputPath: "sky.png"},
			wantErr: true,
		},
		{
			name:    "missing output path",
			cfg:     Config{DataPath: "stars.csv"},
			wantErr: true,
		},
		{
			name: "chart mode needs neither",
			cfg:  Config{ChartPath: "charts/"},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			config, err := NewConfig(tt.cfg)

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, config)
		})
	}
}
