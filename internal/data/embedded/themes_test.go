package embedded

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"devconsole/pkg/consoletypes"
)

func TestEmbeddedThemesParse(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "default", data: DefaultThemeData},
		{name: "plain", data: PlainThemeData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotEmpty(t, tt.data)

			var cfg consoletypes.ThemeConfig
			require.NoError(t, yaml.Unmarshal(tt.data, &cfg))
			assert.Equal(t, tt.name, cfg.Name)
		})
	}
}
