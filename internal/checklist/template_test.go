package checklist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoadRegistryDefaults(t *testing.T) {
	registry, err := LoadRegistry("")
	require.NoError(t, err)

	tmpl, ok := registry.Get("kdp-paperback-launch")
	require.True(t, ok)
	assert.Len(t, tmpl.Items, 8)
	assert.Equal(t, "interior-pdf", tmpl.Items[0].Key)
	assert.Equal(t, "publish", tmpl.Items[len(tmpl.Items)-1].Key)
}

func TestLoadRegistryOverride(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, `
name: kdp-paperback-launch
items:
  - key: only-step
    title: The only step
`)

	registry, err := LoadRegistry(dir)
	require.NoError(t, err)

	tmpl, ok := registry.Get("kdp-paperback-launch")
	require.True(t, ok)
	assert.Len(t, tmpl.Items, 1, "override should replace the embedded default")
}

func TestTemplateValidate(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "valid",
			yaml: `
name: t
items:
  - {key: a, title: A}
  - {key: b, title: B}
`,
		},
		{
			name:    "missing name",
			yaml:    "items: [{key: a, title: A}]",
			wantErr: "missing name",
		},
		{
			name:    "no items",
			yaml:    "name: t",
			wantErr: "no items",
		},
		{
			name: "duplicate keys",
			yaml: `
name: t
items:
  - {key: a, title: A}
  - {key: a, title: B}
`,
			wantErr: "duplicate item key",
		},
		{
			name: "item missing title",
			yaml: `
name: t
items:
  - {key: a}
`,
			wantErr: "missing title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tmpl Template
			require.NoError(t, yaml.Unmarshal([]byte(tt.yaml), &tmpl))

			err := tmpl.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestAppliesToType(t *testing.T) {
	tmpl := Template{AppliesTo: []string{"crossword", "sudoku"}}
	assert.True(t, tmpl.AppliesToType("crossword"))
	assert.False(t, tmpl.AppliesToType("word_search"))

	open := Template{}
	assert.True(t, open.AppliesToType("anything"))
}

func writeTemplate(t *testing.T, dir, content string) {
	t.Helper()
	path := filepath.Join(dir, "override.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
