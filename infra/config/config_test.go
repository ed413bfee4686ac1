package config

import (
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/drakos74/mlviz/internal/demo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Demos(t *testing.T) {
	var cfg demo.Config
	require.NoError(t, Load(".", "demos", &cfg))
	assert.Equal(t, 60, cfg.TickRate)
	require.Len(t, cfg.Sliders["perceptron"], 1)
	assert.Equal(t, "numPoints", cfg.Sliders["perceptron"][0].Name)

	// the shipped config must be accepted by the demos
	dd, err := demo.All(cfg)
	require.NoError(t, err)
	assert.Len(t, dd, len(demo.Constructors))
}

func TestLoad(t *testing.T) {

	type test struct {
		content  string
		missing  bool
		notExist bool
	}

	tests := map[string]test{
		"valid":   {content: `{"tick_rate": 30}`},
		"invalid": {content: `{"tick_rate": `},
		"missing": {missing: true, notExist: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir, err := ioutil.TempDir("", "config")
			require.NoError(t, err)
			defer os.RemoveAll(dir)
			if !tt.missing {
				require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "demos.json"), []byte(tt.content), 0644))
			}

			var cfg demo.Config
			err = Load(dir, "demos", &cfg)
			if name == "valid" {
				require.NoError(t, err)
				assert.Equal(t, 30, cfg.TickRate)
				return
			}
			assert.Error(t, err)
			assert.Equal(t, tt.notExist, errors.Is(err, os.ErrNotExist))
		})
	}
}

func TestMustLoad(t *testing.T) {
	var cfg demo.Config
	assert.Panics(t, func() {
		MustLoad("unknown", &cfg)
	})
}
