package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prodcat.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
capacity: 200
workers: 2
ops_per_worker: 200
duration: 0s
rebuild_interval: 5ms
seed: 7
log:
  level: error
`), 0o600))

	for _, strategy := range []string{"exclusive", "lock-free", "phased"} {
		t.Run(strategy, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, run([]string{"-config", path, "-strategy", strategy, "-metrics"}, &out))

			s := out.String()
			assert.Contains(t, s, "Operations: 400\n")
			assert.Contains(t, s, "Products catalog report:\n")
			assert.Contains(t, s, "  Strategy: "+strategy+"\n")
			assert.Contains(t, s, `prodcat_products{strategy="`+strategy+`"} 200`)
		})
	}
}

func TestRunRejectsInvalidFlags(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, run([]string{"-strategy", "optimistic"}, &out))
	assert.Error(t, run([]string{"-no-such-flag"}, &out))
}
