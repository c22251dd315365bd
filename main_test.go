package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kbase/dpkg/config"
)

func TestLoadConfig(t *testing.T) {
	assert := assert.New(t)

	t.Setenv("DPKG_TEST_PORT", "9090")
	configFile := filepath.Join(t.TempDir(), "dpkg.yaml")
	err := os.WriteFile(configFile, []byte(`
service:
  name: dpkg-main-test
  port: ${DPKG_TEST_PORT}
loader:
  max_concurrent_loads: 3
`), 0644)
	assert.Nil(err)

	assert.Nil(loadConfig(configFile))
	assert.Equal("dpkg-main-test", config.Service.Name)
	assert.Equal(9090, config.Service.Port)
	assert.Equal(3, config.Loader.MaxConcurrentLoads)
}

func TestLoadConfigReportsProblems(t *testing.T) {
	assert := assert.New(t)

	assert.NotNil(loadConfig(filepath.Join(t.TempDir(), "missing.yaml")))

	configFile := filepath.Join(t.TempDir(), "bad.yaml")
	assert.Nil(os.WriteFile(configFile, []byte("service:\n  port: -1\n"), 0644))
	assert.NotNil(loadConfig(configFile))
}
