package config

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// a valid service config entry
const VALID_SERVICE string = `
service:
  name: dpkg-test
  port: 8080
  max_connections: 100
`

// a valid loader config entry
const VALID_LOADER string = `
loader:
  timeout: ${DPKG_TEST_TIMEOUT}
  max_concurrent_loads: 4
  user_agent: dpkg-test
`

// tests whether config.Init falls back to defaults for blank input
func TestInitAcceptsBlankInput(t *testing.T) {
	b := []byte("")
	err := Init(b)
	assert.Nil(t, err, "Blank config triggered an error.")
	assert.Equal(t, "dpkg", Service.Name)
	assert.Equal(t, 8080, Service.Port)
	assert.Equal(t, 100, Service.MaxConnections)
	assert.Equal(t, 0, Loader.MaxConcurrentLoads)
}

// tests whether config.Init reports an error for malformed YAML
func TestInitRejectsMalformedInput(t *testing.T) {
	b := []byte("service: [this is: not")
	err := Init(b)
	assert.NotNil(t, err, "Malformed config didn't trigger an error.")
}

// tests whether config.Init reports an error for an invalid port
func TestInitRejectsBadPort(t *testing.T) {
	yaml := "service:\n  port: -1\n\n" + VALID_LOADER
	b := []byte(yaml)
	err := Init(b)
	assert.NotNil(t, err, "Config with bad port didn't trigger an error.")
	yaml = "service:\n  port: 1000000\n\n" + VALID_LOADER
	b = []byte(yaml)
	err = Init(b)
	assert.NotNil(t, err, "Config with bad port didn't trigger an error.")
}

// tests whether config.Init reports an error for an invalid max number of
// connections
func TestInitRejectsBadMaxConnections(t *testing.T) {
	yaml := "service:\n  max_connections: 0\n\n" + VALID_LOADER
	b := []byte(yaml)
	err := Init(b)
	assert.NotNil(t, err, "Config with bad max_connections didn't trigger an error.")
}

// tests whether config.Init rejects negative loader parameters
func TestInitRejectsBadLoaderParameters(t *testing.T) {
	yaml := VALID_SERVICE + "loader:\n  timeout: -5\n"
	err := Init([]byte(yaml))
	assert.NotNil(t, err, "Config with negative timeout didn't trigger an error.")

	yaml = VALID_SERVICE + "loader:\n  max_concurrent_loads: -1\n"
	err = Init([]byte(yaml))
	assert.NotNil(t, err, "Config with negative max_concurrent_loads didn't trigger an error.")
}

// Tests whether config.Init properly initializes its globals for valid input,
// expanding environment variables.
func TestInitProperlySetsGlobals(t *testing.T) {
	yaml := VALID_SERVICE + VALID_LOADER
	b := []byte(yaml)
	err := Init(b)
	assert.Nil(t, err, fmt.Sprintf("Valid YAML input produced an error: %s", err))

	// Check data
	assert.Equal(t, "dpkg-test", Service.Name)
	assert.Equal(t, 8080, Service.Port)
	assert.Equal(t, 100, Service.MaxConnections)
	assert.Equal(t, 30, Loader.Timeout)
	assert.Equal(t, 4, Loader.MaxConcurrentLoads)
	assert.Equal(t, "dpkg-test", Loader.UserAgent)
}

// this function gets called at the begіnning of a test session
func setup() {
	os.Setenv("DPKG_TEST_TIMEOUT", "30")
}

// this function gets called after all tests have been run
func breakdown() {
	os.Unsetenv("DPKG_TEST_TIMEOUT")
}

// This runs setup, runs all tests, and does breakdown.
func TestMain(m *testing.M) {
	var status int
	setup()
	status = m.Run()
	breakdown()
	os.Exit(status)
}
