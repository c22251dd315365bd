package config

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// a type with service configuration parameters
type serviceConfig struct {
	// name reported by the service's root endpoint
	Name string `json:"name" yaml:"name"`
	// port on which the service listens
	Port int `json:"port" yaml:"port"`
	// maximum number of allowed incoming connections
	MaxConnections int `json:"max_connections" yaml:"max_connections"`
	// set to true to enable debug-level logging
	Debug bool `json:"debug" yaml:"debug"`
}

// a type with parameters governing how data packages are fetched
type loaderConfig struct {
	// timeout for each HTTP request in seconds (0 = no timeout)
	Timeout int `json:"timeout" yaml:"timeout"`
	// maximum number of data packages loaded at once by a batch load
	// (0 = one per requested location)
	MaxConcurrentLoads int `json:"max_concurrent_loads" yaml:"max_concurrent_loads"`
	// User-Agent header sent with every request (optional)
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// global config variables
var Service serviceConfig
var Loader loaderConfig

// This struct performs the unmarshalling from the YAML config file and then
// copies its fields to the globals above.
type configFile struct {
	Service serviceConfig `yaml:"service"`
	Loader  loaderConfig  `yaml:"loader"`
}

// This helper reads configuration data, returning an error indicating
// success or failure. All environment variables of the form ${ENV_VAR} are
// expanded.
func readConfig(bytes []byte) error {
	// Before we do anything else, expand any provided environment variables.
	bytes = []byte(os.ExpandEnv(string(bytes)))

	var conf configFile
	conf.Service.Name = "dpkg"
	conf.Service.Port = 8080
	conf.Service.MaxConnections = 100
	err := yaml.Unmarshal(bytes, &conf)
	if err != nil {
		slog.Error(fmt.Sprintf("Couldn't parse configuration data: %s", err))
		return err
	}

	// copy the config data into place
	Service = conf.Service
	Loader = conf.Loader

	return err
}

// This helper validates the given service parameters, returning an
// error indicating success or failure.
func validateServiceParameters(params serviceConfig) error {
	if params.Port < 0 || params.Port > 65535 {
		return fmt.Errorf("Invalid port: %d (must be 0-65535)", params.Port)
	}
	if params.MaxConnections <= 0 {
		return fmt.Errorf("Invalid max_connections: %d (must be positive)",
			params.MaxConnections)
	}
	return nil
}

// This helper validates the given loader parameters.
func validateLoaderParameters(params loaderConfig) error {
	if params.Timeout < 0 {
		return fmt.Errorf("Invalid loader timeout: %d (must be non-negative)", params.Timeout)
	}
	if params.MaxConcurrentLoads < 0 {
		return fmt.Errorf("Invalid max_concurrent_loads: %d (must be non-negative)",
			params.MaxConcurrentLoads)
	}
	return nil
}

// This helper validates the configuration, returning an error that indicates
// success or failure.
func validateConfig() error {
	err := validateServiceParameters(Service)
	if err != nil {
		return err
	}
	return validateLoaderParameters(Loader)
}

// Initializes the data package service configuration using the given YAML
// byte data.
func Init(yamlData []byte) error {

	// Read the configuration from our YAML file.
	err := readConfig(yamlData)
	if err != nil {
		return err
	}

	// Validate the configuration.
	err = validateConfig()
	return err
}
