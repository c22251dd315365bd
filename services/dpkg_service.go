// Copyright (c) 2023 The KBase Project and its Contributors
// Copyright (c) 2023 Cohere Consulting, LLC
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies
// of the Software, and to permit persons to whom the Software is furnished to do
// so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humamux"
	"github.com/gorilla/mux"
	"golang.org/x/net/netutil"

	"github.com/kbase/dpkg/config"
	"github.com/kbase/dpkg/descriptors"
	"github.com/kbase/dpkg/frictionless"
	"github.com/kbase/dpkg/sniffer"
	"github.com/kbase/dpkg/validation"
)

// Version numbers
var majorVersion = 0
var minorVersion = 1
var patchVersion = 0

// Version string
var version = fmt.Sprintf("%d.%d.%d", majorVersion, minorVersion, patchVersion)

// This type implements the DataPackageService interface, validating, loading,
// and creating data package descriptors on request.
type dpkgService struct {
	// name of the service
	Name string
	// service version identifier
	Version string
	// time which the service was started
	StartTime time.Time
	// port on which the service currently runs
	Port int
	// router for REST endpoints
	Router *mux.Router
	// API wrapper
	API huma.API
	// HTTP server
	Server *http.Server
	// fetches data packages and data files
	Loader *descriptors.Loader
}

type ServiceInfoOutput struct {
	Body ServiceInfoResponse `doc:"information about the service itself"`
}

// handler method for root
func (service *dpkgService) getRoot(ctx context.Context,
	input *struct{}) (*ServiceInfoOutput, error) {

	slog.Info("Querying root endpoint...")
	return &ServiceInfoOutput{
		Body: ServiceInfoResponse{
			Name:          service.Name,
			Version:       service.Version,
			Uptime:        int(service.uptime()),
			Documentation: "/docs",
		},
	}, nil
}

type ValidationOutput struct {
	Body ValidationResponse `doc:"the outcome of validating a descriptor"`
}

// handler method for validating a descriptor given in the request body
func (service *dpkgService) validateDescriptor(ctx context.Context,
	input *struct {
		Profile bool `query:"profile" doc:"also check the descriptor against the Frictionless data-package profile"`
		RawBody []byte
	}) (*ValidationOutput, error) {

	slog.Info(fmt.Sprintf("Validating a descriptor (%d bytes)...", len(input.RawBody)))
	var report validation.Report
	if input.Profile {
		report = validation.ValidateProfile(input.RawBody)
	} else {
		report = validation.Validate(input.RawBody)
	}
	return &ValidationOutput{Body: report}, nil
}

// handler method for validating the descriptor at a given URL
func (service *dpkgService) validateURL(ctx context.Context,
	input *struct {
		URL string `query:"url" required:"true" doc:"the URL of a datapackage.json file"`
	}) (*ValidationOutput, error) {

	slog.Info(fmt.Sprintf("Validating descriptor at %s...", input.URL))
	report := validation.ValidateURL(ctx, &service.Loader.Client, input.URL)
	return &ValidationOutput{Body: report}, nil
}

type PackageOutput struct {
	Body frictionless.DataPackage `doc:"a normalized data package descriptor"`
}

// handler method for loading a single data package
func (service *dpkgService) getPackage(ctx context.Context,
	input *struct {
		URL string `query:"url" required:"true" example:"https://github.com/datasets/gold-prices" doc:"the location of a data package"`
	}) (*PackageOutput, error) {

	slog.Info(fmt.Sprintf("Loading data package at %s...", input.URL))
	pkg, err := service.Loader.Load(ctx, input.URL)
	if err != nil {
		return nil, httpError(err)
	}
	return &PackageOutput{Body: pkg}, nil
}

type BatchLoadOutput struct {
	Body BatchLoadResponse
}

// handler method for loading several data packages at once
func (service *dpkgService) loadPackages(ctx context.Context,
	input *struct {
		Body BatchLoadRequest
	}) (*BatchLoadOutput, error) {

	slog.Info(fmt.Sprintf("Loading %d data package(s)...", len(input.Body.URLs)))
	packages := service.Loader.LoadMany(ctx, input.Body.URLs)
	return &BatchLoadOutput{
		Body: BatchLoadResponse{
			Packages:  packages,
			Requested: len(input.Body.URLs),
		},
	}, nil
}

// handler method for creating a new data package
func (service *dpkgService) createPackage(ctx context.Context,
	input *struct {
		Body descriptors.CreateInfo
	}) (*PackageOutput, error) {

	slog.Info(fmt.Sprintf("Creating data package '%s'...", input.Body.Name))
	pkg, err := service.Loader.Create(ctx, input.Body)
	if err != nil {
		return nil, httpError(err)
	}
	return &PackageOutput{Body: pkg}, nil
}

// maps errors encountered while fetching data packages to HTTP errors
func httpError(err error) error {
	var statusErr *descriptors.HttpStatusError
	var fileErr *descriptors.DataFileError
	var malformedErr *descriptors.MalformedDescriptorError
	var transportErr *descriptors.TransportError
	var readErr *sniffer.ReadError
	switch {
	case errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound:
		return huma.Error404NotFound(err.Error())
	case errors.As(err, &fileErr) && fileErr.Code == http.StatusNotFound:
		return huma.Error404NotFound(err.Error())
	case errors.As(err, &malformedErr):
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.As(err, &statusErr), errors.As(err, &fileErr),
		errors.As(err, &transportErr), errors.As(err, &readErr):
		return huma.Error502BadGateway(err.Error())
	default:
		slog.Error(err.Error())
		return huma.Error500InternalServerError(err.Error())
	}
}

// returns the uptime for the service in seconds
func (service *dpkgService) uptime() float64 {
	return time.Since(service.StartTime).Seconds()
}

// creates a data package service instance (with its routes)
func newDpkgService() *dpkgService {
	service := new(dpkgService)
	service.Name = config.Service.Name
	service.Version = version
	service.Port = -1
	service.Loader = descriptors.NewLoader()

	// set up routing
	service.Router = mux.NewRouter()
	service.API = humamux.New(service.Router, huma.DefaultConfig(service.Name, service.Version))
	huma.Get(service.API, "/", service.getRoot)

	// API v1
	huma.Post(service.API, "/api/v1/validate", service.validateDescriptor)
	huma.Get(service.API, "/api/v1/validate", service.validateURL)
	huma.Get(service.API, "/api/v1/packages", service.getPackage)
	huma.Post(service.API, "/api/v1/packages", service.createPackage)
	huma.Post(service.API, "/api/v1/packages/batch", service.loadPackages)

	return service
}

// constructs a data package service given our configuration
func NewDataPackageService() (DataPackageService, error) {
	if config.Service.Name == "" {
		return nil, fmt.Errorf("No service name was specified.")
	}
	if config.Service.MaxConnections <= 0 {
		return nil, fmt.Errorf("Invalid max_connections: %d", config.Service.MaxConnections)
	}
	return newDpkgService(), nil
}

// starts the data package service
func (service *dpkgService) Start(port int) error {
	slog.Info(fmt.Sprintf("Starting %s service on port %d...", service.Name, port))
	slog.Info(fmt.Sprintf("(Accepting up to %d connections)", config.Service.MaxConnections))

	service.StartTime = time.Now()

	// create a listener that limits the number of incoming connections
	service.Port = port
	listener, err := net.Listen("tcp", ":"+strconv.Itoa(port))
	if err != nil {
		return err
	}
	defer listener.Close()
	listener = netutil.LimitListener(listener, config.Service.MaxConnections)

	// start the server
	service.Server = &http.Server{
		Handler: service.Router}
	err = service.Server.Serve(listener)

	// we don't report the server closing as an error
	if err != http.ErrServerClosed {
		return err
	}
	return nil
}

// gracefully shuts down the service without interrupting active connections
func (service *dpkgService) Shutdown(ctx context.Context) error {
	if service.Server != nil {
		return service.Server.Shutdown(ctx)
	}
	return nil
}

// closes down the service abruptly, freeing all resources
func (service *dpkgService) Close() {
	if service.Server != nil {
		service.Server.Close()
	}
}
