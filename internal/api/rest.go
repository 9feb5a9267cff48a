package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/markusressel/dbw2go/internal/configuration"
	"github.com/markusressel/dbw2go/internal/controller"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	indentationChar = "  "
	metricSubsystem = "api"
)

type (
	Result struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	}
)

// Dependencies are the parts of the daemon exposed by the api
type Dependencies struct {
	Controller *controller.TwistController
	State      controller.StateSource
	Vehicle    configuration.VehicleConfig
}

// CreateRestService creates the api server. Request metrics are registered at registerer.
func CreateRestService(deps Dependencies, registerer prometheus.Registerer) *echo.Echo {
	echoRest := CreateWebserver()

	echoRest.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  metricSubsystem,
		Registerer: registerer,
	}))

	echoRest.GET("/alive/", isAlive)

	registerStateEndpoints(echoRest, deps)
	registerLimitsEndpoints(echoRest, deps.Vehicle)

	return echoRest
}

// returns an empty "ok" answer
func isAlive(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// return a "not found" message
func returnNotFound(c echo.Context, message string) (err error) {
	return c.JSONPretty(http.StatusNotFound, &Result{
		Name:    "Not found",
		Message: message,
	}, indentationChar)
}
