package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/dbw2go/internal/configuration"
	"github.com/qdm12/reprint"
)

type LimitsResponse struct {
	Vehicle        configuration.VehicleConfig `json:"vehicle"`
	EffectiveMass  float64                     `json:"effectiveMass"`
	MaxBrakeTorque float64                     `json:"maxBrakeTorque"`
}

func registerLimitsEndpoints(rest *echo.Echo, config configuration.VehicleConfig) {
	rest.GET("/limits/", func(c echo.Context) error {
		return getLimits(c, config)
	})
}

func getLimits(c echo.Context, config configuration.VehicleConfig) error {
	data := LimitsResponse{
		Vehicle:        reprint.This(config).(configuration.VehicleConfig),
		EffectiveMass:  config.EffectiveMass(),
		MaxBrakeTorque: config.MaxBrakeTorque(),
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}
