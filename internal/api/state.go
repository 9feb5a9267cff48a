package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/dbw2go/internal/controller"
	"github.com/markusressel/dbw2go/internal/vehicle"
)

type StateResponse struct {
	Inputs     vehicle.Snapshot                     `json:"inputs"`
	Authority  string                               `json:"authority"`
	Integral   float64                              `json:"integral"`
	LastTick   controller.Sample                    `json:"lastTick"`
	Statistics controller.TwistControllerStatistics `json:"statistics"`
}

func registerStateEndpoints(rest *echo.Echo, deps Dependencies) {
	rest.GET("/state/", func(c echo.Context) error {
		return getState(c, deps)
	})
	rest.GET("/command/", func(c echo.Context) error {
		return getCommand(c, deps.Controller)
	})
}

func getState(c echo.Context, deps Dependencies) error {
	data := StateResponse{
		Inputs:     deps.State.Snapshot(),
		Authority:  deps.Controller.Authority().String(),
		Integral:   deps.Controller.Integral(),
		LastTick:   deps.Controller.LastSample(),
		Statistics: deps.Controller.GetStatistics(),
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func getCommand(c echo.Context, contr *controller.TwistController) error {
	commands := contr.LastCommands()
	if commands == nil {
		return returnNotFound(c, "No command has been published yet")
	}
	return c.JSONPretty(http.StatusOK, commands, indentationChar)
}
