package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/markusressel/dbw2go/internal/actuators"
	"github.com/markusressel/dbw2go/internal/api"
	"github.com/markusressel/dbw2go/internal/configuration"
	"github.com/markusressel/dbw2go/internal/controller"
	"github.com/markusressel/dbw2go/internal/persistence"
	"github.com/markusressel/dbw2go/internal/statistics"
	"github.com/markusressel/dbw2go/internal/telemetry"
	"github.com/markusressel/dbw2go/internal/transport/bridge"
	"github.com/markusressel/dbw2go/internal/transport/canbus"
	"github.com/markusressel/dbw2go/internal/ui"
	"github.com/markusressel/dbw2go/internal/vehicle"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RunDaemon() {
	config := configuration.CurrentConfig

	pers := persistence.NewPersistence(config.DbPath)
	if err := pers.Init(); err != nil {
		ui.Fatal("Unable to initialize session database %s: %v", config.DbPath, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	state := vehicle.NewState()

	var g run.Group
	var publishers actuators.MultiPublisher
	var sinks []controller.SampleSink

	if config.Can.Enabled {
		// === CAN bus
		publisher, err := canbus.Dial(ctx, config.Can.Interface)
		if err != nil {
			ui.Fatal("Cannot open CAN interface %s: %v", config.Can.Interface, err)
		}
		publishers = append(publishers, publisher)

		receiver, err := canbus.Listen(ctx, config.Can.Interface, state)
		if err != nil {
			ui.Fatal("Cannot open CAN interface %s: %v", config.Can.Interface, err)
		}

		g.Add(func() error {
			ui.Info("Listening on CAN interface %s", config.Can.Interface)
			return receiver.Run(ctx)
		}, func(err error) {
			_ = receiver.Close()
			_ = publisher.Close()
			if err != nil {
				ui.Warning("CAN receiver stopped: %v", err)
			}
		})
	}

	if config.Bridge.Enabled {
		// === websocket bridge
		b := bridge.NewBridge(state)
		publishers = append(publishers, b)

		addr := fmt.Sprintf("%s:%d", config.Bridge.Host, config.Bridge.Port)
		g.Add(func() error {
			return b.Run(ctx, addr, config.Bridge.Path)
		}, func(err error) {
			if err != nil {
				ui.Warning("Error stopping websocket bridge: %v", err)
			}
		})
	}

	if len(publishers) == 0 {
		ui.Warning("Neither CAN nor the websocket bridge are enabled, commands are only logged")
		publishers = append(publishers, actuators.NewConsolePublisher())
	}

	if config.Telemetry.Influx.Enabled {
		// === influx telemetry
		sink := telemetry.NewInfluxSink(config.Telemetry.Influx)
		sinks = append(sinks, sink)

		g.Add(func() error {
			ui.Info("Writing telemetry to %s (bucket: %s)", config.Telemetry.Influx.Url, config.Telemetry.Influx.Bucket)
			return sink.Run(ctx)
		}, func(err error) {
			if err != nil {
				ui.Warning("Error writing telemetry: %v", err)
			}
		})
	}

	twistController := controller.NewTwistController(config.Vehicle, config.Controller, state, publishers, sinks...)
	statistics.Register(statistics.NewControllerCollector(twistController))

	{
		// === control loop
		g.Add(func() error {
			err := twistController.Run(ctx)
			saveSession(pers, twistController.GetStatistics(), time.Now())
			return err
		}, func(err error) {
			if err != nil {
				ui.Warning("Control loop stopped: %v", err)
			}
		})
	}

	if config.Api.Enabled {
		// === REST api
		rest := api.CreateRestService(api.Dependencies{
			Controller: twistController,
			State:      state,
			Vehicle:    config.Vehicle,
		}, prometheus.DefaultRegisterer)

		g.Add(func() error {
			addr := fmt.Sprintf("%s:%d", config.Api.Host, config.Api.Port)
			ui.Info("Starting REST api on %s", addr)
			if err := rest.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		}, func(err error) {
			timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer timeoutCancel()
			if err := rest.Shutdown(timeoutCtx); err != nil {
				ui.Warning("Error stopping REST api: %v", err)
			}
		})
	}

	if config.Statistics.Enabled {
		// === Prometheus Exporter
		addr := fmt.Sprintf(":%d", config.Statistics.Port)
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		server := &http.Server{Addr: addr, Handler: mux}

		g.Add(func() error {
			ui.Info("Serving metrics on %s/metrics", addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				ui.Error("Cannot start prometheus metrics endpoint (%s)", err.Error())
				return err
			}
			return nil
		}, func(err error) {
			ui.Info("Stopping statistics server...")
			timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer timeoutCancel()
			if err := server.Shutdown(timeoutCtx); err != nil {
				ui.Warning("Error stopping statistics server: %v", err)
			}
		})
	}

	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			select {
			case <-sig:
				ui.Info("Received SIGTERM signal, exiting...")
			case <-ctx.Done():
			}
			return nil
		}, func(err error) {
			signal.Stop(sig)
			cancel()
		})
	}

	if err := g.Run(); err != nil {
		ui.Error("%v", err)
		os.Exit(1)
	}
	ui.Info("Done.")
}

// SessionFromStatistics builds the persisted summary of a controller run
func SessionFromStatistics(stats controller.TwistControllerStatistics, end time.Time) persistence.Session {
	return persistence.Session{
		Start:                stats.StartedAt,
		End:                  end,
		Ticks:                stats.Ticks,
		EnabledTicks:         stats.EnabledTicks,
		AuthorityTransitions: stats.AuthorityTransitions,
		PublishErrors:        stats.PublishErrors,
		PeakThrottle:         stats.PeakThrottle,
		PeakBrake:            stats.PeakBrake,
		PeakSteer:            stats.PeakSteer,
	}
}

func saveSession(pers persistence.Persistence, stats controller.TwistControllerStatistics, end time.Time) {
	session := SessionFromStatistics(stats, end)
	if err := pers.SaveSession(session); err != nil {
		ui.Error("Unable to save session summary: %v", err)
		return
	}
	ui.Info("Saved session summary (%d ticks, %d enabled)", session.Ticks, session.EnabledTicks)
}
