package statistics

import (
	"github.com/markusressel/dbw2go/internal/controller"
	"github.com/prometheus/client_golang/prometheus"
)

const controllerSubsystem = "controller"

type ControllerCollector struct {
	controller *controller.TwistController

	authority            *prometheus.Desc
	throttle             *prometheus.Desc
	brake                *prometheus.Desc
	steer                *prometheus.Desc
	integral             *prometheus.Desc
	trackingErrorRms     *prometheus.Desc
	tickCount            *prometheus.Desc
	publishCount         *prometheus.Desc
	publishErrorCount    *prometheus.Desc
	resetCount           *prometheus.Desc
	authorityTransitions *prometheus.Desc
}

func newDesc(name string, help string) *prometheus.Desc {
	return prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, name), help, nil, nil)
}

func NewControllerCollector(controller *controller.TwistController) *ControllerCollector {
	return &ControllerCollector{
		controller:           controller,
		authority:            newDesc("authority", "1 if the controller has control authority, 0 otherwise"),
		throttle:             newDesc("throttle", "Last throttle command in [0, 1]"),
		brake:                newDesc("brake_torque", "Last brake command in N*m"),
		steer:                newDesc("steer_angle", "Last steering wheel angle command in rad"),
		integral:             newDesc("pid_integral", "Integral error of the velocity controller"),
		trackingErrorRms:     newDesc("tracking_error_rms", "Root mean square of the velocity error over the tracking window"),
		tickCount:            newDesc("tick_count", "Counter for control ticks"),
		publishCount:         newDesc("publish_count", "Counter for published actuator commands"),
		publishErrorCount:    newDesc("publish_error_count", "Counter for failed publish attempts"),
		resetCount:           newDesc("reset_count", "Counter for controller resets"),
		authorityTransitions: newDesc("authority_transition_count", "Counter for changes of control authority"),
	}
}

func (collector *ControllerCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.authority
	ch <- collector.throttle
	ch <- collector.brake
	ch <- collector.steer
	ch <- collector.integral
	ch <- collector.trackingErrorRms
	ch <- collector.tickCount
	ch <- collector.publishCount
	ch <- collector.publishErrorCount
	ch <- collector.resetCount
	ch <- collector.authorityTransitions
}

// Collect implements required collect function for all prometheus collectors
func (collector *ControllerCollector) Collect(ch chan<- prometheus.Metric) {
	contr := collector.controller
	stats := contr.GetStatistics()
	output := contr.LastSample().Output

	authority := 0.0
	if contr.Authority() == controller.AuthorityEnabled {
		authority = 1
	}

	ch <- prometheus.MustNewConstMetric(collector.authority, prometheus.GaugeValue, authority)
	ch <- prometheus.MustNewConstMetric(collector.throttle, prometheus.GaugeValue, output.Throttle)
	ch <- prometheus.MustNewConstMetric(collector.brake, prometheus.GaugeValue, output.Brake)
	ch <- prometheus.MustNewConstMetric(collector.steer, prometheus.GaugeValue, output.Steer)
	ch <- prometheus.MustNewConstMetric(collector.integral, prometheus.GaugeValue, contr.Integral())
	ch <- prometheus.MustNewConstMetric(collector.trackingErrorRms, prometheus.GaugeValue, stats.TrackingErrorRms)
	ch <- prometheus.MustNewConstMetric(collector.tickCount, prometheus.CounterValue, float64(stats.Ticks))
	ch <- prometheus.MustNewConstMetric(collector.publishCount, prometheus.CounterValue, float64(stats.Publishes))
	ch <- prometheus.MustNewConstMetric(collector.publishErrorCount, prometheus.CounterValue, float64(stats.PublishErrors))
	ch <- prometheus.MustNewConstMetric(collector.resetCount, prometheus.CounterValue, float64(stats.Resets))
	ch <- prometheus.MustNewConstMetric(collector.authorityTransitions, prometheus.CounterValue, float64(stats.AuthorityTransitions))
}
