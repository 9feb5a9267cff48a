package util

import "github.com/asecurityteam/rolling"

func CreateRollingWindow(size int) *rolling.PointPolicy {
	return rolling.NewPointPolicy(rolling.NewWindow(size))
}

// GetWindowRms returns the root mean square of all values in the window
func GetWindowRms(window *rolling.PointPolicy) float64 {
	return window.Reduce(func(w rolling.Window) float64 {
		var values []float64
		for _, bucket := range w {
			values = append(values, bucket...)
		}
		return Rms(values)
	})
}
