package predictor

import (
	"fmt"
	"math"

	"github.com/akmonengine/tumble/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// Metrics are computed on the euclidean distance between predicted and
// actual vectors, one distance per state
type Metrics struct {
	PositionRMSE float64
	PositionMAE  float64
	VelocityRMSE float64
	VelocityMAE  float64
}

// Accuracy compares predicted states with the states actually simulated
func Accuracy(predicted, actual []actor.State) (Metrics, error) {
	if len(predicted) != len(actual) || len(actual) == 0 {
		return Metrics{}, fmt.Errorf("%w: %d predicted, %d actual", ErrLengthMismatch, len(predicted), len(actual))
	}

	var m Metrics
	for i := range actual {
		dp := distance(predicted[i], actual[i], 0)
		dv := distance(predicted[i], actual[i], 3)

		m.PositionMAE += dp
		m.PositionRMSE += dp * dp
		m.VelocityMAE += dv
		m.VelocityRMSE += dv * dv
	}

	n := float64(len(actual))
	m.PositionMAE /= n
	m.VelocityMAE /= n
	m.PositionRMSE = math.Sqrt(m.PositionRMSE / n)
	m.VelocityRMSE = math.Sqrt(m.VelocityRMSE / n)

	return m, nil
}

func distance(a, b actor.State, offset int) float64 {
	va := mgl64.Vec3{a[offset], a[offset+1], a[offset+2]}
	vb := mgl64.Vec3{b[offset], b[offset+1], b[offset+2]}
	return va.Sub(vb).Len()
}
