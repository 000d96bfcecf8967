package target

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/num/quat"
)

func TestZyxFromQuaternion(t *testing.T) {
	s := math.Sqrt(0.5)
	testCases := []struct {
		name             string
		q                quat.Number
		yaw, pitch, roll float64
	}{
		{"identity", quat.Number{Real: 1}, 0, 0, 0},
		{"yaw 90", quat.Number{Real: s, Kmag: s}, math.Pi / 2, 0, 0},
		{"yaw -90", quat.Number{Real: s, Kmag: -s}, -math.Pi / 2, 0, 0},
		{"roll 90", quat.Number{Real: s, Imag: s}, 0, 0, math.Pi / 2},
		{"pitch 45", quat.Number{Real: math.Cos(math.Pi / 8), Jmag: math.Sin(math.Pi / 8)}, 0, math.Pi / 4, 0},
		{"unnormalized yaw 90", quat.Number{Real: 2, Kmag: 2}, math.Pi / 2, 0, 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			yaw, pitch, roll := ZyxFromQuaternion(tc.q)
			require.InDelta(t, tc.yaw, yaw, 1e-9)
			require.InDelta(t, tc.pitch, pitch, 1e-9)
			require.InDelta(t, tc.roll, roll, 1e-9)
		})
	}
}

func TestQuaternionZyxRoundTrip(t *testing.T) {
	for _, angles := range [][3]float64{
		{0.3, -0.2, 0.1},
		{-2.5, 0.7, -1.2},
		{math.Pi / 2, 0, 0},
	} {
		q := QuaternionFromZyx(angles[0], angles[1], angles[2])
		require.InDelta(t, 1, quat.Abs(q), 1e-12)
		yaw, pitch, roll := ZyxFromQuaternion(q)
		require.InDelta(t, angles[0], yaw, 1e-9)
		require.InDelta(t, angles[1], pitch, 1e-9)
		require.InDelta(t, angles[2], roll, 1e-9)
	}
}

func TestQuaternionMatchesRotationMatrix(t *testing.T) {
	yaw, pitch, roll := 0.4, -0.3, 0.9
	q := QuaternionFromZyx(yaw, pitch, roll)
	r := RotationMatrixFromZyx(yaw, pitch, roll)
	v := quat.Mul(quat.Mul(q, quat.Number{Imag: 1, Jmag: 2, Kmag: 3}), quat.Conj(q))
	require.InDelta(t, r.At(0, 0)+2*r.At(0, 1)+3*r.At(0, 2), v.Imag, 1e-9)
	require.InDelta(t, r.At(1, 0)+2*r.At(1, 1)+3*r.At(1, 2), v.Jmag, 1e-9)
	require.InDelta(t, r.At(2, 0)+2*r.At(2, 1)+3*r.At(2, 2), v.Kmag, 1e-9)
}
