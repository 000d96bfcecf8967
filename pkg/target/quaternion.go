package target

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// QuaternionFromZyx returns the unit quaternion of the rotation
// Rz(yaw)·Ry(pitch)·Rx(roll).
func QuaternionFromZyx(yaw, pitch, roll float64) quat.Number {
	qz := quat.Number{Real: math.Cos(yaw / 2), Kmag: math.Sin(yaw / 2)}
	qy := quat.Number{Real: math.Cos(pitch / 2), Jmag: math.Sin(pitch / 2)}
	qx := quat.Number{Real: math.Cos(roll / 2), Imag: math.Sin(roll / 2)}
	return quat.Mul(quat.Mul(qz, qy), qx)
}

// ZyxFromQuaternion converts an orientation to ZYX Euler angles. The
// quaternion doesn't need to be normalized but must not be zero.
func ZyxFromQuaternion(q quat.Number) (yaw, pitch, roll float64) {
	q = quat.Scale(1/quat.Abs(q), q)
	rotate := func(v quat.Number) quat.Number {
		return quat.Mul(quat.Mul(q, v), quat.Conj(q))
	}
	// columns of the rotation matrix
	c0 := rotate(quat.Number{Imag: 1})
	c1 := rotate(quat.Number{Jmag: 1})
	c2 := rotate(quat.Number{Kmag: 1})
	yaw = math.Atan2(c0.Jmag, c0.Imag)
	pitch = math.Asin(math.Max(-1, math.Min(1, -c0.Kmag)))
	roll = math.Atan2(c1.Kmag, c2.Kmag)
	return
}
