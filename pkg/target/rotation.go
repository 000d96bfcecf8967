package target

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// RotationMatrixFromZyx builds R = Rz(yaw) * Ry(pitch) * Rx(roll), which
// maps body frame vectors into world frame.
func RotationMatrixFromZyx(yaw, pitch, roll float64) *mat.Dense {
	sz, cz := math.Sincos(yaw)
	sy, cy := math.Sincos(pitch)
	sx, cx := math.Sincos(roll)
	return mat.NewDense(3, 3, []float64{
		cz * cy, cz*sy*sx - sz*cx, cz*sy*cx + sz*sx,
		sz * cy, sz*sy*sx + cz*cx, sz*sy*cx - cz*sx,
		-sy, cy * sx, cy * cx,
	})
}

// RotateToWorld rotates the leading 3 components of a body frame vector
// by the orientation of pose.
func RotateToWorld(pose Pose6, body []float64) [3]float64 {
	rot := RotationMatrixFromZyx(pose[PoseYaw], pose[PosePitch], pose[PoseRoll])
	var world mat.VecDense
	world.MulVec(rot, mat.NewVecDense(3, []float64{body[0], body[1], body[2]}))
	return [3]float64{world.AtVec(0), world.AtVec(1), world.AtVec(2)}
}
