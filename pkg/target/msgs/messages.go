package msgs

import (
	"github.com/golang/protobuf/proto"

	fx "github.com/robotalks/mpctarget/pkg/framework"
)

// TypeID Groups
const (
	GroupTarget uint32 = 0x00100000
	GroupCustom uint32 = 0x7f000000 // base group id for custom messages.
)

// TypeIDs
const (
	GoalCommandTypeID        uint32 = TypeIDKindCommand | GroupTarget | 0x0001
	VelocityCommandTypeID    uint32 = TypeIDKindCommand | GroupTarget | 0x0002
	PoseGoalTypeID           uint32 = TypeIDKindCommand | GroupTarget | 0x0003
	TwistTypeID              uint32 = TypeIDKindCommand | GroupTarget | 0x0004
	ObservationTypeID        uint32 = TypeIDKindEvent | GroupTarget | 0x0001
	TargetTrajectoriesTypeID uint32 = TypeIDKindEvent | GroupTarget | 0x0002
)

// Observation is reported by the MPC after every solve.
type Observation struct {
	Time  float64   `protobuf:"fixed64,1,opt,name=time,proto3" json:"time,omitempty"`
	State []float64 `protobuf:"fixed64,2,rep,packed,name=state,proto3" json:"state,omitempty"`
	Input []float64 `protobuf:"fixed64,3,rep,packed,name=input,proto3" json:"input,omitempty"`
	Mode  uint32    `protobuf:"varint,4,opt,name=mode,proto3" json:"mode,omitempty"`
}

// NewMessage implements Message.
func (m *Observation) NewMessage() fx.Message { return &Observation{} }

// TypeID implements SerializableMessage.
func (m *Observation) TypeID() uint32 { return ObservationTypeID }

// Serializable implements SerializableMessage.
func (m *Observation) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *Observation) ProtoMessage() {}

// Reset implements proto.Message.
func (m *Observation) Reset() { *m = Observation{} }

// String implements proto.Message.
func (m *Observation) String() string { return proto.CompactTextString(m) }

// Vector is a single waypoint vector.
type Vector struct {
	Values []float64 `protobuf:"fixed64,1,rep,packed,name=values,proto3" json:"values,omitempty"`
}

// ProtoMessage implements proto.Message.
func (m *Vector) ProtoMessage() {}

// Reset implements proto.Message.
func (m *Vector) Reset() { *m = Vector{} }

// String implements proto.Message.
func (m *Vector) String() string { return proto.CompactTextString(m) }

// TargetTrajectories is the reference published to the MPC.
type TargetTrajectories struct {
	TimeTrajectory  []float64 `protobuf:"fixed64,1,rep,packed,name=time_trajectory,json=timeTrajectory,proto3" json:"time_trajectory,omitempty"`
	StateTrajectory []*Vector `protobuf:"bytes,2,rep,name=state_trajectory,json=stateTrajectory,proto3" json:"state_trajectory,omitempty"`
	InputTrajectory []*Vector `protobuf:"bytes,3,rep,name=input_trajectory,json=inputTrajectory,proto3" json:"input_trajectory,omitempty"`
}

// NewMessage implements Message.
func (m *TargetTrajectories) NewMessage() fx.Message { return &TargetTrajectories{} }

// TypeID implements SerializableMessage.
func (m *TargetTrajectories) TypeID() uint32 { return TargetTrajectoriesTypeID }

// Serializable implements SerializableMessage.
func (m *TargetTrajectories) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *TargetTrajectories) ProtoMessage() {}

// Reset implements proto.Message.
func (m *TargetTrajectories) Reset() { *m = TargetTrajectories{} }

// String implements proto.Message.
func (m *TargetTrajectories) String() string { return proto.CompactTextString(m) }

// GoalCommand requests the base to reach a pose given as
// (x, y, z, yaw, pitch, roll), only x, y and yaw are used.
type GoalCommand struct {
	Target []float64 `protobuf:"fixed64,1,rep,packed,name=target,proto3" json:"target,omitempty"`
}

// NewMessage implements Message.
func (m *GoalCommand) NewMessage() fx.Message { return &GoalCommand{} }

// TypeID implements SerializableMessage.
func (m *GoalCommand) TypeID() uint32 { return GoalCommandTypeID }

// Serializable implements SerializableMessage.
func (m *GoalCommand) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *GoalCommand) ProtoMessage() {}

// Reset implements proto.Message.
func (m *GoalCommand) Reset() { *m = GoalCommand{} }

// String implements proto.Message.
func (m *GoalCommand) String() string { return proto.CompactTextString(m) }

// VelocityCommand is a body frame velocity (vx, vy, vz, yaw rate).
type VelocityCommand struct {
	Velocity []float64 `protobuf:"fixed64,1,rep,packed,name=velocity,proto3" json:"velocity,omitempty"`
}

// NewMessage implements Message.
func (m *VelocityCommand) NewMessage() fx.Message { return &VelocityCommand{} }

// TypeID implements SerializableMessage.
func (m *VelocityCommand) TypeID() uint32 { return VelocityCommandTypeID }

// Serializable implements SerializableMessage.
func (m *VelocityCommand) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *VelocityCommand) ProtoMessage() {}

// Reset implements proto.Message.
func (m *VelocityCommand) Reset() { *m = VelocityCommand{} }

// String implements proto.Message.
func (m *VelocityCommand) String() string { return proto.CompactTextString(m) }

// Vector3 is a 3D vector.
type Vector3 struct {
	X float64 `protobuf:"fixed64,1,opt,name=x,proto3" json:"x,omitempty"`
	Y float64 `protobuf:"fixed64,2,opt,name=y,proto3" json:"y,omitempty"`
	Z float64 `protobuf:"fixed64,3,opt,name=z,proto3" json:"z,omitempty"`
}

// ProtoMessage implements proto.Message.
func (m *Vector3) ProtoMessage() {}

// Reset implements proto.Message.
func (m *Vector3) Reset() { *m = Vector3{} }

// String implements proto.Message.
func (m *Vector3) String() string { return proto.CompactTextString(m) }

// Quaternion is an orientation.
type Quaternion struct {
	X float64 `protobuf:"fixed64,1,opt,name=x,proto3" json:"x,omitempty"`
	Y float64 `protobuf:"fixed64,2,opt,name=y,proto3" json:"y,omitempty"`
	Z float64 `protobuf:"fixed64,3,opt,name=z,proto3" json:"z,omitempty"`
	W float64 `protobuf:"fixed64,4,opt,name=w,proto3" json:"w,omitempty"`
}

// ProtoMessage implements proto.Message.
func (m *Quaternion) ProtoMessage() {}

// Reset implements proto.Message.
func (m *Quaternion) Reset() { *m = Quaternion{} }

// String implements proto.Message.
func (m *Quaternion) String() string { return proto.CompactTextString(m) }

// PoseGoal is a goal given as position and orientation, as sent by
// navigation tools.
type PoseGoal struct {
	Position    *Vector3    `protobuf:"bytes,1,opt,name=position,proto3" json:"position,omitempty"`
	Orientation *Quaternion `protobuf:"bytes,2,opt,name=orientation,proto3" json:"orientation,omitempty"`
}

// NewMessage implements Message.
func (m *PoseGoal) NewMessage() fx.Message { return &PoseGoal{} }

// TypeID implements SerializableMessage.
func (m *PoseGoal) TypeID() uint32 { return PoseGoalTypeID }

// Serializable implements SerializableMessage.
func (m *PoseGoal) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *PoseGoal) ProtoMessage() {}

// Reset implements proto.Message.
func (m *PoseGoal) Reset() { *m = PoseGoal{} }

// String implements proto.Message.
func (m *PoseGoal) String() string { return proto.CompactTextString(m) }

// Twist is a body frame velocity command as sent by teleop tools.
type Twist struct {
	Linear  *Vector3 `protobuf:"bytes,1,opt,name=linear,proto3" json:"linear,omitempty"`
	Angular *Vector3 `protobuf:"bytes,2,opt,name=angular,proto3" json:"angular,omitempty"`
}

// NewMessage implements Message.
func (m *Twist) NewMessage() fx.Message { return &Twist{} }

// TypeID implements SerializableMessage.
func (m *Twist) TypeID() uint32 { return TwistTypeID }

// Serializable implements SerializableMessage.
func (m *Twist) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *Twist) ProtoMessage() {}

// Reset implements proto.Message.
func (m *Twist) Reset() { *m = Twist{} }

// String implements proto.Message.
func (m *Twist) String() string { return proto.CompactTextString(m) }
