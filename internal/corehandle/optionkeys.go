package corehandle

// Static/instance option keys mirror the Core's AsstStaticOptionKey and
// AsstInstanceOptionKey enums; profile.StaticOptions/InstanceOptions deal
// in string tags, so the run driver maps those tags onto these codes right
// before the FFI call.
const (
	StaticOptionCPUOCR int32 = 1
	StaticOptionGPUOCR int32 = 2
)

const (
	InstanceOptionTouchMode           int32 = 2
	InstanceOptionDeploymentWithPause int32 = 3
	InstanceOptionAdbLiteEnabled      int32 = 4
	InstanceOptionKillAdbOnExit       int32 = 5
)
