package constants

// Stage names one step of the invoice pipeline.
type Stage string

const (
	StageResolve Stage = "resolve" // image reference -> local file
	StageExtract Stage = "extract" // image -> text
	StageParse   Stage = "parse"   // text -> record
	StageWrite   Stage = "write"   // record -> report
)

// FailureKind is the tagged reason a stage failed.
type FailureKind string

// Stable values (these exact strings appear in logs).
const (
	KindResourceUnavailable FailureKind = "RESOURCE_UNAVAILABLE"
	KindRecognitionFailure  FailureKind = "RECOGNITION_FAILURE"
	KindFieldNotFound       FailureKind = "FIELD_NOT_FOUND"
	KindWriteFailure        FailureKind = "WRITE_FAILURE"
	KindConfig              FailureKind = "CONFIG_ERROR"
)
