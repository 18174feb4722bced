// Package piverr defines the tagged error kinds every pipeline stage
// surfaces to its caller. Every kind shares the single *Error type and is
// told apart by its Kind field, so callers discriminate with errors.As and
// a Kind comparison rather than string matching or a bare status code.
package piverr

import "fmt"

// Kind identifies which of the pipeline's tagged error categories an
// error belongs to.
type Kind int

const (
	KindInvalidInput Kind = iota
	KindNoFaceDetected
	KindMultipleFacesDetected
	KindLowConfidence
	KindInvalidLandmarks
	KindCropBoundsExceeded
	KindEncodingFailed
	KindCannotMeetSize
	KindCancelled
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindNoFaceDetected:
		return "no_face_detected"
	case KindMultipleFacesDetected:
		return "multiple_faces_detected"
	case KindLowConfidence:
		return "low_confidence"
	case KindInvalidLandmarks:
		return "invalid_landmarks"
	case KindCropBoundsExceeded:
		return "crop_bounds_exceeded"
	case KindEncodingFailed:
		return "encoding_failed"
	case KindCannotMeetSize:
		return "cannot_meet_size"
	case KindCancelled:
		return "cancelled"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Error is the common shape every tagged pipeline error takes: a kind, a
// human-readable message, and an optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// InvalidInput reports an undecodable image or one with zero dimensions.
func InvalidInput(reason string) *Error {
	return &Error{Kind: KindInvalidInput, Message: reason}
}

// NoFaceDetected reports zero faces above the confidence threshold.
func NoFaceDetected() *Error {
	return &Error{Kind: KindNoFaceDetected, Message: "no face detected above the confidence threshold"}
}

// MultipleFacesDetected reports more than one qualifying face when the
// caller required exactly one.
func MultipleFacesDetected(count int) *Error {
	return &Error{Kind: KindMultipleFacesDetected, Message: fmt.Sprintf("%d faces detected, exactly one required", count)}
}

// LowConfidence reports the best candidate face falling below the
// configured minimum confidence.
func LowConfidence(value, threshold float64) *Error {
	return &Error{Kind: KindLowConfidence, Message: fmt.Sprintf("best face confidence %.3f below threshold %.3f", value, threshold)}
}

// InvalidLandmarks reports a landmark set that failed validation.
func InvalidLandmarks(cause error) *Error {
	return &Error{Kind: KindInvalidLandmarks, Message: "landmark extraction did not produce a valid 68-point set", Cause: cause}
}

// CropBoundsExceeded reports a planned crop that could not fit the source.
func CropBoundsExceeded(cause error) *Error {
	return &Error{Kind: KindCropBoundsExceeded, Message: "computed crop cannot fit within the source image", Cause: cause}
}

// EncodingFailed reports a codec error that persisted across every
// attempted rate.
func EncodingFailed(cause error) *Error {
	return &Error{Kind: KindEncodingFailed, Message: "encoder failed at every attempted rate", Cause: cause}
}

// CannotMeetSize reports that no rate in the target-size search window
// landed under the requested budget.
func CannotMeetSize(requested, bestSize int, bestRate float64) *Error {
	return &Error{
		Kind: KindCannotMeetSize,
		Message: fmt.Sprintf("could not meet requested size %d bytes; best attempt was %d bytes at %.3g bpp",
			requested, bestSize, bestRate),
	}
}

// Cancelled reports cooperative cancellation observed at a suspension point.
func Cancelled() *Error {
	return &Error{Kind: KindCancelled, Message: "operation cancelled"}
}

// Timeout reports the wall-clock processing deadline expiring.
func Timeout() *Error {
	return &Error{Kind: KindTimeout, Message: "processing deadline exceeded"}
}
