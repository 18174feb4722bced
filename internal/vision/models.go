package vision

import (
	"fmt"
	"image"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/your-org/piv-face/internal/geometry"
	"github.com/your-org/piv-face/internal/landmarks"
)

// Models bundles the two ONNX sessions the pipeline needs: face detection
// and 68-point landmark extraction. Both sessions run on preallocated
// tensors, so DetectFaces and ExtractLandmarks hold mu while they run.
type Models struct {
	Detector   *Detector
	Landmarker *Landmarker

	mu sync.Mutex
}

// LoadModels loads both ONNX models from modelsDir. intraOpThreads and
// interOpThreads of 0 leave ONNX Runtime's defaults in place.
func LoadModels(modelsDir string, detectionThreshold float64, intraOpThreads, interOpThreads int) (*Models, error) {
	newOpts := func() (*ort.SessionOptions, error) {
		opts, err := ort.NewSessionOptions()
		if err != nil {
			return nil, fmt.Errorf("create session options: %w", err)
		}
		if intraOpThreads > 0 {
			if err := opts.SetIntraOpNumThreads(intraOpThreads); err != nil {
				opts.Destroy()
				return nil, fmt.Errorf("set intra_op_threads: %w", err)
			}
		}
		if interOpThreads > 0 {
			if err := opts.SetInterOpNumThreads(interOpThreads); err != nil {
				opts.Destroy()
				return nil, fmt.Errorf("set inter_op_threads: %w", err)
			}
		}
		return opts, nil
	}

	detOpts, err := newOpts()
	if err != nil {
		return nil, err
	}
	det, err := NewDetector(modelsDir+"/retinaface_det.onnx", float32(detectionThreshold), detOpts)
	detOpts.Destroy()
	if err != nil {
		return nil, fmt.Errorf("load detector: %w", err)
	}

	lmOpts, err := newOpts()
	if err != nil {
		det.Close()
		return nil, err
	}
	lm, err := NewLandmarker(modelsDir+"/pfld_landmarks.onnx", lmOpts)
	lmOpts.Destroy()
	if err != nil {
		det.Close()
		return nil, fmt.Errorf("load landmarker: %w", err)
	}

	return &Models{Detector: det, Landmarker: lm}, nil
}

// Close releases both ONNX sessions.
func (m *Models) Close() {
	if m.Detector != nil {
		m.Detector.Close()
	}
	if m.Landmarker != nil {
		m.Landmarker.Close()
	}
}

// DetectFaces runs the detector over the whole frame.
func (m *Models) DetectFaces(img image.Image) ([]Detection, error) {
	bounds := img.Bounds()
	w, h := m.Detector.InputSize()
	input := preprocessForDetection(img, w, h)
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Detector.Detect(input, bounds.Dx(), bounds.Dy())
}

// ExtractLandmarks crops img to box, padded by 10% on each side to give the
// landmark model context beyond the raw detection box, and runs landmark
// extraction over the crop.
func (m *Models) ExtractLandmarks(img image.Image, box geometry.FaceBox) (landmarks.Landmarks68, error) {
	padded := box.Expand(0.1)
	rect := image.Rect(
		int(padded.X), int(padded.Y),
		int(padded.X+padded.Width), int(padded.Y+padded.Height),
	)
	crop := cropBox(img, rect)
	if crop == nil {
		return landmarks.Landmarks68{}, fmt.Errorf("landmark crop is empty for box %+v", box)
	}

	cropBounds := crop.Bounds()
	actualBox, err := geometry.NewFaceBox(
		float64(cropBounds.Min.X), float64(cropBounds.Min.Y),
		float64(cropBounds.Dx()), float64(cropBounds.Dy()),
	)
	if err != nil {
		return landmarks.Landmarks68{}, err
	}

	w, h := m.Landmarker.InputSize()
	input := preprocessForLandmarks(crop, w, h)
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Landmarker.Extract(input, actualBox)
}
