package vision

import (
	"fmt"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/your-org/piv-face/internal/geometry"
	"github.com/your-org/piv-face/internal/landmarks"
)

// Landmarker extracts 68-point facial landmarks using a PFLD-style ONNX
// model. PFLD networks take a 112x112 face crop and emit 136 floats (68
// points, x then y, each normalised to [0, 1] within the crop).
type Landmarker struct {
	session      *ort.AdvancedSession
	inputTensor  *ort.Tensor[float32]
	outputTensor *ort.Tensor[float32]
	inputW       int
	inputH       int
}

// NewLandmarker loads a PFLD ONNX model.
func NewLandmarker(modelPath string, opts *ort.SessionOptions) (*Landmarker, error) {
	inputW, inputH := 112, 112

	inputShape := ort.NewShape(1, 3, int64(inputH), int64(inputW))
	inputTensor, err := ort.NewEmptyTensor[float32](inputShape)
	if err != nil {
		return nil, fmt.Errorf("create landmarker input tensor: %w", err)
	}

	outputShape := ort.NewShape(1, int64(landmarks.NumPoints*2))
	outputTensor, err := ort.NewEmptyTensor[float32](outputShape)
	if err != nil {
		inputTensor.Destroy()
		return nil, fmt.Errorf("create landmarker output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(modelPath,
		[]string{"input"},
		[]string{"output"},
		[]ort.Value{inputTensor},
		[]ort.Value{outputTensor},
		opts,
	)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, fmt.Errorf("create landmarker session: %w", err)
	}

	return &Landmarker{
		session:      session,
		inputTensor:  inputTensor,
		outputTensor: outputTensor,
		inputW:       inputW,
		inputH:       inputH,
	}, nil
}

// InputSize returns the model's expected input dimensions.
func (l *Landmarker) InputSize() (int, int) {
	return l.inputW, l.inputH
}

// Extract runs landmark extraction on a preprocessed face crop and maps the
// normalised output points back into source-image pixel coordinates, given
// the pixel-space box the crop was taken from.
func (l *Landmarker) Extract(faceData []float32, cropBox geometry.FaceBox) (landmarks.Landmarks68, error) {
	inputSlice := l.inputTensor.GetData()
	copy(inputSlice, faceData)

	if err := l.session.Run(); err != nil {
		return landmarks.Landmarks68{}, fmt.Errorf("run landmark extraction: %w", err)
	}

	raw := l.outputTensor.GetData()
	points := make([]geometry.Point2D, landmarks.NumPoints)
	for i := 0; i < landmarks.NumPoints; i++ {
		nx := float64(raw[2*i])
		ny := float64(raw[2*i+1])
		p, err := geometry.NewPoint2D(
			cropBox.X+nx*cropBox.Width,
			cropBox.Y+ny*cropBox.Height,
		)
		if err != nil {
			return landmarks.Landmarks68{}, fmt.Errorf("landmark point %d: %w", i, err)
		}
		points[i] = p
	}

	return landmarks.New(points)
}

// Close releases the ONNX session and preallocated tensors.
func (l *Landmarker) Close() {
	if l.session != nil {
		l.session.Destroy()
	}
	if l.inputTensor != nil {
		l.inputTensor.Destroy()
	}
	if l.outputTensor != nil {
		l.outputTensor.Destroy()
	}
}
