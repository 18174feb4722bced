// Package vision wraps the two ONNX Runtime models the pipeline depends on:
// a RetinaFace-style face detector and a PFLD-style 68-point landmark
// extractor. Both follow the same session lifecycle: preallocate input and
// output tensors at construction, copy data in and run on each call, and
// release everything in Close.
package vision

import (
	"fmt"
	"sort"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/your-org/piv-face/internal/geometry"
)

// Detection is a single detected face, in source-image pixel coordinates.
type Detection struct {
	Box        geometry.FaceBox
	Confidence geometry.Confidence
}

// strides and anchorsPerStride mirror the det_10g RetinaFace head geometry.
var strides = []int{8, 16, 32}

const anchorsPerStride = 2

// Detector runs RetinaFace-style face detection.
type Detector struct {
	session       *ort.AdvancedSession
	inputTensor   *ort.Tensor[float32]
	outputTensors []*ort.Tensor[float32]
	threshold     float32
	inputW        int
	inputH        int
}

// NewDetector loads a RetinaFace ONNX model. opts may be nil for ORT defaults.
func NewDetector(modelPath string, threshold float32, opts *ort.SessionOptions) (*Detector, error) {
	inputW, inputH := 640, 640

	inputShape := ort.NewShape(1, 3, int64(inputH), int64(inputW))
	inputTensor, err := ort.NewEmptyTensor[float32](inputShape)
	if err != nil {
		return nil, fmt.Errorf("create detector input tensor: %w", err)
	}

	type outputSpec struct {
		name  string
		shape ort.Shape
	}

	// scores [N,1], bboxes [N,4], landmarks [N,10] per stride; N = (640/stride)^2 * anchorsPerStride.
	outputs := []outputSpec{
		{"448", ort.NewShape(12800, 1)},
		{"471", ort.NewShape(3200, 1)},
		{"494", ort.NewShape(800, 1)},
		{"451", ort.NewShape(12800, 4)},
		{"474", ort.NewShape(3200, 4)},
		{"497", ort.NewShape(800, 4)},
	}

	outputNames := make([]string, len(outputs))
	outputTensors := make([]*ort.Tensor[float32], len(outputs))
	outputValues := make([]ort.Value, len(outputs))

	for i, spec := range outputs {
		outputNames[i] = spec.name
		t, err := ort.NewEmptyTensor[float32](spec.shape)
		if err != nil {
			for j := 0; j < i; j++ {
				outputTensors[j].Destroy()
			}
			inputTensor.Destroy()
			return nil, fmt.Errorf("create detector output tensor %d (%s): %w", i, spec.name, err)
		}
		outputTensors[i] = t
		outputValues[i] = t
	}

	session, err := ort.NewAdvancedSession(modelPath,
		[]string{"input.1"},
		outputNames,
		[]ort.Value{inputTensor},
		outputValues,
		opts,
	)
	if err != nil {
		inputTensor.Destroy()
		for _, t := range outputTensors {
			t.Destroy()
		}
		return nil, fmt.Errorf("create detector session: %w", err)
	}

	return &Detector{
		session:       session,
		inputTensor:   inputTensor,
		outputTensors: outputTensors,
		threshold:     threshold,
		inputW:        inputW,
		inputH:        inputH,
	}, nil
}

// InputSize returns the model's expected input dimensions.
func (d *Detector) InputSize() (int, int) {
	return d.inputW, d.inputH
}

// Detect runs face detection on a preprocessed frame. imgData must be CHW
// float32 [3, inputH, inputW]; origW/origH are the source image dimensions
// used to rescale detections back to pixel coordinates.
func (d *Detector) Detect(imgData []float32, origW, origH int) ([]Detection, error) {
	inputSlice := d.inputTensor.GetData()
	copy(inputSlice, imgData)

	if err := d.session.Run(); err != nil {
		return nil, fmt.Errorf("run detection: %w", err)
	}

	detections := d.parseDetections(origW, origH)
	return nonMaxSuppress(detections, 0.4), nil
}

func (d *Detector) parseDetections(origW, origH int) []Detection {
	var detections []Detection

	scaleW := float32(origW) / float32(d.inputW)
	scaleH := float32(origH) / float32(d.inputH)

	for si, stride := range strides {
		scores := d.outputTensors[si].GetData()
		bboxes := d.outputTensors[si+3].GetData()

		fmW := d.inputW / stride
		fmH := d.inputH / stride

		idx := 0
		for cy := 0; cy < fmH; cy++ {
			for cx := 0; cx < fmW; cx++ {
				for a := 0; a < anchorsPerStride; a++ {
					score := scores[idx]
					if score >= d.threshold {
						anchorX := float32(cx) * float32(stride)
						anchorY := float32(cy) * float32(stride)
						st := float32(stride)

						x1 := clampF((anchorX-bboxes[idx*4+0]*st)*scaleW, 0, float32(origW))
						y1 := clampF((anchorY-bboxes[idx*4+1]*st)*scaleH, 0, float32(origH))
						x2 := clampF((anchorX+bboxes[idx*4+2]*st)*scaleW, 0, float32(origW))
						y2 := clampF((anchorY+bboxes[idx*4+3]*st)*scaleH, 0, float32(origH))

						if x2 > x1 && y2 > y1 {
							box, err := geometry.NewFaceBox(float64(x1), float64(y1), float64(x2-x1), float64(y2-y1))
							if err == nil {
								conf, err := geometry.NewConfidence(float64(score))
								if err == nil {
									detections = append(detections, Detection{Box: box, Confidence: conf})
								}
							}
						}
					}
					idx++
				}
			}
		}
	}

	return detections
}

// Close releases the ONNX session and all preallocated tensors.
func (d *Detector) Close() {
	if d.session != nil {
		d.session.Destroy()
	}
	if d.inputTensor != nil {
		d.inputTensor.Destroy()
	}
	for _, t := range d.outputTensors {
		if t != nil {
			t.Destroy()
		}
	}
}

// nonMaxSuppress keeps, for each cluster of overlapping detections, only the
// highest-confidence one.
func nonMaxSuppress(detections []Detection, iouThreshold float64) []Detection {
	if len(detections) == 0 {
		return detections
	}

	sort.Slice(detections, func(i, j int) bool {
		return detections[i].Confidence.Float64() > detections[j].Confidence.Float64()
	})

	keep := make([]bool, len(detections))
	for i := range keep {
		keep[i] = true
	}

	for i := range detections {
		if !keep[i] {
			continue
		}
		for j := i + 1; j < len(detections); j++ {
			if keep[j] && detections[i].Box.IntersectionOverUnion(detections[j].Box) > iouThreshold {
				keep[j] = false
			}
		}
	}

	result := make([]Detection, 0, len(detections))
	for i, d := range detections {
		if keep[i] {
			result = append(result, d)
		}
	}
	return result
}

func clampF(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
