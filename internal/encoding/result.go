package encoding

// EncodingResult is the outcome of a single accepted JPEG 2000 encode.
type EncodingResult struct {
	Data           []byte
	RateBpp        float64
	RateTableIndex int
	Attempts       int
}

func newResult(data []byte, rateBpp float64, rateTableIndex, attempts int) EncodingResult {
	return EncodingResult{
		Data:           data,
		RateBpp:        rateBpp,
		RateTableIndex: rateTableIndex,
		Attempts:       attempts,
	}
}
