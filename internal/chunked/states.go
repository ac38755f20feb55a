package chunked

type decoderState uint8

const (
	eSize1Char decoderState = iota + 1
	eSize
	eSizeWS
	eExtension
	eSizeLF
	eData
	eDataCR
	eDataLF
	eTrailer
	eTrailerLine
	eTrailerLineLF
	eTrailerLF
	eDone
)
