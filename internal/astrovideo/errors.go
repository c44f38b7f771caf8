package astrovideo

import "errors"

var (
	ErrMalformedContainer     = errors.New("astrovideo: malformed container")
	ErrMissingMandatoryList   = errors.New("astrovideo: missing mandatory list")
	ErrMissingMandatoryChunk  = errors.New("astrovideo: missing mandatory chunk")
	ErrUnsupportedPixelFormat = errors.New("astrovideo: unsupported pixel format")
	ErrInvalidPixelFormat     = errors.New("astrovideo: invalid pixel format")
	ErrFrameIndexOutOfRange   = errors.New("astrovideo: frame index out of range")
	ErrCorruptFrameData       = errors.New("astrovideo: corrupt frame data")
)
