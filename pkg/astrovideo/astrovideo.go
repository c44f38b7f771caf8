package astrovideo

import (
	"io"

	"github.com/andygrove/astro-video-player/internal/astrovideo"
)

// Types
type StreamKind = astrovideo.StreamKind
type Field = astrovideo.Field
type Stream = astrovideo.Stream
type Report = astrovideo.Report
type Video = astrovideo.Video
type Codec = astrovideo.Codec
type Bayer = astrovideo.Bayer
type AVIFile = astrovideo.AVIFile
type SERFile = astrovideo.SERFile
type SERHeader = astrovideo.SERHeader
type FrameDescriptor = astrovideo.FrameDescriptor

// Constants
const (
	StreamGeneral = astrovideo.StreamGeneral
	StreamVideo   = astrovideo.StreamVideo

	BayerNone = astrovideo.BayerNone
	BayerRGGB = astrovideo.BayerRGGB
	BayerGRBG = astrovideo.BayerGRBG
	BayerGBRG = astrovideo.BayerGBRG
	BayerBGGR = astrovideo.BayerBGGR
	BayerRGB  = astrovideo.BayerRGB
	BayerBGR  = astrovideo.BayerBGR
)

// Errors
var (
	ErrMalformedContainer     = astrovideo.ErrMalformedContainer
	ErrMissingMandatoryList   = astrovideo.ErrMissingMandatoryList
	ErrMissingMandatoryChunk  = astrovideo.ErrMissingMandatoryChunk
	ErrUnsupportedPixelFormat = astrovideo.ErrUnsupportedPixelFormat
	ErrInvalidPixelFormat     = astrovideo.ErrInvalidPixelFormat
	ErrFrameIndexOutOfRange   = astrovideo.ErrFrameIndexOutOfRange
	ErrCorruptFrameData       = astrovideo.ErrCorruptFrameData
)

// Opening
func Open(path string) (Video, string, error) {
	return astrovideo.Open(path)
}

func OpenAVI(path string) (*AVIFile, error) {
	return astrovideo.OpenAVI(path)
}

func OpenSER(path string) (*SERFile, error) {
	return astrovideo.OpenSER(path)
}

func NewAVIVideo(avi *AVIFile) Video {
	return astrovideo.NewAVIVideo(avi)
}

func NewSERVideo(ser *SERFile) Video {
	return astrovideo.NewSERVideo(ser)
}

func DetectFormat(header []byte) string {
	return astrovideo.DetectFormat(header)
}

// Decoding
func CodecFor(v Video) Codec {
	return astrovideo.CodecFor(v)
}

func WriteFramePNG(v Video, index int, w io.Writer) error {
	return astrovideo.WriteFramePNG(v, index, w)
}

// Analysis
func AnalyzeFile(path string) (Report, error) {
	return astrovideo.AnalyzeFile(path)
}

func AnalyzeFiles(paths []string) ([]Report, error) {
	return astrovideo.AnalyzeFiles(paths)
}

// Rendering
func RenderText(reports []Report) string {
	return astrovideo.RenderText(reports)
}

func RenderJSON(reports []Report) string {
	return astrovideo.RenderJSON(reports)
}

func FormatVersion(version string) string {
	return astrovideo.FormatVersion(version)
}

func SetAppVersion(version string) {
	astrovideo.SetAppVersion(version)
}
