package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/andygrove/astro-video-player/internal/astrovideo"
)

const (
	exitOK    = 0
	exitError = 1
)

type Options struct {
	Output     string
	Frame      int
	DecodePath string
	LogFile    string
}

func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		return exitError
	}

	program := programName(args[0])
	opts := Options{}
	files := make([]string, 0)

	for i := 1; i < len(args); i++ {
		original := args[i]
		normalized := normalizeArg(original)

		switch {
		case normalized == "--help" || normalized == "-h":
			Help(program, stdout)
			return exitOK
		case normalized == "--version":
			Version(stdout)
			return exitOK
		case strings.HasPrefix(normalized, "--output="):
			if value, ok := valueAfterEqual(original); ok {
				opts.Output = value
			} else {
				HelpOutput(program, stdout)
				return exitError
			}
		case strings.HasPrefix(normalized, "--frame="):
			value, _ := valueAfterEqual(original)
			frame, err := strconv.Atoi(value)
			if err != nil || frame < 0 {
				fmt.Fprintf(stderr, "invalid frame number: %q\n", value)
				return exitError
			}
			opts.Frame = frame
		case strings.HasPrefix(normalized, "--decode="):
			value, ok := valueAfterEqual(original)
			if !ok || value == "" {
				fmt.Fprintln(stderr, "--decode needs a target file name")
				return exitError
			}
			opts.DecodePath = value
		case strings.HasPrefix(normalized, "--logfile="):
			opts.LogFile, _ = valueAfterEqual(original)
		case strings.HasPrefix(normalized, "--"):
			if normalized == "--" {
				continue
			}
			fmt.Fprintf(stderr, "unknown option: %s\n", original)
			return exitError
		default:
			files = append(files, original)
		}
	}

	if len(files) == 0 {
		return Usage(program, stdout)
	}

	if opts.DecodePath != "" {
		if err := decodeFrame(opts, files); err != nil {
			fmt.Fprintln(stderr, err.Error())
			return exitError
		}
		return exitOK
	}

	output, err := runCore(opts, files)
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return exitError
	}

	fmt.Fprint(stdout, output)

	if opts.LogFile != "" {
		if err := writeLogFile(opts.LogFile, output); err != nil {
			fmt.Fprintln(stderr, err.Error())
			return exitError
		}
	}

	return exitOK
}

func programName(arg0 string) string {
	name := filepath.Base(arg0)
	if runtime.GOOS == "windows" {
		ext := filepath.Ext(name)
		name = strings.TrimSuffix(name, ext)
	}
	return name
}

func normalizeArg(arg string) string {
	eq := strings.IndexByte(arg, '=')
	if eq == -1 {
		eq = len(arg)
	}

	lower := strings.ToLower(arg[:eq])
	return lower + arg[eq:]
}

func valueAfterEqual(arg string) (string, bool) {
	eq := strings.IndexByte(arg, '=')
	if eq == -1 {
		return "", false
	}
	return arg[eq+1:], true
}

func writeLogFile(path, output string) error {
	return os.WriteFile(path, []byte(output), 0644)
}

func runCore(opts Options, files []string) (string, error) {
	if opts.Output != "" && !strings.EqualFold(opts.Output, "Text") && !strings.EqualFold(opts.Output, "JSON") {
		return "", fmt.Errorf("output format not implemented: %s", opts.Output)
	}

	reports, err := astrovideo.AnalyzeFiles(files)
	if err != nil {
		return "", err
	}

	if strings.EqualFold(opts.Output, "JSON") {
		return astrovideo.RenderJSON(reports), nil
	}
	return astrovideo.RenderText(reports), nil
}

func decodeFrame(opts Options, files []string) error {
	if len(files) != 1 {
		return fmt.Errorf("--decode takes exactly one input file, got %d", len(files))
	}

	video, _, err := astrovideo.Open(files[0])
	if err != nil {
		return err
	}

	out, err := os.Create(opts.DecodePath)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := astrovideo.WriteFramePNG(video, opts.Frame, out); err != nil {
		os.Remove(opts.DecodePath)
		return err
	}
	return nil
}
