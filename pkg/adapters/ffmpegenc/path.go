package ffmpegenc

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/user/sketchcast/pkg/pipeline"
)

// FindFFmpeg resolves the ffmpeg executable path in the following order:
// 1. FFMPEG_PATH environment variable
// 2. PATH lookup
// 3. Common installation locations per platform
func FindFFmpeg() (string, error) {
	if envPath := os.Getenv("FFMPEG_PATH"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
		return "", fmt.Errorf("%w: FFMPEG_PATH %s not found", ErrFFmpegNotFound, envPath)
	}

	execName := "ffmpeg"
	if runtime.GOOS == "windows" {
		execName = "ffmpeg.exe"
	}
	if path, err := exec.LookPath(execName); err == nil {
		return path, nil
	}

	var commonPaths []string
	switch runtime.GOOS {
	case "windows":
		commonPaths = []string{
			`C:\ffmpeg\bin\ffmpeg.exe`,
			`C:\Program Files\ffmpeg\bin\ffmpeg.exe`,
			`C:\Program Files (x86)\ffmpeg\bin\ffmpeg.exe`,
		}
	case "darwin":
		commonPaths = []string{
			"/opt/homebrew/bin/ffmpeg",
			"/usr/local/bin/ffmpeg",
			"/usr/bin/ffmpeg",
		}
	default:
		commonPaths = []string{
			"/usr/bin/ffmpeg",
			"/usr/local/bin/ffmpeg",
			"/opt/homebrew/bin/ffmpeg",
			"/snap/bin/ffmpeg",
		}
	}

	for _, p := range commonPaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", ErrFFmpegNotFound
}

// ResolveBinary locates ffmpeg, returning a PreconditionError with install
// guidance when it cannot be found. This must succeed before any frame is
// captured.
func (e *Encoder) ResolveBinary() (string, error) {
	path, err := FindFFmpeg()
	if err != nil {
		return "", &pipeline.PreconditionError{
			Reason: "ffmpeg not found: install it from https://ffmpeg.org/download.html" +
				" (e.g. apt install ffmpeg, brew install ffmpeg) or set the FFMPEG_PATH environment variable",
		}
	}
	e.ffmpegPath = path
	return path, nil
}
