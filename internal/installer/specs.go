package installer

import (
	"bufio"
	"os"
	"strings"
)

// defaultSpecs pins the runtime dependencies used when no requirements
// file is configured. Keys are pip distribution names.
var defaultSpecs = map[string]string{
	"faster-whisper":        "faster-whisper>=1.0.0",
	"kokoro":                "kokoro>=0.9.2",
	"sentence-transformers": "sentence-transformers>=3.0.0",
	"torch":                 "torch>=2.2.0",
	"soundfile":             "soundfile>=0.12.1",
	"librosa":               "librosa>=0.10.0",
	"transformers":          "transformers>=4.40.0",
}

// parseSpecs reads a requirements-format file and maps each package name
// to its full spec line. Only "==" and ">=" pins are recognized; anything
// else is kept verbatim under its own text.
func parseSpecs(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	specs := make(map[string]string)
	s := bufio.NewScanner(f)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		switch {
		case strings.Contains(line, ">="):
			name, ver, _ := strings.Cut(line, ">=")
			name = strings.TrimSpace(name)
			specs[name] = name + ">=" + strings.TrimSpace(ver)
		case strings.Contains(line, "=="):
			name, ver, _ := strings.Cut(line, "==")
			name = strings.TrimSpace(name)
			specs[name] = name + "==" + strings.TrimSpace(ver)
		default:
			specs[line] = line
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return specs, nil
}
