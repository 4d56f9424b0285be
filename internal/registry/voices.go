// Package registry provides the voice catalog for speech synthesis.
// The built-in catalog covers the stock Kokoro voices; deployments can
// replace it with a catalog file.
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"assistd/internal/common/fsutil"
	"assistd/pkg/types"
)

// DefaultLangCode is used when a voice has no catalog entry.
const DefaultLangCode = "a"

// BuiltinVoices returns the stock voice catalog. The returned map is a
// fresh copy; callers may mutate it.
func BuiltinVoices() map[string]types.VoiceInfo {
	return map[string]types.VoiceInfo{
		// American English (a)
		"af_alloy": {LangCode: "a", Description: "American English - Alloy"},
		"af_bella": {LangCode: "a", Description: "American English - Bella"},
		"af_heart": {LangCode: "a", Description: "American English - Heart"},
		"af_sky":   {LangCode: "a", Description: "American English - Sky"},

		// British English (b)
		"bf_alloy": {LangCode: "b", Description: "British English - Alloy"},
		"bf_bella": {LangCode: "b", Description: "British English - Bella"},
		"bf_heart": {LangCode: "b", Description: "British English - Heart"},
		"bf_sky":   {LangCode: "b", Description: "British English - Sky"},
	}
}

// LoadVoices reads a voice catalog file mapping voice id to its info.
// Supports .yaml/.yml and .json. An empty path returns the built-in
// catalog.
func LoadVoices(path string) (map[string]types.VoiceInfo, error) {
	if path == "" {
		return BuiltinVoices(), nil
	}
	expanded, err := fsutil.ExpandHome(path)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(expanded)
	if err != nil {
		return nil, fmt.Errorf("read voices file: %w", err)
	}

	var voices map[string]types.VoiceInfo
	switch ext := strings.ToLower(filepath.Ext(expanded)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &voices); err != nil {
			return nil, fmt.Errorf("parse voices file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &voices); err != nil {
			return nil, fmt.Errorf("parse voices file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported voices file extension: %s", ext)
	}

	if len(voices) == 0 {
		return nil, fmt.Errorf("voices file %s defines no voices", path)
	}
	for id, v := range voices {
		if v.LangCode == "" {
			return nil, fmt.Errorf("voice %q has no lang_code", id)
		}
	}
	return voices, nil
}

// LangCode returns the language code for voice, falling back to the
// default when the voice is not in the catalog.
func LangCode(voices map[string]types.VoiceInfo, voice string) string {
	if v, ok := voices[voice]; ok {
		return v.LangCode
	}
	return DefaultLangCode
}
