// Package prompts holds the survey question templates and the evaluation
// prompt built from them. Templates are JSON files embedded at compile time.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

// File is one parsed prompt file: template key to template text.
// Files are shared between callers and must not be modified.
type File map[string]string

// loaded caches parsed files by name. Embedded data never changes.
var loaded sync.Map // string -> File

// Load returns the parsed prompt file.
func Load(filename string) (File, error) {
	if f, ok := loaded.Load(filename); ok {
		return f.(File), nil
	}

	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	actual, _ := loaded.LoadOrStore(filename, f)
	return actual.(File), nil
}

// Keys returns the template keys in sorted order.
func (f File) Keys() []string {
	keys := make([]string, 0, len(f))
	for key := range f {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Get retrieves a prompt by filename and key.
func Get(filename, key string) (string, error) {
	f, err := Load(filename)
	if err != nil {
		return "", err
	}
	prompt, ok := f[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return prompt, nil
}

// MustGet is Get for templates that ship with the binary. It panics if the
// template is missing.
func MustGet(filename, key string) string {
	prompt, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// Keys returns the keys of a prompt file in sorted order.
func Keys(filename string) ([]string, error) {
	f, err := Load(filename)
	if err != nil {
		return nil, err
	}
	return f.Keys(), nil
}

// Format fills {{.Name}} placeholders from data in a single pass, so values
// that themselves look like placeholders are left alone. Unknown
// placeholders are kept.
func Format(template string, data map[string]string) string {
	names := make([]string, 0, len(data))
	for name := range data {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]string, 0, 2*len(names))
	for _, name := range names {
		pairs = append(pairs, "{{."+name+"}}", data[name])
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
