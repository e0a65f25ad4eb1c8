// Package devicetree reads the running device's device tree compatibles.
package devicetree

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Locations of the compatible property, relative to the filesystem root.
var compatiblePaths = []string{
	"sys/firmware/devicetree/base/compatible",
	"proc/device-tree/compatible",
}

// Compatibles returns the device's compatibles, most specific first, read
// below root ("/" on a real system). Devices without a device tree yield an
// empty list and no error.
func Compatibles(root string) ([]string, error) {
	if root == "" {
		root = "/"
	}
	for _, rel := range compatiblePaths {
		data, err := os.ReadFile(filepath.Join(root, rel))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("reading device tree compatibles: %w", err)
		}
		return Parse(data), nil
	}
	return []string{}, nil
}

// Parse splits a NUL separated compatible property.
func Parse(data []byte) []string {
	parts := bytes.Split(data, []byte{0})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		s := strings.TrimSpace(string(p))
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

// ParseList splits an override such as the PTOUR_COMPATIBLES environment
// variable. Compatibles contain a comma between vendor and model, so
// entries are separated by whitespace or semicolons.
func ParseList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ';' || r == ' ' || r == '\t' || r == '\n'
	})
}
