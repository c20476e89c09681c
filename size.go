package bench

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var sizeRE = regexp.MustCompile(`(?i)^([0-9]+)([kmg]?b)?$`)

// ParseSize parses a size with B, KB, MB, GB unit and returns its value in bytes.
func ParseSize(s string) (int64, error) {
	m := sizeRE.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("invalid size %q", s)
	}
	v, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %v", s, err)
	}
	switch strings.ToLower(m[2]) {
	case "kb":
		v *= 1024
	case "mb":
		v *= 1024 * 1024
	case "gb":
		v *= 1024 * 1024 * 1024
	}
	return v, nil
}

// Size is a byte count that unmarshals from "4kb" style strings or plain integers.
type Size int64

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Size) UnmarshalText(text []byte) error {
	v, err := ParseSize(string(text))
	if err != nil {
		return err
	}
	*s = Size(v)
	return nil
}

// KB formats the size in whole kilobytes, e.g. "64KB".
func (s Size) KB() string {
	return fmt.Sprintf("%.0fKB", float64(s)/1024)
}
