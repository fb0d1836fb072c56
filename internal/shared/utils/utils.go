package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseID parses a path id. Ids are positive integers.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// ParseOptionalID parses an id used as an optional association or filter.
// Blank and the sentinel "0" mean "none" and return ok=false with no error.
func ParseOptionalID(s string) (id int64, ok bool, err error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" {
		return 0, false, nil
	}
	id, err = ParseID(s)
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}
