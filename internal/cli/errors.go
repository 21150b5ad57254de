package cli

import (
	"fmt"
	"strconv"
	"strings"

	"tasklist/internal/tasklist"
)

// parseIndex reads a 0-based display index argument.
func parseIndex(arg string) (int, error) {
	s := strings.TrimSpace(arg)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: index %q is not a number", tasklist.ErrInvalidInput, arg)
	}
	return n, nil
}
