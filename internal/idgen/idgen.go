// Package idgen generates short claim codes backed by nanoid.
package idgen

import (
	"fmt"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// CodeAlphabet omits characters that are easy to misread in chat (0/O, 1/I/L).
const CodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// CodeLength is the number of characters in a transfer code.
const CodeLength = 8

// TransferCode returns a new random transfer claim code.
func TransferCode() (string, error) {
	code, err := nanoid.Generate(CodeAlphabet, CodeLength)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return code, nil
}
