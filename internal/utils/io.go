package utils

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ReadInput returns the contents of the named file, or of stdin when name is
// "-". Empty input is an error, as is an interactive stdin with nothing piped.
func ReadInput(name string) ([]byte, error) {
	if name != "-" {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		if len(data) == 0 {
			return nil, fmt.Errorf("%s is empty", name)
		}
		return data, nil
	}

	if StdinIsTerminal() {
		return nil, errors.New("no data on stdin (hint: pipe a CSV file to this command)")
	}
	return readAll(os.Stdin, "stdin")
}

func readAll(r io.Reader, source string) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s is empty", source)
	}
	return data, nil
}
