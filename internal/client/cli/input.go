package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readSecret is a test seam for term.ReadPassword.
var readSecret = term.ReadPassword

// readLine reads one trimmed line. Every loop goes through the same
// shared reader, so buffered read-ahead never swallows queued input.
// Returns false on EOF with nothing buffered.
func readLine(reader *bufio.Reader) (string, bool) {
	line, err := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if err != nil && line == "" {
		return "", false
	}
	return line, true
}

// getSimpleText prints a prompt and reads one trimmed line. A partial line
// followed by EOF is still returned.
func getSimpleText(reader *bufio.Reader, prompt string) (string, error) {
	fmt.Println(prompt)
	fmt.Print("> ")
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// getSecret reads a line without echo. Used for the one-time session id so
// it does not end up in terminal scrollback.
func getSecret(prompt string) (string, error) {
	fmt.Print(prompt + ": ")
	secret, err := readSecret(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(secret)), nil
}

// getMultiline reads lines until an empty one and joins them with newlines.
func getMultiline(reader *bufio.Reader, prompt string) (string, error) {
	fmt.Println(prompt + " (empty line to finish)")

	var lines []string
	for {
		line, _ := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		lines = append(lines, line)
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}
