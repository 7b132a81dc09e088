package prompter

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

var (
	// In and Out are the terminal streams. Tests replace them.
	In  io.Reader = os.Stdin
	Out io.Writer = os.Stdout

	readerMu sync.Mutex
	reader   *bufio.Reader
	readerOf io.Reader
)

// input returns one buffered reader per In so consecutive prompts do not lose bytes
func input() *bufio.Reader {
	readerMu.Lock()
	defer readerMu.Unlock()
	if reader == nil || readerOf != In {
		reader = bufio.NewReader(In)
		readerOf = In
	}
	return reader
}

func readLine() (string, error) {
	line, err := input().ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// PromptString prompts user for a string input
func PromptString(label string) (string, error) {
	fmt.Fprint(Out, label)
	line, err := readLine()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// PromptPassword prompts user for a password (hidden input).
// Falls back to a plain read when In is not a terminal.
func PromptPassword(label string) (string, error) {
	fmt.Fprint(Out, label)

	if f, ok := In.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		bytepw, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		fmt.Fprintln(Out)
		return string(bytepw), nil
	}

	return readLine()
}

// PromptConfirm prompts user for yes/no confirmation
func PromptConfirm(label string) (bool, error) {
	fmt.Fprint(Out, label+" (y/n) ")
	line, err := readLine()
	if err != nil {
		return false, err
	}

	response := strings.TrimSpace(strings.ToLower(line))
	return response == "y" || response == "yes", nil
}

// PromptMultilineString reads lines until an empty line or maxLines
func PromptMultilineString(label string, maxLines int) (string, error) {
	fmt.Fprintf(Out, "%s (finish with an empty line):\n", label)

	var lines []string
	for i := 0; i < maxLines; i++ {
		line, err := readLine()
		if err != nil {
			if err == io.EOF {
				break
			}
			return "", err
		}
		if line == "" {
			break
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n"), nil
}

// Confirmer asks yes/no questions on the terminal.
// AssumeYes answers every question without prompting.
type Confirmer struct {
	AssumeYes bool
}

// Confirm returns false when the answer is no or cannot be read
func (c Confirmer) Confirm(prompt string) bool {
	if c.AssumeYes {
		return true
	}
	ok, err := PromptConfirm(prompt)
	if err != nil {
		return false
	}
	return ok
}
