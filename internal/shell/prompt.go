// Package shell holds the line oriented menus that drive the tree and the
// pattern search from a terminal.
package shell

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) prompter {
	return prompter{in: bufio.NewScanner(in), out: out}
}

// readLine prints prompt and returns the next input line. It returns io.EOF
// once the input is exhausted.
func (p prompter) readLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return "", io.EOF
	}
	return p.in.Text(), nil
}

// readInt prompts until the user enters a valid integer.
func (p prompter) readInt(prompt string) (int, error) {
	for {
		line, err := p.readLine(prompt)
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(strings.TrimSpace(line))
		if err == nil {
			return v, nil
		}
		fmt.Fprintln(p.out, "Invalid integer. Please try again.")
	}
}
