package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
	"vkbackup/pkg/config"
	errs "vkbackup/pkg/errors"
)

// Prompter asks the user for run inputs on a line-oriented reader
type Prompter struct {
	reader   *bufio.Reader
	out      io.Writer
	fd       int
	terminal bool
}

// NewPrompter creates a prompter reading from in and writing prompts to out.
// Secrets are read without echo when in is a terminal.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{
		reader: bufio.NewReader(in),
		out:    out,
	}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.fd = int(f.Fd())
		p.terminal = true
	}
	return p
}

// ReadLine prints prompt and returns the trimmed answer
func (p *Prompter) ReadLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)

	line, err := p.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", errs.Input("no input for "+strings.TrimSpace(strings.TrimSuffix(prompt, ": ")), err)
		}
		return "", errs.Input("failed to read input", err)
	}

	return strings.TrimSpace(line), nil
}

// ReadSecret prints prompt and reads an answer without echo on a terminal
func (p *Prompter) ReadSecret(prompt string) (string, error) {
	if !p.terminal {
		return p.ReadLine(prompt)
	}

	fmt.Fprint(p.out, prompt)
	secret, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", errs.Input("failed to read secret", err)
	}
	return strings.TrimSpace(string(secret)), nil
}

// ReadPhotoCount prompts for the number of photos to back up
func (p *Prompter) ReadPhotoCount(prompt string) (int, error) {
	answer, err := p.ReadLine(prompt)
	if err != nil {
		return 0, err
	}
	return ParsePhotoCount(answer)
}

// ParsePhotoCount interprets a photo count answer. A blank answer selects the
// default; anything that is not a positive integer is rejected.
func ParsePhotoCount(answer string) (int, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return config.DefaultPhotoCount, nil
	}

	n, err := strconv.Atoi(answer)
	if err != nil {
		return 0, errs.Input(fmt.Sprintf("photo count %q is not a number", answer), err)
	}
	if n <= 0 {
		return 0, errs.Input(fmt.Sprintf("photo count must be positive, got %d", n), nil)
	}
	return n, nil
}
