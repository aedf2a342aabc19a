package choice

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	numberPrompt      = "Enter the number corresponding to your choice: "
	numberFormatError = "Invalid input. Please enter a number."
	numberRangeError  = "Invalid input. Please enter a valid number."
)

// Prompter reads answers line by line from an input stream and writes
// prompts and complaints to an output stream.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a Prompter reading from in and writing to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Pick prints "{n}) {label}" for every label and reads the chosen number.
func (p *Prompter) Pick(labels []string, start int) (int, error) {
	lines := make([]string, len(labels))
	for i, label := range labels {
		lines[i] = fmt.Sprintf("%d) %s", start+i, label)
	}
	fmt.Fprintln(p.out, strings.Join(lines, "\n"))
	return p.Number(start, start+len(labels)-1)
}

// Number reads an integer in [min, max], asking again for as long as the
// answer is not one.
func (p *Prompter) Number(min, max int) (int, error) {
	for {
		fmt.Fprint(p.out, numberPrompt)
		line, err := p.readLine()
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			fmt.Fprintln(p.out, numberFormatError)
			continue
		}
		if n < min || n > max {
			fmt.Fprintln(p.out, numberRangeError)
			continue
		}
		return n, nil
	}
}

// Text reads a line, trims it and returns it once valid accepts it.
// errMsg is printed after every rejected answer.
func (p *Prompter) Text(prompt, errMsg string, valid Predicate) (string, error) {
	for {
		fmt.Fprint(p.out, prompt)
		line, err := p.readLine()
		if err != nil {
			return "", err
		}
		answer := strings.TrimSpace(line)
		if valid == nil || valid(answer) {
			return answer, nil
		}
		fmt.Fprintln(p.out, errMsg)
	}
}

// Name asks for a non-empty name.
func (p *Prompter) Name() (string, error) {
	return p.Text("Enter a name: ", "Invalid name, please enter a valid name.", NonEmpty)
}

// Path asks for an existing directory.
func (p *Prompter) Path() (string, error) {
	return p.Text("Enter a path: ", "Invalid path, please enter a valid path.", IsDir)
}

// Email asks for an email address.
func (p *Prompter) Email() (string, error) {
	return p.Text("Enter an email address: ", "Invalid email format, please enter a valid email.", IsEmail)
}

// readLine returns the next line without its terminator. A final line
// without a newline is still returned; only a drained stream is ErrCancelled.
func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(p.out)
			return "", ErrCancelled
		}
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
