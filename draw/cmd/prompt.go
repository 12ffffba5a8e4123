package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.ntppool.org/ticketdraw/selector"
)

var errNoInput = errors.New("no input")

// prompter asks questions on out and reads the answers, one per line, from in
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

func (p *prompter) line(question string) (string, error) {
	fmt.Fprintln(p.out, question)

	s, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	s = strings.TrimRight(s, "\r\n")
	if len(s) == 0 && errors.Is(err, io.EOF) {
		return "", errNoInput
	}
	return s, nil
}

func (p *prompter) count(question string) (int, error) {
	s, err := p.line(question)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %d", selector.ErrNegativePicks, n)
	}
	return n, nil
}
