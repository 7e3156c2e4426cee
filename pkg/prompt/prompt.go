// Package prompt handles the operator-facing terminal conversation: free-form
// lines, yes/no questions, row-number lists, and masked password entry.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Reader asks questions on out and reads answers from in. Invalid answers
// re-prompt in a loop; only I/O failure (EOF included) surfaces as an error.
type Reader struct {
	scanner *bufio.Scanner
	out     io.Writer
	fd      int
	isTerm  bool
}

// New builds a Reader over the given streams. Password masking is only
// enabled when in is a real terminal.
func New(in io.Reader, out io.Writer) *Reader {
	r := &Reader{scanner: bufio.NewScanner(in), out: out, fd: -1}
	if f, ok := in.(*os.File); ok {
		fd := int(f.Fd())
		if term.IsTerminal(fd) {
			r.fd = fd
			r.isTerm = true
		}
	}
	return r
}

// Line prints the prompt and returns one trimmed line of input.
func (r *Reader) Line(prompt string) (string, error) {
	fmt.Fprintln(r.out, prompt)
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(r.scanner.Text()), nil
}

// YesNo asks a yes/no question until the answer starts with "y" or "n"
// (case-insensitive).
func (r *Reader) YesNo(prompt string) (bool, error) {
	for {
		answer, err := r.Line(prompt)
		if err != nil {
			return false, err
		}
		switch {
		case strings.HasPrefix(strings.ToLower(answer), "y"):
			return true, nil
		case strings.HasPrefix(strings.ToLower(answer), "n"):
			return false, nil
		}
		fmt.Fprintln(r.out, `Please respond with "yes" or "no"`)
	}
}

// RowNumbers asks for a comma-separated list of 1-based row numbers,
// re-prompting until every entry parses as an integer.
func (r *Reader) RowNumbers(prompt string) ([]int, error) {
	for {
		answer, err := r.Line(prompt)
		if err != nil {
			return nil, err
		}
		numbers, err := parseRowNumbers(answer)
		if err != nil {
			fmt.Fprintf(r.out, "Could not read row numbers (%v). Enter a comma-separated list like 2,5,7.\n", err)
			continue
		}
		return numbers, nil
	}
}

func parseRowNumbers(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	numbers := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, fmt.Errorf("empty entry")
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("not a number: %q", p)
		}
		numbers = append(numbers, n)
	}
	if len(numbers) == 0 {
		return nil, fmt.Errorf("no rows given")
	}
	return numbers, nil
}

// SheetName asks which sheet to use, re-prompting with the available names
// until the answer matches one of them.
func (r *Reader) SheetName(available []string) (string, error) {
	name, err := r.Line("Which sheet would you like to select for transfers?")
	for err == nil && !contains(available, name) {
		name, err = r.Line(fmt.Sprintf("Sheet not found. Please enter a sheet from the following list:\n%s", strings.Join(available, ", ")))
	}
	return name, err
}

// Password reads a line without echoing when attached to a terminal. Off a
// terminal it falls back to a plain read so the tool stays scriptable.
func (r *Reader) Password(prompt string) (string, error) {
	if !r.isTerm {
		return r.Line(prompt)
	}
	fmt.Fprint(r.out, prompt+" ")
	b, err := term.ReadPassword(r.fd)
	fmt.Fprintln(r.out)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
