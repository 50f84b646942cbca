package menu

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// pageSize is the number of rows shown per page by SelectPage.
const pageSize = 20

// Menu provides interactive prompt primitives over an input stream and an
// output stream. Every method blocks until the user answers or the input
// stream ends.
//
// Menu is not safe for concurrent use. Prompts are sequential by nature;
// callers drive one flow at a time.
type Menu struct {
	in  *bufio.Scanner
	out io.Writer
}

// New creates a Menu reading answers from in and writing prompts to out.
func New(in io.Reader, out io.Writer) *Menu {
	return &Menu{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// Say writes one line of output. Convenience for flows that mix prompts
// with informational text.
func (m *Menu) Say(format string, args ...any) {
	fmt.Fprintf(m.out, format+"\n", args...)
}

// Select displays a numbered list of labels and returns the index of the
// chosen one. An empty answer picks defaultIdx. Out-of-range or
// non-numeric answers re-prompt.
func (m *Menu) Select(prompt string, labels []string, defaultIdx int) (int, error) {
	if len(labels) == 0 {
		return 0, ErrNoChoices
	}
	if defaultIdx < 0 || defaultIdx >= len(labels) {
		defaultIdx = 0
	}

	if prompt != "" {
		fmt.Fprintln(m.out, prompt)
	}
	for i, label := range labels {
		fmt.Fprintf(m.out, "-%d: %s\n", i+1, label)
	}

	for {
		fmt.Fprintf(m.out, "Please make your selection(%d): ", defaultIdx+1)

		answer, err := m.readLine()
		if err != nil {
			return 0, err
		}
		if answer == "" {
			return defaultIdx, nil
		}

		n, convErr := strconv.Atoi(answer)
		if convErr != nil || n < 1 || n > len(labels) {
			fmt.Fprintf(m.out, "Please choose between 1 and %d.\n", len(labels))
			continue
		}
		return n - 1, nil
	}
}

// SelectPage displays labels twenty rows at a time and returns the index
// of the chosen one. Row numbers restart on every page; "n" and "p" move
// between pages, wrapping at either end. An empty answer picks the first
// row of the current page.
func (m *Menu) SelectPage(prompt string, labels []string) (int, error) {
	if len(labels) == 0 {
		return 0, ErrNoChoices
	}

	page := 0
	totalPages := (len(labels) + pageSize - 1) / pageSize
	render := true

	for {
		if render {
			m.renderPage(prompt, labels, page, totalPages)
			render = false
		}

		fmt.Fprint(m.out, "Please make your selection(1): ")

		answer, err := m.readLine()
		if err != nil {
			return 0, err
		}

		switch answer {
		case "n":
			page = (page + 1) % totalPages
			render = true
			continue
		case "p":
			page = (page - 1 + totalPages) % totalPages
			render = true
			continue
		case "":
			answer = "1"
		}

		rows := pageRows(len(labels), page)
		n, convErr := strconv.Atoi(answer)
		if convErr != nil || n < 1 || n > rows {
			fmt.Fprintf(m.out, "Please choose between 1 and %d.\n", rows)
			continue
		}
		return page*pageSize + n - 1, nil
	}
}

// Ask prints a prompt, reads one line, and returns it. An empty answer
// returns def. The prompt should mention the default when one applies.
func (m *Menu) Ask(prompt, def string) (string, error) {
	fmt.Fprintf(m.out, "%s>", prompt)

	answer, err := m.readLine()
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// Confirm asks a yes/no question. An empty answer returns def; anything
// other than a recognisable yes or no re-prompts.
func (m *Menu) Confirm(prompt string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}

	for {
		fmt.Fprintf(m.out, "%s (%s): ", prompt, hint)

		answer, err := m.readLine()
		if err != nil {
			return false, err
		}

		switch strings.ToLower(answer) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(m.out, "Please answer y or n.")
	}
}

// renderPage prints one page of labels with per-page row numbers and the
// pagination footer.
func (m *Menu) renderPage(prompt string, labels []string, page, totalPages int) {
	if prompt != "" {
		fmt.Fprintln(m.out, prompt)
	}
	start := page * pageSize
	for i := 0; i < pageRows(len(labels), page); i++ {
		fmt.Fprintf(m.out, "-%d: %s\n", i+1, labels[start+i])
	}
	fmt.Fprintf(m.out, "Page %d/%d -n: Next Page -p: Previous Page\n", page+1, totalPages)
}

// pageRows returns how many rows the given page holds.
func pageRows(total, page int) int {
	rows := total - page*pageSize
	if rows > pageSize {
		rows = pageSize
	}
	return rows
}

// readLine reads one line of input, trimmed of surrounding whitespace.
func (m *Menu) readLine() (string, error) {
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return "", ErrInputClosed
	}
	return strings.TrimSpace(m.in.Text()), nil
}
