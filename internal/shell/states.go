package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/oahshtsua/lab/bstlab/internal/boyermoore"
)

var states = []string{
	"Alabama", "Alaska", "Arizona", "Arkansas", "California", "Colorado", "Connecticut", "Delaware",
	"Florida", "Georgia", "Hawaii", "Idaho", "Illinois", "Indiana", "Iowa", "Kansas", "Kentucky",
	"Louisiana", "Maine", "Maryland", "Massachusetts", "Michigan", "Minnesota", "Mississippi",
	"Missouri", "Montana", "Nebraska", "Nevada", "New Hampshire", "New Jersey", "New Mexico",
	"New York", "North Carolina", "North Dakota", "Ohio", "Oklahoma", "Oregon", "Pennsylvania",
	"Rhode Island", "South Carolina", "South Dakota", "Tennessee", "Texas", "Utah", "Vermont",
	"Virginia", "Washington", "West Virginia", "Wisconsin", "Wyoming",
}

// StatesText is the names of the 50 U.S. states separated by newlines.
func StatesText() string {
	return strings.Join(states, "\n")
}

const snippetContext = 15

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// StateSearch is a three option menu that searches the states text.
type StateSearch struct {
	prompter
	text          string
	caseSensitive bool
}

func NewStateSearch(in io.Reader, out io.Writer, caseSensitive bool) *StateSearch {
	return &StateSearch{
		prompter:      newPrompter(in, out),
		text:          StatesText(),
		caseSensitive: caseSensitive,
	}
}

func (s *StateSearch) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintln(s.out, "Choose an option:")
		fmt.Fprintln(s.out, "  1) Display the text")
		fmt.Fprintln(s.out, "  2) Search")
		fmt.Fprintln(s.out, "  3) Exit program")
		choice, err := s.readLine("Enter choice: ")
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(s.out)
			return nil
		}
		if err != nil {
			return err
		}

		switch strings.TrimSpace(choice) {
		case "1":
			fmt.Fprintln(s.out, "\n--- TEXT CONTENT (50 U.S. States) ---")
			fmt.Fprintln(s.out, s.text)
			fmt.Fprintln(s.out, "-------------------------------------")
			fmt.Fprintln(s.out)
		case "2":
			pattern, err := s.readLine("\nEnter a pattern to search for (e.g., 'New', 'Carolina'): ")
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(s.out)
				return nil
			}
			if err != nil {
				return err
			}
			s.report(pattern)
		case "3":
			fmt.Fprintln(s.out, "\nExiting program. Goodbye!")
			return nil
		default:
			fmt.Fprintln(s.out, "Please choose 1, 2, or 3.")
			fmt.Fprintln(s.out)
		}
	}
}

func (s *StateSearch) report(pattern string) {
	opt := boyermoore.WithCaseSensitive(s.caseSensitive)
	indices := boyermoore.Search(s.text, pattern, opt)
	text, matched := boyermoore.Normalize(s.text, pattern, opt)

	fmt.Fprintln(s.out, "\nResults:")
	if len(indices) == 0 {
		fmt.Fprintln(s.out, "  No occurrences found.")
	} else {
		fmt.Fprintf(s.out, "  Occurrence count : %d\n", len(indices))
		fmt.Fprintf(s.out, "  Start indices    : %s\n", FormatIndices(indices))
		for _, idx := range indices {
			fmt.Fprintf(s.out, "    @%d ...%s...\n", idx, Snippet(text, idx, len(matched)))
		}
	}
	fmt.Fprintln(s.out)
}

// FormatIndices renders indices as "[a, b, c]".
func FormatIndices(indices []int) string {
	parts := make([]string, len(indices))
	for i, idx := range indices {
		parts[i] = strconv.Itoa(idx)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Snippet returns text around a match of length n at idx, with up to 15 bytes
// of context either side and line breaks flattened to spaces.
func Snippet(text string, idx, n int) string {
	start := min(max(0, idx-snippetContext), len(text))
	end := max(min(len(text), idx+n+snippetContext), start)
	return lineBreaks.Replace(text[start:end])
}
