package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/oahshtsua/lab/bstlab/internal/boyermoore"
	"github.com/oahshtsua/lab/bstlab/internal/logger"
	"github.com/oahshtsua/lab/bstlab/internal/shell"
	"github.com/oahshtsua/lab/bstlab/internal/store"
)

var cmdMenu = &cli.Command{
	Name:   "menu",
	Usage:  "interactive binary search tree menu (default)",
	Action: runMenu,
}

func runMenu(cctx *cli.Context) error {
	journal, err := openJournal(cctx)
	if err != nil {
		return err
	}
	defer journal.Close()

	tree := store.NewMemoryStore(store.WithJournal(journal))
	menu := shell.NewMenu(os.Stdin, os.Stdout, shell.WithTree(tree))
	return menu.Run(cctx.Context)
}

var cmdStates = &cli.Command{
	Name:  "states",
	Usage: "interactive search over the names of the 50 U.S. states",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    "case-sensitive",
			Usage:   "match letter case exactly",
			EnvVars: []string{"BSTLAB_CASE_SENSITIVE"},
		},
	},
	Action: func(cctx *cli.Context) error {
		return shell.NewStateSearch(os.Stdin, os.Stdout, cctx.Bool("case-sensitive")).Run(cctx.Context)
	},
}

var cmdSearch = &cli.Command{
	Name:      "search",
	Usage:     "print every offset of a pattern in a file (or the states text)",
	ArgsUsage: "<pattern> [<file>]",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    "case-sensitive",
			Usage:   "match letter case exactly",
			EnvVars: []string{"BSTLAB_CASE_SENSITIVE"},
		},
	},
	Action: func(cctx *cli.Context) error {
		pattern := cctx.Args().First()
		if pattern == "" {
			return fmt.Errorf("need a pattern to search for")
		}

		text := shell.StatesText()
		if path := cctx.Args().Get(1); path != "" {
			b, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			text = string(b)
		}

		return printMatches(os.Stdout, text, pattern, cctx.Bool("case-sensitive"))
	},
}

func printMatches(w io.Writer, text, pattern string, caseSensitive bool) error {
	opt := boyermoore.WithCaseSensitive(caseSensitive)
	indices := boyermoore.Search(text, pattern, opt)
	text, pattern = boyermoore.Normalize(text, pattern, opt)
	out := bufio.NewWriter(w)
	for _, idx := range indices {
		fmt.Fprintf(out, "%d\t%s\n", idx, shell.Snippet(text, idx, len(pattern)))
	}
	return out.Flush()
}

var cmdShape = &cli.Command{
	Name:      "shape",
	Usage:     "draw the balanced tree built from ascending keys",
	ArgsUsage: "<key>...",
	Action: func(cctx *cli.Context) error {
		keys, err := parseKeys(cctx.Args().Slice())
		if err != nil {
			return err
		}
		s := store.NewMemoryStore()
		if err := s.Build(keys); err != nil {
			return err
		}
		fmt.Print(s.Render())
		return nil
	},
}

func parseKeys(args []string) ([]int, error) {
	keys := make([]int, 0, len(args))
	for _, a := range args {
		for _, f := range strings.FieldsFunc(a, func(r rune) bool { return r == ',' || r == ' ' }) {
			k, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("invalid key %q: %w", f, err)
			}
			keys = append(keys, k)
		}
	}
	return keys, nil
}

var cmdJournal = &cli.Command{
	Name:      "journal",
	Usage:     "print the events recorded in a journal file",
	ArgsUsage: "<file>",
	Action: func(cctx *cli.Context) error {
		if cctx.Args().Len() != 1 {
			return fmt.Errorf("expected a single journal file")
		}
		events, err := logger.ReadFile(cctx.Args().First())
		for _, ev := range events {
			switch ev.Type {
			case logger.EventBuild:
				fmt.Printf("%d\t%s\t%s\n", ev.Sequence, ev.Type, shell.FormatKeys(ev.Keys))
			default:
				fmt.Printf("%d\t%s\t%d\n", ev.Sequence, ev.Type, ev.Key)
			}
		}
		return err
	},
}
