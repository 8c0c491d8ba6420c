package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"seqscope/internal/common"
	"seqscope/internal/config"
	"seqscope/internal/index_cache"
	"seqscope/internal/reader"

	"github.com/peterh/liner"
)

const usage = "commands: dump <file> | count <file>... | validate <file> | stats <file>... | " +
	"index <file> | get <file> <id> | seed <file> <x> | inspect <file> | history [n] | exit"

var commands = []string{"dump", "count", "validate", "stats", "index", "get", "seed", "inspect", "history", "exit", "quit"}

// shell executes one command line at a time against out.
type shell struct {
	out     io.Writer
	opts    []reader.Option
	width   int
	workers int
	history *History
	indexes index_cache.IndexCache
}

func main() {
	cfg, err := config.Load("seqscope.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	opts, err := cfg.ReaderOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}
	logger, err := cfg.Logging.BuildLogger(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	common.SetLogger(logger)

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(func(l string) []string {
		var out []string
		for _, c := range commands {
			if strings.HasPrefix(c, strings.ToLower(l)) {
				out = append(out, c)
			}
		}
		return out
	})

	history, err := newHistory(line)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: history unavailable: %v\n", err)
	}

	sh := &shell{
		out:     os.Stdout,
		opts:    opts,
		width:   cfg.Output.LineWidth,
		workers: cfg.Workers,
		history: history,
		indexes: index_cache.New(index_cache.DefaultCapacity),
	}

	fmt.Println("seqscope - record file shell")
	fmt.Printf("config: alphabet=%s policy=%s allow_empty=%t\n",
		cfg.Reader.Alphabet, cfg.Reader.Policy, cfg.Reader.AllowEmpty)
	fmt.Println(usage)

	for {
		input, err := line.Prompt("> ")
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, liner.ErrPromptAborted) {
				fmt.Fprintf(os.Stderr, "input error: %v\n", err)
			}
			break
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if history != nil {
			history.add(input)
		}
		if !sh.exec(input) {
			break
		}
	}

	if history != nil {
		if err := history.save(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to save history: %v\n", err)
		}
	}
}

// exec runs one command line and reports whether the shell should continue.
func (s *shell) exec(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "dump":
		if len(args) != 1 {
			fmt.Fprintln(s.out, "usage: dump <file>")
			return true
		}
		s.dumpFile(args[0])
	case "count":
		if len(args) == 0 {
			fmt.Fprintln(s.out, "usage: count <file>...")
			return true
		}
		for _, path := range args {
			s.countFile(path)
		}
	case "validate":
		if len(args) != 1 {
			fmt.Fprintln(s.out, "usage: validate <file>")
			return true
		}
		s.validateFile(args[0])
	case "stats":
		if len(args) == 0 {
			fmt.Fprintln(s.out, "usage: stats <file>...")
			return true
		}
		s.stats(args)
	case "index":
		if len(args) != 1 {
			fmt.Fprintln(s.out, "usage: index <file>")
			return true
		}
		s.indexFile(args[0])
	case "get":
		if len(args) != 2 {
			fmt.Fprintln(s.out, "usage: get <file> <id>")
			return true
		}
		s.get(args[0], args[1])
	case "seed":
		if len(args) != 2 {
			fmt.Fprintln(s.out, "usage: seed <file> <x>")
			return true
		}
		x, err := strconv.Atoi(args[1])
		if err != nil || x < 1 {
			fmt.Fprintln(s.out, "seed: x must be a positive integer")
			return true
		}
		s.seed(args[0], x)
	case "inspect":
		if len(args) != 1 {
			fmt.Fprintln(s.out, "usage: inspect <file.fa|file.sqi>")
			return true
		}
		s.inspectFile(args[0])
	case "history":
		s.printHistory(args)
	case "help":
		fmt.Fprintln(s.out, usage)
	case "exit", "quit":
		return false
	default:
		fmt.Fprintln(s.out, "unknown command")
	}
	return true
}

func (s *shell) printHistory(args []string) {
	if s.history == nil {
		fmt.Fprintln(s.out, "history unavailable")
		return
	}
	n := 0
	if len(args) == 1 {
		var err error
		if n, err = strconv.Atoi(args[0]); err != nil {
			fmt.Fprintln(s.out, "usage: history [n]")
			return
		}
	}
	for i, c := range s.history.list(n) {
		fmt.Fprintf(s.out, "%4d  %s\n", i+1, c)
	}
}
