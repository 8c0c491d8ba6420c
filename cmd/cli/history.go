package main

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
)

const maxHistorySize = 1000

// History mirrors the liner history so it can be listed and persisted.
type History struct {
	line     *liner.State
	commands []string
	file     string
}

func newHistory(line *liner.State) (*History, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return openHistory(line, filepath.Join(home, ".seqscope_history"))
}

// openHistory loads file into line. line may be nil.
func openHistory(line *liner.State, file string) (*History, error) {
	h := &History{
		line:     line,
		commands: make([]string, 0, maxHistorySize),
		file:     file,
	}
	if err := h.load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return h, nil
}

func (h *History) load() error {
	f, err := os.Open(h.file)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		h.add(scanner.Text())
	}
	return scanner.Err()
}

func (h *History) add(cmd string) {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return
	}

	// Don't add duplicates of the last command
	if len(h.commands) > 0 && h.commands[len(h.commands)-1] == cmd {
		return
	}

	h.commands = append(h.commands, cmd)
	if len(h.commands) > maxHistorySize {
		h.commands = h.commands[len(h.commands)-maxHistorySize:]
	}
	if h.line != nil {
		h.line.AppendHistory(cmd)
	}
}

// save writes the history through liner when attached, so the file stays in
// the format liner reads back.
func (h *History) save() error {
	f, err := os.Create(h.file)
	if err != nil {
		return err
	}
	defer f.Close()

	if h.line != nil {
		_, err = h.line.WriteHistory(f)
		return err
	}
	w := bufio.NewWriter(f)
	for _, cmd := range h.commands {
		w.WriteString(cmd)
		w.WriteByte('\n')
	}
	return w.Flush()
}

func (h *History) list(n int) []string {
	if n <= 0 || n > len(h.commands) {
		n = len(h.commands)
	}
	return h.commands[len(h.commands)-n:]
}
