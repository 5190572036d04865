// Package review provides the interactive walkthrough of flagged files
// after a check. The session only reads and prints; nothing in the
// working tree or the index is modified.
package review

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/codesweep/sweep/internal/classify"
	"github.com/codesweep/sweep/internal/prompt"
)

// Item is one flagged file queued for review. The content fields hold
// the HEAD and staged versions used for the diff preview; either may be
// empty (new file, unreadable blob).
type Item struct {
	Record       classify.FileRecord
	HeadContent  string
	IndexContent string
}

type itemState int

const (
	statePending itemState = iota
	stateReviewed
	stateSkipped
)

func (s itemState) String() string {
	switch s {
	case stateReviewed:
		return "reviewed"
	case stateSkipped:
		return "skipped"
	default:
		return "pending"
	}
}

// commandHandler handles a specific command
type commandHandler func(args []string) error

// Session drives the interactive review loop.
type Session struct {
	items   []Item
	states  []itemState
	current int
	vendor  prompt.Vendor
	out     io.Writer

	rl       *readline.Instance
	commands map[string]commandHandler
}

// Config holds session configuration
type Config struct {
	Items  []Item
	Vendor prompt.Vendor // assistant used by the prompt command
	Out    io.Writer     // defaults to os.Stdout
}

// New creates a review session over the flagged files.
func New(cfg *Config) (*Session, error) {
	if len(cfg.Items) == 0 {
		return nil, fmt.Errorf("nothing to review")
	}

	vendor := cfg.Vendor
	if vendor == "" {
		vendor = prompt.VendorGeneric
	}

	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}

	s := &Session{
		items:    cfg.Items,
		states:   make([]itemState, len(cfg.Items)),
		vendor:   vendor,
		out:      out,
		commands: make(map[string]commandHandler),
	}
	s.registerCommands()

	return s, nil
}

// Run starts the session loop
func (s *Session) Run() error {
	cyan := color.New(color.FgCyan).SprintFunc()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            cyan("sweep> "),
		InterruptPrompt:   "^C",
		EOFPrompt:         "done",
		HistorySearchFold: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()
	s.rl = rl

	s.printWelcome()
	s.showItem(0)

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				// Ctrl+C - just show prompt again
				continue
			} else if err == io.EOF {
				// Ctrl+D - same as done
				s.printSummary()
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if err := s.processInput(line); err != nil {
			if err == io.EOF {
				return nil
			}
			red := color.New(color.FgRed).SprintFunc()
			fmt.Fprintf(s.out, "%s %v\n", red("Error:"), err)
		}
	}
}

// processInput processes a single line of input
func (s *Session) processInput(line string) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil
	}

	command := parts[0]
	args := parts[1:]

	handler, ok := s.commands[command]
	if !ok {
		return fmt.Errorf("unknown command %q (try 'help')", command)
	}
	return handler(args)
}

// registerCommands registers all built-in commands
func (s *Session) registerCommands() {
	s.commands["help"] = s.cmdHelp
	s.commands["?"] = s.cmdHelp
	s.commands["list"] = s.cmdList
	s.commands["show"] = s.cmdShow
	s.commands["next"] = s.cmdNext
	s.commands["skip"] = s.cmdSkip
	s.commands["prompt"] = s.cmdPrompt
	s.commands["done"] = s.cmdDone
	s.commands["quit"] = s.cmdDone
	s.commands["exit"] = s.cmdDone
}

func (s *Session) printWelcome() {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	fmt.Fprintf(s.out, "\n%s\n", cyan(fmt.Sprintf("Reviewing %d flagged files", len(s.items))))
	fmt.Fprintln(s.out, "Type 'help' for commands, 'done' to finish")
	fmt.Fprintln(s.out)
}

func (s *Session) printSummary() {
	reviewed, skipped, pending := 0, 0, 0
	for _, state := range s.states {
		switch state {
		case stateReviewed:
			reviewed++
		case stateSkipped:
			skipped++
		default:
			pending++
		}
	}

	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(s.out, "\n%s Review finished: %d reviewed, %d skipped, %d pending\n",
		green("✓"), reviewed, skipped, pending)
}

// cmdHelp shows help information
func (s *Session) cmdHelp(args []string) error {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	fmt.Fprintf(s.out, "\n%s\n", cyan("Available Commands:"))
	fmt.Fprintln(s.out)

	commands := []struct {
		name string
		desc string
	}{
		{"list", "List the flagged files and their review state"},
		{"show N", "Show issues and staged diff for file N"},
		{"next", "Mark the current file reviewed and move on"},
		{"skip", "Skip the current file and move on"},
		{"prompt", "Print the assistant prompt for the current file"},
		{"done, quit", "Finish the review"},
		{"help, ?", "Show this help message"},
	}

	green := color.New(color.FgGreen).SprintFunc()
	for _, cmd := range commands {
		fmt.Fprintf(s.out, "  %-12s %s\n", green(cmd.name), cmd.desc)
	}
	fmt.Fprintln(s.out)

	return nil
}

// cmdList lists every item with its position and state
func (s *Session) cmdList(args []string) error {
	fmt.Fprintln(s.out)
	for i, item := range s.items {
		marker := " "
		if i == s.current {
			marker = ">"
		}
		fmt.Fprintf(s.out, "%s %2d. %-40s %d issues  [%s]\n",
			marker, i+1, item.Record.Path, len(item.Record.Issues), s.states[i])
	}
	fmt.Fprintln(s.out)
	return nil
}

// cmdShow displays an item by 1-based position, or the current one
func (s *Session) cmdShow(args []string) error {
	idx := s.current
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 || n > len(s.items) {
			return fmt.Errorf("show wants a file number between 1 and %d", len(s.items))
		}
		idx = n - 1
	}

	s.showItem(idx)
	return nil
}

// cmdNext marks the current file reviewed and advances
func (s *Session) cmdNext(args []string) error {
	return s.advance(stateReviewed)
}

// cmdSkip skips the current file and advances
func (s *Session) cmdSkip(args []string) error {
	return s.advance(stateSkipped)
}

func (s *Session) advance(state itemState) error {
	if s.states[s.current] == statePending {
		s.states[s.current] = state
	}

	next := s.nextPending(s.current)
	if next < 0 {
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Fprintf(s.out, "%s Every file has been visited. Type 'done' to finish or 'list' to revisit.\n", green("✓"))
		return nil
	}

	s.showItem(next)
	return nil
}

// nextPending returns the index of the next pending item after from,
// wrapping around once, or -1 when none remain.
func (s *Session) nextPending(from int) int {
	for i := 1; i <= len(s.items); i++ {
		idx := (from + i) % len(s.items)
		if s.states[idx] == statePending {
			return idx
		}
	}
	return -1
}

// cmdPrompt prints the vendor prompt set scoped to the current file
func (s *Session) cmdPrompt(args []string) error {
	item := s.items[s.current]
	result := &classify.Result{
		SizeClass:   classify.SizeStandard,
		HasIssues:   true,
		FileRecords: []classify.FileRecord{item.Record},
	}

	for _, p := range prompt.Build(s.vendor, result) {
		fmt.Fprintf(s.out, "\n## %s\n\n%s\n", p.Title, p.Body)
	}
	fmt.Fprintln(s.out)
	return nil
}

// cmdDone finishes the session
func (s *Session) cmdDone(args []string) error {
	s.printSummary()
	return io.EOF // Signal to exit the loop
}

// showItem renders one item: header, issues, then the staged diff.
func (s *Session) showItem(idx int) {
	s.current = idx
	item := s.items[idx]
	rec := item.Record

	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	header := fmt.Sprintf("[%d/%d] %s", idx+1, len(s.items), rec.Path)
	fmt.Fprintf(s.out, "\n%s", cyan(header))
	if rec.Language != "" {
		fmt.Fprintf(s.out, " (%s, %d lines)", rec.Language, rec.LineCount)
	}
	fmt.Fprintln(s.out)

	fmt.Fprintln(s.out, "Issues:")
	for _, issue := range rec.Issues {
		if issue.Line > 0 {
			fmt.Fprintf(s.out, "  - %s at line %d: %s\n", issue.Kind, issue.Line, issue.Detail)
		} else {
			fmt.Fprintf(s.out, "  - %s: %s\n", issue.Kind, issue.Detail)
		}
	}

	fmt.Fprintln(s.out, "Staged diff:")
	fmt.Fprint(s.out, RenderDiff(item.HeadContent, item.IndexContent))
}
