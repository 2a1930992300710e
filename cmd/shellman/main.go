// Command shellman is a thin line-oriented shell over the browser core: it
// reads typed commands, passes names and confirmations through to the
// session, and prints the status strings and listings it gets back. All
// invariants live in the core; this binary only translates.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shellman/shellman/internal/config"
	"github.com/shellman/shellman/internal/fs"
	"github.com/shellman/shellman/internal/logging"
	"github.com/shellman/shellman/internal/session"
)

func main() {
	dir := flag.String("dir", "", "Directory to open (default: home)")
	hidden := flag.Bool("hidden", false, "Show hidden files at startup")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	dev := flag.Bool("dev", false, "Development logging (console output)")
	flag.Parse()

	cfg := config.LoadOrDefault()
	if *dir != "" {
		cfg.Browser.StartDir = *dir
	}
	if *hidden {
		cfg.Browser.ShowHidden = true
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	if *dev {
		cfg.Logging.Development = true
	}

	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	sess, err := session.New(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "shellman: %v\n", err)
		os.Exit(1)
	}

	printListing(sess)
	repl(sess)
}

func repl(sess *session.Session) {
	in := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("%s> ", sess.CurrentDir())
		if !in.Scan() {
			return
		}
		fields := strings.Fields(in.Text())
		if len(fields) == 0 {
			continue
		}
		cmd, args := fields[0], fields[1:]
		if cmd == "quit" || cmd == "q" {
			return
		}
		status, refresh := dispatch(sess, cmd, args, in)
		if status != "" {
			fmt.Println(status)
		}
		if refresh {
			printListing(sess)
		}
	}
}

// dispatch maps one typed command onto a session operation and reports the
// status line plus whether the listing changed.
func dispatch(sess *session.Session, cmd string, args []string, in *bufio.Scanner) (string, bool) {
	arg := strings.Join(args, " ")
	switch cmd {
	case "help", "?":
		return helpText, false
	case "ls":
		return "", true
	case "cd":
		if arg == "" {
			return "Usage: cd <path>", false
		}
		status, err := sess.GoTo(expand(sess, arg))
		return orErr(status, err), err == nil
	case "up":
		status, err := sess.Up()
		return orErr(status, err), err == nil
	case "hidden":
		_, status := sess.ToggleHidden()
		return status, true
	case "sort":
		if arg == "" {
			_, status := sess.CycleSortMode()
			return status, true
		}
		mode, ok := fs.ParseSortMode(arg)
		if !ok {
			return fmt.Sprintf("Unknown sort mode: %s", arg), false
		}
		return sess.SetSortMode(mode), true
	case "filter":
		return sess.SetFilter(arg), true
	case "select":
		if arg == "" {
			return "Usage: select <name>", false
		}
		if sess.ToggleSelect(expand(sess, arg)) {
			return fmt.Sprintf("Selected: %s", arg), true
		}
		return fmt.Sprintf("Deselected: %s", arg), true
	case "new":
		if arg == "" {
			return "Usage: new <name>", false
		}
		status, err := sess.CreateFile(arg)
		return orErr(status, err), err == nil
	case "mkdir":
		if arg == "" {
			return "Usage: mkdir <name>", false
		}
		status, err := sess.CreateDirectory(arg)
		return orErr(status, err), err == nil
	case "rename":
		if len(args) != 2 {
			return "Usage: rename <name> <new-name>", false
		}
		status, err := sess.Rename(expand(sess, args[0]), args[1])
		return orErr(status, err), err == nil
	case "rm":
		targets := sess.Targets(expand(sess, arg))
		if len(targets) == 0 {
			return "Nothing selected to delete", false
		}
		if !confirm(in, fmt.Sprintf("Delete %d item(s)? Moved to trash, undo restores them.", len(targets))) {
			return "Cancelled", false
		}
		status, err := sess.Delete(targets)
		return orErr(status, err), err == nil
	case "copy":
		if arg == "" {
			return "Usage: copy <name>", false
		}
		return sess.Copy(expand(sess, arg)), false
	case "cut":
		if arg == "" {
			return "Usage: cut <name>", false
		}
		return sess.Cut(expand(sess, arg)), false
	case "paste":
		status, err := sess.Paste()
		return orErr(status, err), err == nil
	case "zip":
		if len(args) == 0 {
			return "Usage: zip <name> [entry]", false
		}
		cursor := ""
		if len(args) > 1 {
			cursor = expand(sess, args[1])
		}
		if sess.ShouldExtract(cursor) {
			status, err := sess.ExtractIfArchive(cursor)
			return orErr(status, err), err == nil
		}
		targets := sess.Targets(cursor)
		status, err := sess.Archive(targets, args[0])
		return orErr(status, err), err == nil
	case "extract":
		if arg == "" {
			return "Usage: extract <name>", false
		}
		status, err := sess.ExtractIfArchive(expand(sess, arg))
		return orErr(status, err), err == nil
	case "undo":
		status, err := sess.Undo()
		return orErr(status, err), err == nil
	case "history":
		data, err := sess.HistoryJSON()
		return orErr(string(data), err), false
	case "info":
		if arg == "" {
			return "Usage: info <name>", false
		}
		info, err := sess.Info(expand(sess, arg))
		if err != nil {
			return err.Error(), false
		}
		return formatInfo(info), false
	case "refresh":
		return sess.RefreshStatus(), true
	default:
		return fmt.Sprintf("Unknown command: %s  (try help)", cmd), false
	}
}

func printListing(sess *session.Session) {
	entries, err := sess.Listing()
	if err != nil {
		// Keep whatever is on screen; just report.
		fmt.Println(err)
		return
	}
	status := sess.Status()
	for _, e := range entries {
		sel := " "
		if sess.Selected(e.Path) {
			sel = "*"
		}
		git := status[e.Name]
		if git == "" {
			git = " "
		}
		size := "-"
		if !e.IsDir {
			size = fs.HumanSize(e.Size)
		}
		fmt.Printf("%s %s %-10s %10s  %s  %s\n",
			sel, git, e.Permissions(), size,
			e.ModTime.Format("2006-01-02 15:04"), e.Name)
	}
	fmt.Println(sess.StatusLine(entries))
}

func formatInfo(info session.EntryInfo) string {
	kind := "File"
	if info.IsDir {
		kind = "Directory"
	}
	out := fmt.Sprintf("Name: %s\nPath: %s\nType: %s\nSize: %s\nPerms: %s\nModified: %s",
		info.Name, info.Path, kind, fs.HumanSize(info.Size),
		info.Permissions(), info.ModTime.Format("2006-01-02 15:04:05"))
	if info.MIME != "" {
		out += fmt.Sprintf("\nMIME: %s", info.MIME)
	}
	return out
}

func confirm(in *bufio.Scanner, prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	if !in.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(in.Text()))
	return answer == "y" || answer == "yes"
}

// expand turns a typed name into a path in the current directory; absolute
// paths pass through.
func expand(sess *session.Session, name string) string {
	if name == "" {
		return ""
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(sess.CurrentDir(), name)
}

func orErr(status string, err error) string {
	if err != nil {
		if status != "" {
			return fmt.Sprintf("%s: %v", status, err)
		}
		return err.Error()
	}
	return status
}

const helpText = `Commands:
  ls                      refresh listing
  cd <path> | up          navigate
  hidden                  toggle hidden files
  sort [name|size|modified|type]   set or cycle sort mode
  filter [text]           set or clear the name filter
  select <name>           toggle selection
  new <name> | mkdir <name>        create entries
  rename <name> <new>     rename an entry
  rm [name]               soft-delete selection (or one entry) to trash
  copy|cut <name>, paste  clipboard transfer
  zip <name> [entry]      archive selection (or extract a single archive)
  extract <name>          extract an archive
  undo                    undo the last operation
  history                 show the operation log as JSON
  info <name>             entry details
  refresh                 re-probe version status
  quit`
