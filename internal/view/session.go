package view

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"blog-go/internal/blog"
)

const sessionHelp = `Commands:
  list                 show the post list
  search [text]        filter posts; no text clears the filter
  sort <key>           sort by date, title, category or readTime; repeat to flip order
  new                  write a new post
  delete <id>          delete a post
  open <id>            show a post
  help                 show this help
  quit                 leave
`

// Session is a line-oriented interactive front end for a ListView.
type Session struct {
	list   *ListView
	in     *bufio.Scanner
	out    io.Writer
	logger blog.Logger
}

// NewSession reads commands from in and writes pages and prompts to out.
func NewSession(list *ListView, in io.Reader, out io.Writer, logger blog.Logger) *Session {
	return &Session{
		list:   list,
		in:     bufio.NewScanner(in),
		out:    out,
		logger: logger,
	}
}

// Run shows the list, then executes commands until quit or end of input.
// Errors from individual commands are printed and do not end the session;
// only a failure to write output does.
func (s *Session) Run() error {
	if err := RenderList(s.out, s.list.Page()); err != nil {
		return err
	}

	for {
		line, ok := s.prompt("> ")
		if !ok {
			return s.in.Err()
		}

		cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
		arg = strings.TrimSpace(arg)

		done, err := s.dispatch(strings.ToLower(cmd), arg)
		if err != nil {
			var werr writeError
			if errors.As(err, &werr) {
				return werr.err
			}
			s.logger.Debug("session command failed", "command", cmd, "error", err)
			if _, err := fmt.Fprintf(s.out, "error: %v\n", err); err != nil {
				return err
			}
		}
		if done {
			return nil
		}
	}
}

// writeError marks a failure to write to the session output.
type writeError struct{ err error }

func (e writeError) Error() string { return e.err.Error() }

func (s *Session) write(err error) error {
	if err != nil {
		return writeError{err}
	}
	return nil
}

func (s *Session) dispatch(cmd, arg string) (done bool, err error) {
	switch cmd {
	case "":
		return false, nil
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		_, err := io.WriteString(s.out, sessionHelp)
		return false, s.write(err)
	case "list", "ls":
		return false, s.write(RenderList(s.out, s.list.Page()))
	case "search":
		s.list.SetSearch(arg)
		return false, s.write(RenderList(s.out, s.list.Page()))
	case "sort":
		key, err := blog.ParseSortKey(arg)
		if err != nil {
			return false, err
		}
		s.list.ToggleSort(key)
		return false, s.write(RenderList(s.out, s.list.Page()))
	case "open":
		id, err := parseID(arg)
		if err != nil {
			return false, err
		}
		return false, s.write(RenderDetail(s.out, s.list.Detail(id)))
	case "delete", "rm":
		return false, s.delete(arg)
	case "new":
		return false, s.create()
	default:
		return false, fmt.Errorf("unknown command %q (type help)", cmd)
	}
}

func (s *Session) delete(arg string) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}

	removed, err := s.list.Delete(id, func(p blog.Post) bool {
		answer, _ := s.prompt(fmt.Sprintf("Are you sure you want to delete %q? [y/N] ", p.Title))
		return IsYes(answer)
	})
	if err != nil {
		return err
	}

	msg := "Nothing deleted.\n"
	if removed {
		msg = fmt.Sprintf("Deleted post %d.\n", id)
	}
	if _, err := io.WriteString(s.out, msg); err != nil {
		return s.write(err)
	}
	return s.write(RenderList(s.out, s.list.Page()))
}

func (s *Session) create() error {
	var d blog.Draft
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Title: ", &d.Title},
		{"Category: ", &d.Category},
		{"Excerpt: ", &d.Excerpt},
		{"Content (optional): ", &d.Content},
		{"Date (YYYY-MM-DD, blank for today): ", &d.Date},
		{"Read time (e.g. 5 min read): ", &d.ReadTime},
	}
	for _, f := range fields {
		v, ok := s.prompt(f.prompt)
		if !ok {
			return errors.New("input ended before the post was complete")
		}
		*f.dst = v
	}

	p, err := s.list.Create(d)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.out, "Created post %d at %s.\n", p.ID, DetailPath(p.ID)); err != nil {
		return s.write(err)
	}
	return s.write(RenderList(s.out, s.list.Page()))
}

// prompt writes text and reads one line. ok is false at end of input.
func (s *Session) prompt(text string) (string, bool) {
	if _, err := io.WriteString(s.out, text); err != nil {
		return "", false
	}
	if !s.in.Scan() {
		return "", false
	}
	return s.in.Text(), true
}

func parseID(arg string) (int64, error) {
	if arg == "" {
		return 0, errors.New("missing post id")
	}
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid post id %q", arg)
	}
	return id, nil
}

// IsYes reports whether answer confirms a prompt.
func IsYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
