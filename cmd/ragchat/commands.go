package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/CoderFake/ragchat"
	"github.com/CoderFake/ragchat/goldmark"
	"github.com/CoderFake/ragchat/markdown"
	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/term"
)

// EnvPassword supplies the password for the login command.
const EnvPassword = "RAGCHAT_PASSWORD"

var errUsage = errors.New("usage")

// command runs one of the one-shot commands.
func (a *app) command(ctx context.Context, name string, args []string) error {
	ctx, cancel := a.context(ctx)
	defer cancel()

	switch name {
	case "ask":
		if len(args) == 0 {
			return fmt.Errorf("%w: ragchat ask <question>", errUsage)
		}
		return a.ask(ctx, strings.Join(args, " "))
	case "upload":
		return a.upload(ctx, args)
	case "reindex":
		if err := a.client.Reindex(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.stdout, "Reindex complete.")
		return nil
	case "login":
		if len(args) != 1 {
			return fmt.Errorf("%w: ragchat login <username>", errUsage)
		}
		return a.login(ctx, args[0])
	case "logout":
		if err := a.client.Logout(ctx); err != nil {
			return fmt.Errorf("logout: %w", err)
		}
		fmt.Fprintln(a.stdout, "Signed out.")
		return nil
	}
	return fmt.Errorf("%w: unknown command %q", errUsage, name)
}

func (a *app) context(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := a.timeout
	if timeout <= 0 {
		timeout = requestTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// ask sends one question in the current chat session and prints the answer.
func (a *app) ask(ctx context.Context, question string) error {
	st := a.store.Get()
	sessionID := st.CurrentSessionID()
	if sessionID == "" {
		sessionID = ragchat.NewSessionID()
		if err := a.store.Set(st.WithSessionID(sessionID)); err != nil {
			a.logger.Error("store session id", "error", err)
		}
	}

	resp, err := a.client.Send(ctx, ragchat.ChatRequest{
		Query:     question,
		SessionID: sessionID,
		Language:  st.Language,
	})
	if err != nil {
		return fmt.Errorf("ask: %w", err)
	}

	width, tty := terminalWidth(a.stdout)
	writeAnswer(a.stdout, resp, width, tty, ragchat.ThemeFor(st.Theme))
	return nil
}

// terminalWidth reports whether w is a terminal and, if so, its width.
func terminalWidth(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, false
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		width = 80
	}
	return width, true
}

// writeAnswer prints resp. On a terminal the answer is rendered with the
// renderer ChooseRenderer picks and the sources are listed; otherwise the
// raw markdown is written so the output can be piped.
func writeAnswer(w io.Writer, resp ragchat.ChatResponse, width int, tty bool, theme ragchat.Theme) {
	if !tty {
		fmt.Fprintln(w, resp.Response)
		return
	}
	switch ragchat.ChooseRenderer(resp.Response) {
	case ragchat.RenderFull:
		fmt.Fprintln(w, strings.TrimRight(goldmark.Render(resp.Response, width, theme), "\n"))
	default:
		fmt.Fprintln(w, markdown.Render(ragchat.Segment(resp.Response), width, theme))
	}
	if len(resp.Sources) == 0 {
		return
	}
	fmt.Fprintf(w, "\nSources (%d)\n", len(resp.Sources))
	for _, s := range resp.Sources {
		title := s.Title
		if title == "" {
			title = s.ID
		}
		line := "  " + title
		if s.Category != "" {
			line += " · " + s.Category
		}
		if s.RelevanceScore != nil {
			line += fmt.Sprintf(" · %.0f%% match", *s.RelevanceScore*100)
		}
		fmt.Fprintln(w, line)
	}
}

// upload expands glob patterns and uploads every matching file. Failures
// are reported per file; the returned error joins them.
func (a *app) upload(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("upload", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	category := fs.String("category", "", "Category for the uploaded documents")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: ragchat upload [-category c] <glob>...: %w", errUsage, err)
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("%w: ragchat upload [-category c] <glob>...", errUsage)
	}

	paths, err := expandPatterns(fs.Args())
	if err != nil {
		return err
	}

	var errs []error
	for _, path := range paths {
		u := ragchat.DocumentUpload{Path: path, Category: *category}.Normalize()
		if err := u.Validate(); err != nil {
			fmt.Fprintf(a.stdout, "skipped %s: %v\n", path, err)
			continue
		}
		res, err := a.client.Upload(ctx, u)
		if err != nil {
			a.logger.Error("upload", "path", path, "error", err)
			errs = append(errs, fmt.Errorf("upload %s: %w", path, err))
			continue
		}
		fmt.Fprintf(a.stdout, "uploaded %s (%d chunks)\n", path, res.Chunks)
	}
	return errors.Join(errs...)
}

// expandPatterns resolves doublestar patterns such as docs/**/*.pdf into
// a sorted, de-duplicated list of regular files.
func expandPatterns(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("pattern %q matches no files: %w", pattern, ragchat.ErrNotFound)
		}
		for _, m := range matches {
			m = filepath.Clean(m)
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}
	return paths, nil
}

// login signs in as username.
func (a *app) login(ctx context.Context, username string) error {
	password, err := readPassword(a.getenv, a.stdin)
	if err != nil {
		return err
	}
	res, err := a.client.Login(ctx, ragchat.Credentials{Username: username, Password: password})
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	fmt.Fprintf(a.stdout, "Signed in as %s.\n", res.User.DisplayName())
	return nil
}

// readPassword takes the password from RAGCHAT_PASSWORD or the first line
// of r.
func readPassword(getenv func(string) string, r io.Reader) (string, error) {
	if p := getenv(EnvPassword); p != "" {
		return p, nil
	}
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", fmt.Errorf("password is required (set %s or pipe it on stdin): %w", EnvPassword, ragchat.ErrValidation)
	}
	return line, nil
}
