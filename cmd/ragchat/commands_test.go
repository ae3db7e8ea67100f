package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/CoderFake/ragchat"
	jsonstore "github.com/CoderFake/ragchat/json"
	"github.com/CoderFake/ragchat/rest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newApp returns an app talking to handler, with stdout captured.
func newApp(t *testing.T, handler http.HandlerFunc, vars map[string]string, stdin string) (*app, *bytes.Buffer) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := jsonstore.NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, store.Init())
	st := store.Get()
	st.AccessToken = "access"
	st.Language = ragchat.LanguageEnglish
	st.User = &ragchat.User{ID: 1, Username: "root", Role: ragchat.UserRoleAdmin}
	require.NoError(t, store.Set(st))

	var out bytes.Buffer
	logger := slog.New(slog.DiscardHandler)
	return &app{
		client: rest.New(srv.URL+"/api", rest.WithStateStore(store), rest.WithLogger(logger)),
		store:  store,
		logger: logger,
		stdout: &out,
		stdin:  strings.NewReader(stdin),
		getenv: env(vars),
	}, &out
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	assert.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestCommand_Ask(t *testing.T) {
	t.Parallel()

	var got map[string]string
	a, out := newApp(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.Equal(t, "Bearer access", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(t, w, map[string]any{"response": "**RAG** combines retrieval and generation.", "response_id": 5})
	}, nil, "")

	require.NoError(t, a.command(context.Background(), "ask", []string{"what", "is", "RAG?"}))
	assert.Equal(t, "what is RAG?", got["query"])
	assert.Equal(t, "en", got["language"])
	assert.Equal(t, a.store.Get().CurrentSessionID(), got["session_id"])
	assert.True(t, strings.HasPrefix(got["session_id"], "session_"))
	// Not a terminal: the raw markdown is printed.
	assert.Equal(t, "**RAG** combines retrieval and generation.\n", out.String())
}

func TestCommand_AskReusesSession(t *testing.T) {
	t.Parallel()

	var ids []string
	var mu sync.Mutex
	a, _ := newApp(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		mu.Lock()
		ids = append(ids, body["session_id"])
		mu.Unlock()
		writeJSON(t, w, map[string]any{"response": "ok"})
	}, nil, "")

	require.NoError(t, a.command(context.Background(), "ask", []string{"one"}))
	require.NoError(t, a.command(context.Background(), "ask", []string{"two"}))
	require.Len(t, ids, 2)
	assert.Equal(t, ids[0], ids[1])
}

func TestCommand_Usage(t *testing.T) {
	t.Parallel()

	a, _ := newApp(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s", r.URL.Path)
	}, nil, "")

	for _, args := range [][]string{{"ask"}, {"login"}, {"upload"}, {"frobnicate"}} {
		err := a.command(context.Background(), args[0], args[1:])
		assert.ErrorIs(t, err, errUsage, args[0])
	}
}

func TestCommand_Login(t *testing.T) {
	t.Parallel()

	login := func(t *testing.T, password *string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			var body map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			*password = body["password"]
			writeJSON(t, w, map[string]any{
				"user":         map[string]any{"id": 3, "username": body["username"], "name": "Carol"},
				"access_token": "new-access",
			})
		}
	}

	t.Run("password from the environment", func(t *testing.T) {
		t.Parallel()
		var password string
		a, out := newApp(t, login(t, &password), map[string]string{EnvPassword: "from-env"}, "from-stdin\n")
		require.NoError(t, a.command(context.Background(), "login", []string{"carol"}))
		assert.Equal(t, "from-env", password)
		assert.Equal(t, "Signed in as Carol.\n", out.String())
		assert.Equal(t, "new-access", a.store.Get().AccessToken)
	})

	t.Run("password from stdin", func(t *testing.T) {
		t.Parallel()
		var password string
		a, _ := newApp(t, login(t, &password), nil, "from-stdin\r\n")
		require.NoError(t, a.command(context.Background(), "login", []string{"carol"}))
		assert.Equal(t, "from-stdin", password)
	})
}

func TestCommand_Logout(t *testing.T) {
	t.Parallel()

	a, out := newApp(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s", r.URL.Path)
	}, nil, "")
	require.NoError(t, a.command(context.Background(), "logout", nil))
	assert.False(t, a.store.Get().Authenticated())
	assert.Equal(t, ragchat.LanguageEnglish, a.store.Get().Language)
	assert.Equal(t, "Signed out.\n", out.String())
}

func TestCommand_Reindex(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		a, out := newApp(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/admin/reindex", r.URL.Path)
			writeJSON(t, w, map[string]any{"success": true})
		}, nil, "")
		require.NoError(t, a.command(context.Background(), "reindex", nil))
		assert.Equal(t, "Reindex complete.\n", out.String())
	})

	t.Run("forbidden", func(t *testing.T) {
		t.Parallel()
		a, _ := newApp(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"detail":"Admin access required"}`))
		}, nil, "")
		err := a.command(context.Background(), "reindex", nil)
		assert.ErrorIs(t, err, ragchat.ErrForbidden)
	})
}

func TestCommand_Upload(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"a/guide.pdf", "a/b/notes.md", "a/b/image.png", "c/faq.txt"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
		require.NoError(t, os.WriteFile(path, []byte("content of "+name), 0o600))
	}

	var mu sync.Mutex
	var uploaded []string
	var categories []string
	a, out := newApp(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/upload", r.URL.Path)
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		_, header, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		mu.Lock()
		uploaded = append(uploaded, header.Filename)
		categories = append(categories, r.FormValue("category"))
		mu.Unlock()
		writeJSON(t, w, map[string]any{"status": "success", "num_chunks": 2, "filename": header.Filename})
	}, nil, "")

	err := a.command(context.Background(), "upload", []string{
		"-category", "manuals",
		filepath.Join(dir, "a", "**", "*"),
		filepath.Join(dir, "a", "guide.pdf"),
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"guide.pdf", "notes.md"}, uploaded)
	assert.Equal(t, []string{"manuals", "manuals"}, categories)
	assert.Contains(t, out.String(), "skipped "+filepath.Join(dir, "a", "b", "image.png"))
	assert.Contains(t, out.String(), "(2 chunks)")
}

func TestExpandPatterns(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"x/one.pdf", "x/y/two.pdf", "x/y/three.docx"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
		require.NoError(t, os.WriteFile(path, nil, 0o600))
	}

	t.Run("double star matches nested files", func(t *testing.T) {
		t.Parallel()
		paths, err := expandPatterns([]string{filepath.Join(dir, "**", "*.pdf")})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{
			filepath.Join(dir, "x", "one.pdf"),
			filepath.Join(dir, "x", "y", "two.pdf"),
		}, paths)
	})

	t.Run("duplicates are dropped", func(t *testing.T) {
		t.Parallel()
		paths, err := expandPatterns([]string{
			filepath.Join(dir, "x", "one.pdf"),
			filepath.Join(dir, "x", "*.pdf"),
		})
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(dir, "x", "one.pdf")}, paths)
	})

	t.Run("directories are not matched", func(t *testing.T) {
		t.Parallel()
		paths, err := expandPatterns([]string{filepath.Join(dir, "x", "*")})
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(dir, "x", "one.pdf")}, paths)
	})

	t.Run("pattern without matches", func(t *testing.T) {
		t.Parallel()
		_, err := expandPatterns([]string{filepath.Join(dir, "*.xlsx")})
		assert.ErrorIs(t, err, ragchat.ErrNotFound)
	})
}

func TestReadPassword(t *testing.T) {
	t.Parallel()

	p, err := readPassword(env(map[string]string{EnvPassword: "env-secret"}), strings.NewReader("ignored\n"))
	require.NoError(t, err)
	assert.Equal(t, "env-secret", p)

	p, err = readPassword(env(nil), strings.NewReader("stdin-secret"))
	require.NoError(t, err)
	assert.Equal(t, "stdin-secret", p)

	_, err = readPassword(env(nil), strings.NewReader(""))
	assert.ErrorIs(t, err, ragchat.ErrValidation)
}

func TestWriteAnswer(t *testing.T) {
	t.Parallel()

	theme := ragchat.ThemeFor(ragchat.ThemeLight)
	score := 0.66

	t.Run("raw when piped", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		writeAnswer(&buf, ragchat.ChatResponse{Response: "# Title"}, 0, false, theme)
		assert.Equal(t, "# Title\n", buf.String())
	})

	t.Run("rendered on a terminal with sources", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		writeAnswer(&buf, ragchat.ChatResponse{
			Response: "# Title\n\nSome text",
			Sources:  []ragchat.DocumentSource{{ID: "1", Title: "Handbook", Category: "hr", RelevanceScore: &score}},
		}, 80, true, theme)
		out := buf.String()
		assert.NotContains(t, out, "# Title")
		assert.Contains(t, out, "Title")
		assert.Contains(t, out, "Some text")
		assert.Contains(t, out, "Sources (1)")
		assert.Contains(t, out, "  Handbook · hr · 66% match")
	})

	t.Run("structured answers use the full renderer", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		writeAnswer(&buf, ragchat.ChatResponse{Response: "| a | b |\n|---|---|\n| 1 | 2 |"}, 80, true, theme)
		assert.NotContains(t, buf.String(), "|---|")
		assert.Contains(t, buf.String(), "1")
	})
}

func TestTerminalWidth(t *testing.T) {
	t.Parallel()

	_, tty := terminalWidth(&bytes.Buffer{})
	assert.False(t, tty)
}
