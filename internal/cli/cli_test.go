package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"momentum-cli/internal/model"
	"momentum-cli/internal/session"
)

// fakeBackend is an in-memory stand-in for the Momentum server, speaking its
// {status, data, message} envelope.
type fakeBackend struct {
	mu       sync.Mutex
	nextID   int
	lists    []*model.Collection
	goals    []*model.Goal
	journals []*model.Journal
}

func (b *fakeBackend) id(prefix string) string {
	b.nextID++
	return fmt.Sprintf("%s-%d", prefix, b.nextID)
}

func writeEnvelope(w http.ResponseWriter, data any) {
	_ = json.NewEncoder(w).Encode(map[string]any{"status": "success", "data": data})
}

func writeFail(w http.ResponseWriter, code int, msg string) {
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{"status": "fail", "message": msg})
}

func (b *fakeBackend) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, "test-token")
	})
	mux.HandleFunc("/api/auth/signup", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, nil)
	})

	mux.HandleFunc("/api/tasklist/", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		rest := strings.TrimPrefix(r.URL.Path, "/api/tasklist/")
		switch {
		case r.Method == "GET" && rest == "":
			out := []map[string]any{}
			for _, l := range b.lists {
				tasks := []map[string]any{}
				for _, it := range l.Items {
					tasks = append(tasks, map[string]any{"ID": it.ID, "text": it.Text, "completed": it.Completed})
				}
				out = append(out, map[string]any{"ID": l.ID, "name": l.Title, "tasks": tasks})
			}
			writeEnvelope(w, out)
		case r.Method == "POST" && rest == "":
			var in struct {
				Name string `json:"name"`
			}
			_ = json.NewDecoder(r.Body).Decode(&in)
			l := &model.Collection{ID: b.id("list"), Title: in.Name}
			b.lists = append(b.lists, l)
			writeEnvelope(w, map[string]any{"ID": l.ID})
		case r.Method == "DELETE":
			for i, l := range b.lists {
				if l.ID == rest {
					b.lists = append(b.lists[:i], b.lists[i+1:]...)
					break
				}
			}
			writeEnvelope(w, nil)
		default:
			writeFail(w, http.StatusMethodNotAllowed, "bad route")
		}
	})

	mux.HandleFunc("/api/task/", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		rest := strings.TrimPrefix(r.URL.Path, "/api/task/")
		switch {
		case r.Method == "POST":
			var in struct {
				Text string `json:"text"`
			}
			_ = json.NewDecoder(r.Body).Decode(&in)
			for _, l := range b.lists {
				if l.ID == rest {
					it := model.Item{ID: b.id("task"), Text: in.Text}
					l.Items = append(l.Items, it)
					writeEnvelope(w, map[string]any{"ID": it.ID})
					return
				}
			}
			writeFail(w, http.StatusNotFound, "no such list")
		case r.Method == "PATCH" && strings.HasSuffix(rest, "/toggle"):
			id := strings.TrimSuffix(rest, "/toggle")
			var in struct {
				Completed bool `json:"completed"`
			}
			_ = json.NewDecoder(r.Body).Decode(&in)
			for _, l := range b.lists {
				for i := range l.Items {
					if l.Items[i].ID == id {
						l.Items[i].Completed = in.Completed
					}
				}
			}
			writeEnvelope(w, nil)
		case r.Method == "PATCH":
			var in struct {
				Text string `json:"text"`
			}
			_ = json.NewDecoder(r.Body).Decode(&in)
			for _, l := range b.lists {
				for i := range l.Items {
					if l.Items[i].ID == rest {
						l.Items[i].Text = in.Text
					}
				}
			}
			writeEnvelope(w, nil)
		case r.Method == "DELETE":
			for _, l := range b.lists {
				for i := range l.Items {
					if l.Items[i].ID == rest {
						l.Items = append(l.Items[:i], l.Items[i+1:]...)
						break
					}
				}
			}
			writeEnvelope(w, nil)
		default:
			writeFail(w, http.StatusMethodNotAllowed, "bad route")
		}
	})

	mux.HandleFunc("/api/goal/", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		rest := strings.TrimPrefix(r.URL.Path, "/api/goal/")
		switch {
		case r.Method == "GET" && rest == "":
			out := []model.Goal{}
			for _, g := range b.goals {
				out = append(out, *g)
			}
			writeEnvelope(w, out)
		case r.Method == "POST" && rest == "":
			var g model.Goal
			_ = json.NewDecoder(r.Body).Decode(&g)
			g.ID = b.id("goal")
			b.goals = append(b.goals, &g)
			writeEnvelope(w, map[string]any{"ID": g.ID})
		case r.Method == "PATCH" && strings.HasSuffix(rest, "/toggle"):
			parts := strings.Split(strings.TrimSuffix(rest, "/toggle"), "/")
			var in struct {
				Completed bool `json:"completed"`
			}
			_ = json.NewDecoder(r.Body).Decode(&in)
			for _, g := range b.goals {
				if g.ID != parts[0] {
					continue
				}
				if len(parts) == 1 {
					g.Completed = in.Completed
					break
				}
				for i := range g.Subgoals {
					if g.Subgoals[i].ID == parts[1] {
						g.Subgoals[i].Completed = in.Completed
					}
				}
			}
			writeEnvelope(w, nil)
		case r.Method == "PUT":
			var in model.Goal
			_ = json.NewDecoder(r.Body).Decode(&in)
			for _, g := range b.goals {
				if g.ID == rest {
					in.ID = g.ID
					*g = in
				}
			}
			writeEnvelope(w, nil)
		case r.Method == "DELETE":
			for i, g := range b.goals {
				if g.ID == rest {
					b.goals = append(b.goals[:i], b.goals[i+1:]...)
					break
				}
			}
			writeEnvelope(w, nil)
		default:
			writeFail(w, http.StatusMethodNotAllowed, "bad route")
		}
	})

	mux.HandleFunc("/api/journal/", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		rest := strings.TrimPrefix(r.URL.Path, "/api/journal/")
		setTrashed := func(id string, trashed bool) {
			for _, j := range b.journals {
				if j.ID == id {
					j.Trashed = trashed
				}
			}
		}
		switch {
		case r.Method == "GET" && rest == "":
			out := []model.Journal{}
			for _, j := range b.journals {
				out = append(out, *j)
			}
			writeEnvelope(w, out)
		case r.Method == "POST" && rest == "":
			var in struct {
				Title   string `json:"title"`
				Content string `json:"content"`
			}
			_ = json.NewDecoder(r.Body).Decode(&in)
			j := &model.Journal{ID: b.id("journal"), Title: in.Title, Content: in.Content, CreatedAt: time.Now()}
			b.journals = append(b.journals, j)
			writeEnvelope(w, map[string]any{"ID": j.ID})
		case r.Method == "PATCH" && strings.HasSuffix(rest, "/trash"):
			setTrashed(strings.TrimSuffix(rest, "/trash"), true)
			writeEnvelope(w, nil)
		case r.Method == "PATCH" && strings.HasSuffix(rest, "/restore"):
			setTrashed(strings.TrimSuffix(rest, "/restore"), false)
			writeEnvelope(w, nil)
		case r.Method == "PATCH":
			var in struct {
				Title   string `json:"title"`
				Content string `json:"content"`
			}
			_ = json.NewDecoder(r.Body).Decode(&in)
			for _, j := range b.journals {
				if j.ID == rest {
					j.Title, j.Content = in.Title, in.Content
				}
			}
			writeEnvelope(w, nil)
		case r.Method == "DELETE":
			for i, j := range b.journals {
				if j.ID == rest {
					b.journals = append(b.journals[:i], b.journals[i+1:]...)
					break
				}
			}
			writeEnvelope(w, nil)
		default:
			writeFail(w, http.StatusMethodNotAllowed, "bad route")
		}
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// runCLI executes the root command in-process and returns stdout.
func runCLI(t *testing.T, baseURL string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--base-url", baseURL}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func mustRun(t *testing.T, baseURL string, args ...string) map[string]any {
	t.Helper()
	stdout, stderr, err := runCLI(t, baseURL, args...)
	if err != nil {
		t.Fatalf("command failed: momentum %v\nerr: %v\nstderr:\n%s\nstdout:\n%s", args, err, stderr, stdout)
	}
	var env map[string]any
	if err := json.Unmarshal([]byte(stdout), &env); err != nil {
		t.Fatalf("unmarshal stdout as json envelope: %v\nstdout:\n%s\nargs: %v", err, stdout, args)
	}
	if _, ok := env["data"]; !ok {
		t.Fatalf("expected JSON envelope to contain data key; got: %v\nstdout:\n%s", env, stdout)
	}
	return env
}

func dataID(t *testing.T, env map[string]any) string {
	t.Helper()
	id, _ := env["data"].(map[string]any)["id"].(string)
	if id == "" {
		t.Fatalf("expected data to carry an id; got: %#v", env["data"])
	}
	return id
}

func TestCLITaskLifecycle(t *testing.T) {
	t.Setenv("MOMENTUM_CONFIG_DIR", t.TempDir())
	srv := (&fakeBackend{}).server(t)

	mustRun(t, srv.URL, "login", "--email", "a@b.c", "--password", "pw")

	list := mustRun(t, srv.URL, "lists", "create", "--name", "Groceries")
	listID := dataID(t, list)

	task := mustRun(t, srv.URL, "tasks", "add", listID, "--text", "Milk")
	taskID := dataID(t, task)
	if text := task["data"].(map[string]any)["text"]; text != "Milk" {
		t.Fatalf("task text: %v", text)
	}

	toggled := mustRun(t, srv.URL, "tasks", "toggle", taskID)
	if done := toggled["data"].(map[string]any)["completed"]; done != true {
		t.Fatalf("toggle: %v", toggled["data"])
	}

	edited := mustRun(t, srv.URL, "tasks", "edit", taskID, "--text", "Oat milk")
	if text := edited["data"].(map[string]any)["text"]; text != "Oat milk" {
		t.Fatalf("edit: %v", edited["data"])
	}

	// Editing to empty text deletes the task.
	gone := mustRun(t, srv.URL, "tasks", "edit", taskID, "--text", "  ")
	if deleted := gone["data"].(map[string]any)["deleted"]; deleted != true {
		t.Fatalf("empty edit should delete: %v", gone["data"])
	}

	mustRun(t, srv.URL, "lists", "delete", listID)

	// Only the fixed habits list remains.
	show := mustRun(t, srv.URL, "lists")
	cols, _ := show["data"].([]any)
	if len(cols) != 1 {
		t.Fatalf("lists after delete: %#v", show["data"])
	}
	first, _ := cols[0].(map[string]any)
	if first["id"] != model.DefaultHabitsID || first["locked"] != true {
		t.Fatalf("habits list: %#v", first)
	}
}

func TestCLIRequiresSession(t *testing.T) {
	t.Setenv("MOMENTUM_CONFIG_DIR", t.TempDir())
	srv := (&fakeBackend{}).server(t)

	_, _, err := runCLI(t, srv.URL, "lists")
	if err == nil || !strings.Contains(err.Error(), "not logged in") {
		t.Fatalf("expected a not-logged-in error, got: %v", err)
	}
}

func TestCLIGoalLifecycle(t *testing.T) {
	t.Setenv("MOMENTUM_CONFIG_DIR", t.TempDir())
	srv := (&fakeBackend{}).server(t)
	if err := session.Save("test-token"); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	created := mustRun(t, srv.URL, "goals", "create",
		"--name", "Run a marathon",
		"--deadline", "2027-06-01",
		"--subgoal", "Run 5k",
		"--subgoal", "Run a half marathon",
		"--habit", "Run three times a week")
	goalID := dataID(t, created)

	shown := mustRun(t, srv.URL, "goals", "show", goalID)
	goal, _ := shown["data"].(map[string]any)
	subgoals, _ := goal["subgoals"].([]any)
	if len(subgoals) != 2 {
		t.Fatalf("subgoals: %#v", goal)
	}
	subID, _ := subgoals[0].(map[string]any)["id"].(string)

	mustRun(t, srv.URL, "goals", "toggle", goalID, subID)
	shown = mustRun(t, srv.URL, "goals", "show", goalID)
	goal, _ = shown["data"].(map[string]any)
	if goal["completed"] == true {
		t.Fatalf("subgoal toggle must not complete the goal")
	}

	edited := mustRun(t, srv.URL, "goals", "edit", goalID, "--deadline", "2027-09-01")
	if got := edited["data"].(map[string]any)["deadline"]; got != "2027-09-01" {
		t.Fatalf("deadline after edit: %v", got)
	}
	if got := edited["data"].(map[string]any)["name"]; got != "Run a marathon" {
		t.Fatalf("unset flags must keep their value; name: %v", got)
	}

	// Missing deadline is rejected before any request.
	if _, _, err := runCLI(t, srv.URL, "goals", "create", "--name", "No deadline", "--deadline", " "); err == nil {
		t.Fatalf("expected a validation error")
	}

	mustRun(t, srv.URL, "goals", "delete", goalID)
	if _, _, err := runCLI(t, srv.URL, "goals", "show", goalID); err == nil {
		t.Fatalf("expected not-found after delete")
	}
}

func TestCLIJournalTrashFlow(t *testing.T) {
	t.Setenv("MOMENTUM_CONFIG_DIR", t.TempDir())
	srv := (&fakeBackend{}).server(t)
	if err := session.Save("test-token"); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	created := mustRun(t, srv.URL, "journal", "add", "--title", "Day one", "--content", "# Started")
	id := dataID(t, created)

	// Purging an active entry is refused.
	if _, _, err := runCLI(t, srv.URL, "journal", "delete", id); err == nil {
		t.Fatalf("expected purge of an active entry to fail")
	}

	mustRun(t, srv.URL, "journal", "trash", id)
	active := mustRun(t, srv.URL, "journal", "list")
	if xs, _ := active["data"].([]any); len(xs) != 0 {
		t.Fatalf("trashed entry still listed as active: %#v", active["data"])
	}
	trash := mustRun(t, srv.URL, "journal", "list", "--trashed")
	if xs, _ := trash["data"].([]any); len(xs) != 1 {
		t.Fatalf("trash listing: %#v", trash["data"])
	}

	mustRun(t, srv.URL, "journal", "restore", id)
	mustRun(t, srv.URL, "journal", "trash", id)
	mustRun(t, srv.URL, "journal", "delete", id)
	trash = mustRun(t, srv.URL, "journal", "list", "--trashed")
	if xs, _ := trash["data"].([]any); len(xs) != 0 {
		t.Fatalf("purge left the entry behind: %#v", trash["data"])
	}
}

func TestCLIJournalUntitledDefault(t *testing.T) {
	t.Setenv("MOMENTUM_CONFIG_DIR", t.TempDir())
	srv := (&fakeBackend{}).server(t)
	if err := session.Save("test-token"); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	created := mustRun(t, srv.URL, "journal", "add", "--content", "no title given")
	if got := created["data"].(map[string]any)["title"]; got != "Untitled Journal" {
		t.Fatalf("default title: %v", got)
	}
	id := dataID(t, created)

	// Blanking the title on edit falls back to the default too.
	edited := mustRun(t, srv.URL, "journal", "edit", id, "--title", "   ")
	if got := edited["data"].(map[string]any)["title"]; got != "Untitled Journal" {
		t.Fatalf("title after blank edit: %v", got)
	}
}

func TestCLIReflectAndProfileAreLocal(t *testing.T) {
	t.Setenv("MOMENTUM_CONFIG_DIR", t.TempDir())
	srv := (&fakeBackend{}).server(t)

	// No session needed: reflection and profile never touch the backend.
	set := mustRun(t, srv.URL, "reflect", "set", "--date", "2026-08-30", "--satisfaction", "4", "--analysis", "Good day")
	if got := set["data"].(map[string]any)["satisfaction"]; got != float64(4) {
		t.Fatalf("satisfaction: %v", got)
	}

	// Amending keeps the untouched fields.
	set = mustRun(t, srv.URL, "reflect", "set", "--date", "2026-08-30", "--mood", "5")
	data := set["data"].(map[string]any)
	if data["satisfaction"] != float64(4) || data["mood"] != float64(5) || data["analysis"] != "Good day" {
		t.Fatalf("amend lost fields: %#v", data)
	}

	if _, _, err := runCLI(t, srv.URL, "reflect", "set", "--satisfaction", "6"); err == nil {
		t.Fatalf("ratings above 5 must be rejected")
	}

	// Zero clears a rating back to "not filled"; the other fields survive.
	set = mustRun(t, srv.URL, "reflect", "set", "--date", "2026-08-30", "--mood", "0")
	data = set["data"].(map[string]any)
	if data["mood"] != float64(0) || data["satisfaction"] != float64(4) {
		t.Fatalf("clear lost fields: %#v", data)
	}

	if _, _, err := runCLI(t, srv.URL, "reflect", "set", "--mood", "-1"); err == nil {
		t.Fatalf("negative ratings must be rejected")
	}

	prof := mustRun(t, srv.URL, "settings", "set", "--name", "Sam", "--occupation", "Engineer")
	if got := prof["data"].(map[string]any)["name"]; got != "Sam" {
		t.Fatalf("profile name: %v", got)
	}
	prof = mustRun(t, srv.URL, "settings", "show")
	if got := prof["data"].(map[string]any)["occupation"]; got != "Engineer" {
		t.Fatalf("profile occupation: %v", got)
	}
}
