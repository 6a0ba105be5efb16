package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/wellness/internal/constants"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int           { return m.pid }
func (m *mockProcess) PPid() int          { return 0 }
func (m *mockProcess) Executable() string { return m.executable }

func stubConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old := userConfigDirFunc
	userConfigDirFunc = func() (string, error) { return dir, nil }
	t.Cleanup(func() { userConfigDirFunc = old })
	return dir
}

func stubProcess(t *testing.T, executable string) {
	t.Helper()
	old := findProcessFunc
	findProcessFunc = func(pid int) (ps.Process, error) {
		if executable == "" {
			return nil, nil
		}
		return &mockProcess{pid: pid, executable: executable}, nil
	}
	t.Cleanup(func() { findProcessFunc = old })
}

func writeLockfile(t *testing.T, dir, content string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0700); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, constants.NotifierLockfileName)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func serverPort(t *testing.T, server *httptest.Server) int {
	t.Helper()
	u, err := url.Parse(server.URL)
	if err != nil {
		t.Fatal(err)
	}
	port, err := strconv.Atoi(u.Port())
	if err != nil {
		t.Fatal(err)
	}
	return port
}

func TestGetTrayAppConfigDir(t *testing.T) {
	base := stubConfigDir(t)

	want := filepath.Join(base, constants.TrayAppIdentifier)
	dir, err := GetTrayAppConfigDir()
	if err != nil || dir != want {
		t.Errorf("GetTrayAppConfigDir() = %q, %v; want %q", dir, err, want)
	}

	customDir := "/custom/wellness/dir"
	if err := os.MkdirAll(want, 0700); err != nil {
		t.Fatal(err)
	}
	settings := fmt.Sprintf(`{"settings": {"lockfile_dir": %q}}`, customDir)
	if err := os.WriteFile(filepath.Join(want, "settings.json"), []byte(settings), 0600); err != nil {
		t.Fatal(err)
	}

	dir, err = GetTrayAppConfigDir()
	if err != nil || dir != customDir {
		t.Errorf("GetTrayAppConfigDir() = %q, %v; want %q", dir, err, customDir)
	}
}

func TestFindAndValidateTrayProcess(t *testing.T) {
	dir := t.TempDir()
	lockfile := filepath.Join(dir, constants.NotifierLockfileName)

	if _, err := findAndValidateTrayProcess(lockfile); !errors.Is(err, ErrTrayNotRunning) {
		t.Errorf("missing lockfile error = %v, want ErrTrayNotRunning", err)
	}

	stubProcess(t, "wellness-tray")
	invalid := []struct {
		name    string
		content string
	}{
		{"two parts", "8080|12345"},
		{"garbage", "invalid"},
		{"empty secret", "8080|12345|"},
		{"empty port", "|12345|secret"},
		{"port out of range", "99999|12345|secret"},
		{"bad pid", "8080|abc|secret"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			writeLockfile(t, dir, tt.content)
			if _, err := findAndValidateTrayProcess(lockfile); err == nil {
				t.Errorf("expected error for %q", tt.content)
			}
		})
	}

	writeLockfile(t, dir, "8080|12345|testsecret123\n")
	ep, err := findAndValidateTrayProcess(lockfile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ep.port != 8080 || ep.secret != "testsecret123" {
		t.Errorf("endpoint = %+v", ep)
	}
}

func TestFindAndValidateTrayProcessWrongExecutable(t *testing.T) {
	lockfile := writeLockfile(t, t.TempDir(), "8080|12345|secret")

	stubProcess(t, "")
	if _, err := findAndValidateTrayProcess(lockfile); !errors.Is(err, ErrTrayNotRunning) {
		t.Errorf("dead process error = %v, want ErrTrayNotRunning", err)
	}

	stubProcess(t, "other-app")
	if _, err := findAndValidateTrayProcess(lockfile); err == nil || !strings.Contains(err.Error(), "other-app") {
		t.Errorf("wrong executable error = %v", err)
	}
}

func TestTrayNotify(t *testing.T) {
	var got WebhookPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(constants.NotifierSecretHeader) != "test-secret" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Unauthorized"))
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	base := stubConfigDir(t)
	stubProcess(t, "wellness-tray")
	trayDir := filepath.Join(base, constants.TrayAppIdentifier)
	writeLockfile(t, trayDir, fmt.Sprintf("%d|4242|test-secret", serverPort(t, server)))

	if err := NewTray().Notify(context.Background(), "Time to drink some water!"); err != nil {
		t.Fatalf("Notify failed: %v", err)
	}
	if got.Text != "Time to drink some water!" || got.DurationMs != constants.NotificationDurationMs {
		t.Errorf("payload = %+v", got)
	}

	writeLockfile(t, trayDir, fmt.Sprintf("%d|4242|wrong-secret", serverPort(t, server)))
	err := NewTray().Notify(context.Background(), "hello")
	if err == nil || !strings.Contains(err.Error(), "401") {
		t.Errorf("wrong secret error = %v, want status 401", err)
	}
}

func TestTrayRetriesTransportErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < int32(constants.NotifyMaxRetries) {
			hj, ok := w.(http.Hijacker)
			if !ok {
				t.Error("server does not support hijacking")
				return
			}
			conn, _, _ := hj.Hijack()
			conn.Close()
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	base := stubConfigDir(t)
	stubProcess(t, "wellness-tray")
	writeLockfile(t, filepath.Join(base, constants.TrayAppIdentifier), fmt.Sprintf("%d|1|s", serverPort(t, server)))

	tray := NewTray()
	tray.retryDelay = time.Millisecond
	if err := tray.Notify(context.Background(), "hi"); err != nil {
		t.Fatalf("Notify should succeed on the last attempt: %v", err)
	}
	if n := calls.Load(); n != int32(constants.NotifyMaxRetries) {
		t.Errorf("server saw %d calls, want %d", n, constants.NotifyMaxRetries)
	}
}

func TestConsoleNotify(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)
	c.now = func() time.Time { return time.Date(2025, 6, 15, 14, 5, 0, 0, time.UTC) }

	if err := c.Notify(context.Background(), "drink up"); err != nil {
		t.Fatal(err)
	}
	if want := "\a[14:05] 💧 drink up\n"; buf.String() != want {
		t.Errorf("console output = %q, want %q", buf.String(), want)
	}
}

type notifierFunc func(ctx context.Context, text string) error

func (f notifierFunc) Notify(ctx context.Context, text string) error { return f(ctx, text) }

func TestFallback(t *testing.T) {
	failing := notifierFunc(func(context.Context, string) error { return ErrTrayNotRunning })
	var delivered string
	working := notifierFunc(func(_ context.Context, text string) error {
		delivered = text
		return nil
	})

	if err := (Fallback{failing, working}).Notify(context.Background(), "water"); err != nil {
		t.Fatalf("Fallback.Notify failed: %v", err)
	}
	if delivered != "water" {
		t.Errorf("second notifier got %q", delivered)
	}

	err := (Fallback{failing, failing}).Notify(context.Background(), "water")
	if !errors.Is(err, ErrTrayNotRunning) {
		t.Errorf("all-failed error = %v, want ErrTrayNotRunning", err)
	}
	if err := (Fallback{}).Notify(context.Background(), "water"); err == nil {
		t.Error("empty fallback should fail")
	}
}
