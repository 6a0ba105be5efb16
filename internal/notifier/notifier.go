// Package notifier delivers hydration reminders, preferring the desktop tray
// app and falling back to the terminal.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/wellness/internal/constants"
	"github.com/julianstephens/wellness/internal/logger"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

// ErrTrayNotRunning is returned when no live tray app owns the lockfile
var ErrTrayNotRunning = errors.New("wellness-tray is not running")

// Notifier shows a short text message to the user
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

type WebhookPayload struct {
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

// Tray posts notifications to the tray app's local webhook
type Tray struct {
	client     *http.Client
	retryDelay time.Duration
}

func NewTray() *Tray {
	return &Tray{
		client:     &http.Client{Timeout: 5 * time.Second},
		retryDelay: constants.NotifyRetryDelay,
	}
}

func (t *Tray) Notify(ctx context.Context, text string) error {
	dir, err := GetTrayAppConfigDir()
	if err != nil {
		return err
	}

	ep, err := findAndValidateTrayProcess(filepath.Join(dir, constants.NotifierLockfileName))
	if err != nil {
		return err
	}

	payload := WebhookPayload{Text: text, DurationMs: constants.NotificationDurationMs}

	var lastErr error
	for attempt := 1; attempt <= constants.NotifyMaxRetries; attempt++ {
		lastErr = t.send(ctx, ep, payload)
		if lastErr == nil {
			return nil
		}
		var rejected *rejectedError
		if errors.As(lastErr, &rejected) {
			return lastErr
		}
		logger.Debug("Tray notification attempt failed", "attempt", attempt, "error", lastErr)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(t.retryDelay):
		}
	}
	return fmt.Errorf("notification failed after %d attempts: %w", constants.NotifyMaxRetries, lastErr)
}

// GetTrayAppConfigDir returns the directory holding the tray app's lockfile.
// A lockfile_dir in the tray's settings.json overrides the default.
func GetTrayAppConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	trayConfigDir := filepath.Join(configDir, constants.TrayAppIdentifier)

	data, err := os.ReadFile(filepath.Join(trayConfigDir, "settings.json"))
	if err != nil {
		return trayConfigDir, nil
	}
	var store struct {
		Settings struct {
			LockfileDir *string `json:"lockfile_dir"`
		} `json:"settings"`
	}
	if err := json.Unmarshal(data, &store); err == nil {
		if d := store.Settings.LockfileDir; d != nil && *d != "" {
			return *d, nil
		}
	}
	return trayConfigDir, nil
}

type endpoint struct {
	port   int
	secret string
}

// findAndValidateTrayProcess parses "port|pid|secret" and checks the pid is the tray app
func findAndValidateTrayProcess(lockfilePath string) (endpoint, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return endpoint{}, ErrTrayNotRunning
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return endpoint{}, errors.New("lockfile is malformed")
	}

	port, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return endpoint{}, errors.New("invalid port number in lockfile")
	}
	if port < 1 || port > 65535 {
		return endpoint{}, fmt.Errorf("port number %d is outside valid range (1-65535)", port)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return endpoint{}, errors.New("invalid process ID in lockfile")
	}

	secret := strings.TrimSpace(parts[2])
	if secret == "" {
		return endpoint{}, errors.New("secret in lockfile is empty")
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return endpoint{}, ErrTrayNotRunning
	}
	if !strings.HasPrefix(process.Executable(), constants.TrayExecutablePrefix) {
		return endpoint{}, fmt.Errorf("process with PID %d is not %s (is %s)", pid, constants.TrayExecutablePrefix, process.Executable())
	}

	return endpoint{port: port, secret: secret}, nil
}

// rejectedError is a non-200 answer from the tray. It is not retried.
type rejectedError struct {
	status int
	body   string
}

func (e *rejectedError) Error() string {
	return fmt.Sprintf("notification failed with status %d: %s", e.status, e.body)
}

func (t *Tray) send(ctx context.Context, ep endpoint, payload WebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("http://127.0.0.1:%d", ep.port)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(constants.NotifierSecretHeader, ep.secret)

	res, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}
	msg, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
	return &rejectedError{status: res.StatusCode, body: strings.TrimSpace(string(msg))}
}

// Console writes notifications to a terminal, ringing the bell first
type Console struct {
	w    io.Writer
	now  func() time.Time
	bell bool
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w, now: time.Now, bell: true}
}

func (c *Console) Notify(_ context.Context, text string) error {
	prefix := ""
	if c.bell {
		prefix = "\a"
	}
	_, err := fmt.Fprintf(c.w, "%s[%s] 💧 %s\n", prefix, c.now().Format(constants.TimeFormat), text)
	return err
}

// Fallback tries each notifier in order and stops at the first success
type Fallback []Notifier

func (f Fallback) Notify(ctx context.Context, text string) error {
	var errs []error
	for _, n := range f {
		err := n.Notify(ctx, text)
		if err == nil {
			return nil
		}
		logger.Debug("Notifier failed, trying next", "error", err)
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return errors.New("no notifiers configured")
	}
	return errors.Join(errs...)
}
