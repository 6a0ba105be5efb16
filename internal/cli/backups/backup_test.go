package backups

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/wellness/internal/cli/clitest"
)

func TestBackupCreateEmpty(t *testing.T) {
	env := clitest.New(t)
	if err := (&BackupCreateCmd{}).Run(env.Context); err == nil {
		t.Fatal("expected error backing up an empty store")
	}
}

func TestBackupCreateListVerifyRestore(t *testing.T) {
	env := clitest.New(t)
	if err := env.Store.AddHydration(env.Ctx, 500); err != nil {
		t.Fatal(err)
	}

	if err := (&BackupCreateCmd{}).Run(env.Context); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !strings.Contains(env.Buf.String(), "✓ Backup created: wellness-") {
		t.Errorf("create output = %q", env.Buf.String())
	}

	backups, err := env.Backups().ListBackups()
	if err != nil || len(backups) != 1 {
		t.Fatalf("ListBackups() = %v, %v", backups, err)
	}
	name := filepath.Base(backups[0].Path)

	env.Buf.Reset()
	if err := (&BackupListCmd{}).Run(env.Context); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(env.Buf.String(), name) {
		t.Errorf("list output missing %s:\n%s", name, env.Buf.String())
	}

	env.Buf.Reset()
	if err := (&BackupVerifyCmd{BackupFile: name}).Run(env.Context); err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if !strings.Contains(env.Buf.String(), "wellness_data") {
		t.Errorf("verify output = %q", env.Buf.String())
	}

	if err := env.Store.AddHydration(env.Ctx, 700); err != nil {
		t.Fatal(err)
	}
	if got := env.Store.TodayHydration(); got != 1200 {
		t.Fatalf("TodayHydration() = %d, want 1200", got)
	}

	env.Buf.Reset()
	if err := (&BackupRestoreCmd{BackupFile: backups[0].Path}).Run(env.Context); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if got := env.Store.TodayHydration(); got != 500 {
		t.Errorf("TodayHydration() after restore = %d, want 500", got)
	}
	if !strings.Contains(env.Buf.String(), "Previous data saved to:") {
		t.Errorf("restore output = %q", env.Buf.String())
	}
}

func TestBackupRestoreCancelled(t *testing.T) {
	env := clitest.New(t)
	if err := env.Store.AddHydration(env.Ctx, 500); err != nil {
		t.Fatal(err)
	}
	path, err := env.Backups().CreateBackup(env.Ctx)
	if err != nil {
		t.Fatal(err)
	}
	if err := env.Store.AddHydration(env.Ctx, 250); err != nil {
		t.Fatal(err)
	}

	env.Confirm = func(string) (bool, error) { return false, nil }
	if err := (&BackupRestoreCmd{BackupFile: path}).Run(env.Context); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(env.Buf.String(), "Restore cancelled.") {
		t.Errorf("output = %q", env.Buf.String())
	}
	if got := env.Store.TodayHydration(); got != 750 {
		t.Errorf("TodayHydration() = %d, want 750", got)
	}
}

func TestBackupVerifyCorrupt(t *testing.T) {
	env := clitest.New(t)
	path := filepath.Join(t.TempDir(), "wellness-20250101-000000.cbor.zst")
	if err := os.WriteFile(path, []byte("not a backup"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := (&BackupVerifyCmd{BackupFile: path}).Run(env.Context); err == nil {
		t.Fatal("expected verify error")
	}
}

func TestResolveBackupPath(t *testing.T) {
	dir := t.TempDir()
	name := "wellness-20250101-000000.cbor.zst"
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := resolveBackupPath(name, dir)
	if err != nil || got != filepath.Join(dir, name) {
		t.Errorf("resolveBackupPath(name) = %q, %v", got, err)
	}
	if _, err := resolveBackupPath("missing.cbor.zst", dir); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := resolveBackupPath(filepath.Join(dir, "missing"), dir); err == nil {
		t.Error("expected error for missing absolute path")
	}
}
