package backup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/zeebo/blake3"

	"github.com/julianstephens/wellness/internal/codec"
	"github.com/julianstephens/wellness/internal/constants"
	"github.com/julianstephens/wellness/internal/logger"
	"github.com/julianstephens/wellness/internal/storage"
)

const timestampFormat = "20060102-150405"

var (
	// ErrEmpty is returned by Create when the store holds no keys
	ErrEmpty = errors.New("nothing to back up")
	// ErrChecksumMismatch is returned when a snapshot's entries do not hash to its checksum
	ErrChecksumMismatch = errors.New("backup checksum mismatch")
)

var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("backup: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("backup: zstd decoder initialization failed: " + err.Error())
	}
}

// Snapshot is every key the provider holds at one point in time
type Snapshot struct {
	Version   int               `json:"version"`
	CreatedAt int64             `json:"createdAt"` // epoch milliseconds
	Entries   map[string]string `json:"entries"`
	Checksum  []byte            `json:"checksum"`
}

// BackupInfo contains information about a backup file
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64

	seq int
}

// DatasetWriter owns the dataset key. Restore hands it the snapshot's
// dataset blob instead of writing the key itself.
type DatasetWriter interface {
	RestoreDataset(ctx context.Context, blob string) error
}

// Manager handles backup operations
type Manager struct {
	provider  storage.Provider
	dataset   DatasetWriter
	backupDir string
	now       func() time.Time
}

type Option func(*Manager)

// WithDatasetWriter routes the dataset key through w on restore
func WithDatasetWriter(w DatasetWriter) Option {
	return func(m *Manager) { m.dataset = w }
}

// WithClock replaces time.Now when naming backups
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager creates a backup manager writing under <configDir>/backups
func NewManager(p storage.Provider, configDir string, opts ...Option) *Manager {
	m := &Manager{
		provider:  p,
		backupDir: filepath.Join(configDir, constants.BackupDirName),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// GetBackupDir returns the backup directory path
func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

// Checksum hashes the deterministic CBOR encoding of entries
func Checksum(entries map[string]string) ([]byte, error) {
	data, err := codec.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to encode entries: %w", err)
	}
	sum := blake3.Sum256(data)
	return sum[:], nil
}

// TakeSnapshot reads every key from the provider
func (m *Manager) TakeSnapshot(ctx context.Context) (Snapshot, error) {
	keys, err := m.provider.Keys(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to list keys: %w", err)
	}

	entries := make(map[string]string, len(keys))
	for _, k := range keys {
		v, err := m.provider.GetItem(ctx, k)
		if err != nil {
			return Snapshot{}, fmt.Errorf("failed to read %s: %w", k, err)
		}
		entries[k] = v
	}

	sum, err := Checksum(entries)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		Version:   constants.SnapshotVersion,
		CreatedAt: m.now().UnixMilli(),
		Entries:   entries,
		Checksum:  sum,
	}, nil
}

// CreateBackup writes a snapshot of the store and rotates old backups
func (m *Manager) CreateBackup(ctx context.Context) (string, error) {
	return m.createBackup(ctx, false)
}

// createBackup skips rotation during restore so the pre-restore copy cannot evict the source
func (m *Manager) createBackup(ctx context.Context, skipRotation bool) (string, error) {
	snap, err := m.TakeSnapshot(ctx)
	if err != nil {
		return "", err
	}
	if len(snap.Entries) == 0 {
		return "", ErrEmpty
	}

	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	backupPath, err := m.nextPath()
	if err != nil {
		return "", err
	}

	data, err := codec.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := writeFileAtomic(backupPath, zstdEncoder.EncodeAll(data, nil)); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	logger.Debug("Backup created", "path", backupPath, "keys", len(snap.Entries))

	if !skipRotation {
		if err := m.rotateBackups(); err != nil {
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}
	return backupPath, nil
}

// CreateIfStale creates a backup when the newest one is older than maxAge.
// An empty store is skipped without error.
func (m *Manager) CreateIfStale(ctx context.Context, maxAge time.Duration) (string, bool, error) {
	backups, err := m.ListBackups()
	if err != nil {
		return "", false, err
	}
	if len(backups) > 0 && m.now().Sub(backups[0].Timestamp) < maxAge {
		return "", false, nil
	}

	path, err := m.CreateBackup(ctx)
	if errors.Is(err, ErrEmpty) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return path, true, nil
}

func (m *Manager) nextPath() (string, error) {
	stamp := m.now().Local().Format(timestampFormat)
	path := filepath.Join(m.backupDir, constants.BackupFilePrefix+stamp+constants.BackupFileSuffix)
	for counter := 1; fileExists(path); counter++ {
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		name := fmt.Sprintf("%s%s-%d%s", constants.BackupFilePrefix, stamp, counter, constants.BackupFileSuffix)
		path = filepath.Join(m.backupDir, name)
	}
	return path, nil
}

// ListBackups returns all backups, newest first
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	entries, err := os.ReadDir(m.backupDir)
	if os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []BackupInfo{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ts, seq, ok := parseBackupName(entry.Name())
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, BackupInfo{
			Path:      filepath.Join(m.backupDir, entry.Name()),
			Timestamp: ts,
			Size:      info.Size(),
			seq:       seq,
		})
	}

	sort.SliceStable(backups, func(i, j int) bool {
		if backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].seq > backups[j].seq
		}
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

// parseBackupName extracts the timestamp from wellness-YYYYMMDD-HHMMSS[-N].cbor.zst
func parseBackupName(name string) (time.Time, int, bool) {
	if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
		return time.Time{}, 0, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix)

	seq := 0
	if parts := strings.Split(stamp, "-"); len(parts) == 3 {
		n, err := strconv.Atoi(parts[2])
		if err != nil {
			return time.Time{}, 0, false
		}
		stamp, seq = parts[0]+"-"+parts[1], n
	}

	ts, err := time.ParseInLocation(timestampFormat, stamp, time.Local)
	if err != nil {
		return time.Time{}, 0, false
	}
	return ts, seq, true
}

// rotateBackups removes old backups beyond the retention limit
func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}
	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// VerifyBackup decodes a backup file and checks its checksum
func (m *Manager) VerifyBackup(path string) (Snapshot, error) {
	compressed, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, err
	}
	data, err := zstdDecoder.DecodeAll(compressed, nil)
	if err != nil {
		return Snapshot{}, fmt.Errorf("zstd decompress: %w", err)
	}

	var snap Snapshot
	if err := codec.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if snap.Version > constants.SnapshotVersion {
		return Snapshot{}, fmt.Errorf("backup version %d is newer than supported version %d", snap.Version, constants.SnapshotVersion)
	}
	if snap.Entries == nil {
		snap.Entries = map[string]string{}
	}

	sum, err := Checksum(snap.Entries)
	if err != nil {
		return Snapshot{}, err
	}
	if !bytes.Equal(sum, snap.Checksum) {
		return Snapshot{}, ErrChecksumMismatch
	}
	return snap, nil
}

// RestoreBackup replaces the store's contents with a verified backup. The
// current contents are backed up first. Keys absent from the backup are
// removed. It returns the pre-restore backup path, empty when the store was
// empty.
func (m *Manager) RestoreBackup(ctx context.Context, path string) (string, error) {
	snap, err := m.VerifyBackup(path)
	if err != nil {
		return "", fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	current, err := m.createBackup(ctx, true)
	if err != nil && !errors.Is(err, ErrEmpty) {
		return "", fmt.Errorf("failed to backup current data before restore: %w", err)
	}

	// The dataset goes first so a rejected blob leaves every key untouched
	entries := snap.Entries
	if blob, ok := entries[constants.DataKey]; ok && m.dataset != nil {
		if err := m.dataset.RestoreDataset(ctx, blob); err != nil {
			return current, fmt.Errorf("failed to restore %s: %w", constants.DataKey, err)
		}
		entries = make(map[string]string, len(snap.Entries))
		for k, v := range snap.Entries {
			if k != constants.DataKey {
				entries[k] = v
			}
		}
	}

	keys, err := m.provider.Keys(ctx)
	if err != nil {
		return current, fmt.Errorf("failed to list keys: %w", err)
	}
	for _, k := range keys {
		if _, ok := snap.Entries[k]; ok {
			continue
		}
		if err := m.provider.RemoveItem(ctx, k); err != nil {
			return current, fmt.Errorf("failed to remove %s: %w", k, err)
		}
	}
	for k, v := range entries {
		if err := m.provider.SetItem(ctx, k, v); err != nil {
			return current, fmt.Errorf("failed to restore %s: %w", k, err)
		}
	}
	return current, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// writeFileAtomic writes through a temp file and rename
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".backup-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
