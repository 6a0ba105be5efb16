package cli

import (
	"errors"
	"os"

	"github.com/julianstephens/wellness/internal/constants"
	wellnesserrors "github.com/julianstephens/wellness/internal/errors"
	"github.com/julianstephens/wellness/internal/keyring"
	"github.com/julianstephens/wellness/internal/logger"
	"github.com/julianstephens/wellness/internal/storage"
	"github.com/julianstephens/wellness/internal/storage/postgres"
	"github.com/julianstephens/wellness/internal/storage/sqlite"
)

// Where a storage target came from
const (
	SourceFlag    = "flag"
	SourceEnv     = "env"
	SourceKeyring = "keyring"
)

// Target is the resolved storage location
type Target struct {
	Config string
	Kind   storage.Kind
	Source string
}

var (
	lookupEnvFunc         = os.LookupEnv
	keyringConnStringFunc = keyring.GetConnectionString
)

// ResolveTarget picks the storage location. An explicit --config wins. With
// the default path, a connection string from WELLNESS_DB_CONNECTION or the
// OS keyring takes over.
func ResolveTarget(config string) Target {
	if config == constants.DefaultConfigPath {
		if dsn, ok := lookupEnvFunc(constants.EnvDBConnection); ok && dsn != "" {
			return Target{Config: dsn, Kind: storage.KindPostgres, Source: SourceEnv}
		}
		dsn, err := keyringConnStringFunc()
		switch {
		case err == nil:
			return Target{Config: dsn, Kind: storage.KindPostgres, Source: SourceKeyring}
		case !errors.Is(err, keyring.ErrNotFound):
			logger.Debug("Keyring lookup skipped", "error", err)
		}
	}
	return Target{Config: config, Kind: storage.DetectKind(config), Source: SourceFlag}
}

// OpenProvider builds the provider for t. Connection strings passed on the
// command line may not embed a password; env and keyring ones may.
func OpenProvider(t Target) (storage.Provider, error) {
	switch t.Kind {
	case storage.KindPostgres:
		if err := postgres.ValidateConnString(t.Config); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) && t.Source != SourceFlag {
				return postgres.New(t.Config), nil
			}
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, wellnesserrors.WithHint(err,
					"store it with 'wellness keyring set', export "+constants.EnvDBConnection+", or use a .pgpass file")
			}
			return nil, err
		}
		return postgres.New(t.Config), nil
	case storage.KindMemory:
		return storage.NewMemoryStore(), nil
	case storage.KindJSON:
		return storage.NewJSONStore(ExpandHome(t.Config)), nil
	default:
		return sqlite.NewStore(ExpandHome(t.Config)), nil
	}
}
