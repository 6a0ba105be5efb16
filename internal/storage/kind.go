package storage

import (
	"strings"

	"github.com/julianstephens/wellness/internal/constants"
)

// Kind identifies the backend selected by a --config value
type Kind string

const (
	KindSQLite   Kind = "sqlite"
	KindPostgres Kind = "postgres"
	KindJSON     Kind = "json"
	KindMemory   Kind = "memory"
)

// DetectKind picks a backend from a config path or connection string
func DetectKind(config string) Kind {
	switch {
	case strings.HasPrefix(config, "postgres://"), strings.HasPrefix(config, "postgresql://"):
		return KindPostgres
	case config == constants.MemoryConfigPath:
		return KindMemory
	case strings.HasSuffix(strings.ToLower(config), ".json"):
		return KindJSON
	default:
		return KindSQLite
	}
}

// FileBacked reports whether the backend keeps its data in a local file
func (k Kind) FileBacked() bool {
	return k == KindSQLite || k == KindJSON
}
