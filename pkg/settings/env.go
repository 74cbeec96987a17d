package settings

import (
	"context"
	"os"
	"strings"

	"github.com/iancoleman/strcase"
)

// DefaultEnvPrefix is used when EnvProvider.Prefix is empty.
const DefaultEnvPrefix = "COMMANDER"

// EnvProvider reads Settings from environment variables named
// <PREFIX>_<KEY>, e.g. COMMANDER_SERVER_URL or COMMANDER_BASE_PATH.
type EnvProvider struct {
	Prefix string

	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(key string) (string, bool)
}

// EnvVarName returns the environment variable that carries key.
func EnvVarName(prefix, key string) string {
	if prefix == "" {
		prefix = DefaultEnvPrefix
	}
	return strings.ToUpper(prefix) + "_" + strcase.ToScreamingSnake(key)
}

// Load implements Provider. Unset and empty variables are skipped.
func (p *EnvProvider) Load(context.Context) (*Settings, error) {
	lookup := p.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	values := make(map[string]any)
	for _, key := range Keys {
		if v, ok := lookup(EnvVarName(p.Prefix, key)); ok && strings.TrimSpace(v) != "" {
			values[key] = strings.TrimSpace(v)
		}
	}
	return decodeMap(values)
}
