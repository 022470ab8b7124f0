package dotEnvLoader

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type DotEnvLoader struct {
	Path string
}

// Load reads the .env file if one exists and overlays the process environment
// on top, so deployment env vars win over the file.
func (l DotEnvLoader) Load() (map[string]string, error) {
	path := l.Path
	if path == "" {
		path = ".env"
	}

	envs, err := godotenv.Read(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		envs = make(map[string]string)
	}

	for _, kv := range os.Environ() {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) == 2 {
			envs[parts[0]] = parts[1]
		}
	}
	return envs, nil
}
