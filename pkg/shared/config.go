package shared

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

const (
	EnvNetwork       = "SUI_NETWORK"
	EnvPackageID     = "RECRD_PACKAGE_ID"
	EnvAdminCap      = "CORE_ADMIN_CAP"
	EnvPublisher     = "MASTER_PUBLISHER"
	EnvRegistry      = "REGISTRY"
	EnvOperatorKey   = "RECRD_PRIVATE_KEY"
	EnvUserKey       = "USER_PRIVATE_KEY"
	EnvPublishDigest = "PUBLISH_DIGEST"
	EnvStateDir      = "RECRD_STATE_DIR"
)

// DefaultStateDir is where scratch identifier files go when RECRD_STATE_DIR is unset.
const DefaultStateDir = ".recrd"

var requiredEnv = []string{EnvNetwork, EnvPackageID, EnvAdminCap, EnvOperatorKey}

var reportedEnv = []string{EnvPackageID, EnvAdminCap, EnvOperatorKey, EnvUserKey}

// Config holds the deployment parameters of one contract installation.
type Config struct {
	NodeURL       string
	Network       string
	PackageID     string
	AdminCap      string
	Publisher     string
	Registry      string
	OperatorKey   string
	UserKey       string
	PublishDigest string
	StateDir      string
}

// MissingConfigError reports required variables that were absent.
type MissingConfigError struct {
	Missing []string
	Present map[string]bool
}

func (e *MissingConfigError) Error() string {
	if e == nil || len(e.Missing) == 0 {
		return "configuration is incomplete"
	}
	return fmt.Sprintf("critical environment variable(s) missing: %s", strings.Join(e.Missing, ", "))
}

// WriteDiagnostic prints which of the operator-facing variables are set.
func (e *MissingConfigError) WriteDiagnostic(w io.Writer) {
	for _, key := range reportedEnv {
		fmt.Fprintf(w, "env contains %s: %t\n", key, e.Present[key])
	}
	fmt.Fprintln(w, "-----------------------------------")
}

var dotenvLoadOnce sync.Once

// LoadConfig reads the process environment, after merging a .env file if one
// is found, and fails when a required value is absent.
func LoadConfig() (Config, error) {
	loadDotEnvIfPresent()
	return ConfigFromLookup(os.LookupEnv)
}

// ConfigFromLookup builds a Config from an arbitrary variable source.
func ConfigFromLookup(lookup func(string) (string, bool)) (Config, error) {
	get := func(key string) string {
		value, _ := lookup(key)
		return strings.TrimSpace(value)
	}

	present := make(map[string]bool, len(reportedEnv)+len(requiredEnv))
	for _, key := range append(append([]string{}, requiredEnv...), reportedEnv...) {
		present[key] = get(key) != ""
	}

	missing := make([]string, 0)
	for _, key := range requiredEnv {
		if !present[key] {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return Config{}, &MissingConfigError{Missing: missing, Present: present}
	}

	nodeURL, network, err := ResolveNodeURL(get(EnvNetwork))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", EnvNetwork, err)
	}

	stateDir := get(EnvStateDir)
	if stateDir == "" {
		stateDir = DefaultStateDir
	}

	return Config{
		NodeURL:       nodeURL,
		Network:       network,
		PackageID:     get(EnvPackageID),
		AdminCap:      get(EnvAdminCap),
		Publisher:     get(EnvPublisher),
		Registry:      get(EnvRegistry),
		OperatorKey:   get(EnvOperatorKey),
		UserKey:       get(EnvUserKey),
		PublishDigest: get(EnvPublishDigest),
		StateDir:      stateDir,
	}, nil
}

// Require returns an error naming the first empty optional value a workflow depends on.
func (c Config) Require(keys ...string) error {
	values := map[string]string{
		EnvPublisher:     c.Publisher,
		EnvRegistry:      c.Registry,
		EnvUserKey:       c.UserKey,
		EnvPublishDigest: c.PublishDigest,
	}
	for _, key := range keys {
		if value, known := values[key]; known && value == "" {
			return fmt.Errorf("%s is required for this command", key)
		}
	}
	return nil
}

func loadDotEnvIfPresent() {
	dotenvLoadOnce.Do(func() {
		cwd, err := os.Getwd()
		if err != nil {
			return
		}
		if path, ok := findDotEnv(cwd); ok {
			_ = godotenv.Load(path)
		}
	})
}

// findDotEnv returns the nearest .env file at or above dir.
func findDotEnv(dir string) (string, bool) {
	for {
		candidate := filepath.Join(dir, ".env")
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
