package prefabs

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

//go:embed *.yaml
var PrefabsFS embed.FS

var (
	dirMu   sync.RWMutex
	diskDir = "prefabs"
)

// SetDir changes the on-disk override directory. Files found there shadow
// the embedded copies, which is what makes hot reload useful.
func SetDir(dir string) {
	dirMu.Lock()
	defer dirMu.Unlock()
	diskDir = dir
}

func Dir() string {
	dirMu.RLock()
	defer dirMu.RUnlock()
	return diskDir
}

func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if data, err := os.ReadFile(diskPrefabPath(clean)); err == nil {
		return data, nil
	}
	return PrefabsFS.ReadFile(clean)
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		s = after
	}
	if !isSpecFile(s) {
		s += ".yaml"
	}
	return s
}

func diskPrefabPath(clean string) string {
	return filepath.Join(Dir(), filepath.FromSlash(clean))
}
