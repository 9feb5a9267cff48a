package util

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

func resolvePath(path string) (string, error) {
	return filepath.EvalSymlinks(path)
}

// WriteFileAtomic writes data to path, so that readers either see the
// old or the new content but never a partially written file.
func WriteFileAtomic(path string, data []byte) error {
	evaluatedPath, err := resolvePath(path)
	if len(evaluatedPath) > 0 && err == nil {
		path = evaluatedPath
	}
	parentDir := filepath.Dir(path)
	if err := os.MkdirAll(parentDir, 0755); err != nil {
		return err
	}
	return atomic.WriteFile(path, bytes.NewReader(data))
}
