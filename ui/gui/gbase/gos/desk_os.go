//go:build !js && !wasm
// +build !js,!wasm

package gos

import (
	"io/fs"
	"os"
	"path/filepath"
)

func Stat(name string) (FileInfo, error) {
	fi, err := os.Stat(name)
	if err != nil {
		return FileInfo{}, err
	}
	return FileInfo{
		Name:    fi.Name(),
		Size:    fi.Size(),
		ModTime: fi.ModTime(),
		IsDir:   fi.IsDir(),
	}, nil
}

func Open(name string) (ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// WriteFile creates missing parent directories.
func WriteFile(name string, data []byte, perm fs.FileMode) error {
	if dir := filepath.Dir(name); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(name, data, perm)
}

func IsNotExist(err error) bool {
	return os.IsNotExist(err) || err == ErrNotExist
}
