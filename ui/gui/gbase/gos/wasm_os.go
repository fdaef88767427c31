//go:build js && wasm
// +build js,wasm

package gos

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"path"
	"syscall/js"
	"time"
)

const keyPrefix = "blockblast:"

func storage() js.Value {
	return js.Global().Get("localStorage")
}

func load(name string) (string, bool) {
	v := storage().Call("getItem", keyPrefix+name)
	if v.IsNull() || v.IsUndefined() {
		return "", false
	}
	return v.String(), true
}

func Stat(name string) (FileInfo, error) {
	s, ok := load(name)
	if !ok {
		return FileInfo{}, ErrNotExist
	}
	return FileInfo{Name: path.Base(name), Size: int64(len(s)), ModTime: time.Now()}, nil
}

func Open(name string) (ReadCloser, error) {
	data, err := ReadFile(name)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func ReadFile(name string) ([]byte, error) {
	s, ok := load(name)
	if !ok {
		return nil, ErrNotExist
	}
	return []byte(s), nil
}

func WriteFile(name string, data []byte, _ fs.FileMode) error {
	if storage().IsUndefined() {
		return errors.New("localStorage unavailable")
	}
	storage().Call("setItem", keyPrefix+name, string(data))
	return nil
}

func IsNotExist(err error) bool {
	return errors.Is(err, ErrNotExist)
}
