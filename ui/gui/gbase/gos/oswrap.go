// Package gos is the small slice of the filesystem the GUI needs. Desktop
// builds use the os package; browser builds keep files in localStorage.
package gos

import (
	"errors"
	"io"
	"time"
)

var ErrNotExist = errors.New("file does not exist (oswrap)")

type FileInfo struct {
	Name    string
	Size    int64
	ModTime time.Time
	IsDir   bool
}

type ReadCloser = io.ReadCloser
