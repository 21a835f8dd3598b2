// Package archive writes zip containers with a per-run compression
// method applied uniformly to every stored entry.
package archive

import (
	"archive/zip"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zstd"

	"github.com/quantmind-br/srcpack-go/internal/domain"
)

// Named compression methods selectable per run.
const (
	// MethodDeflate is the balanced default.
	MethodDeflate = "deflate"
	// MethodZstd favors compression ratio (zip method 93).
	MethodZstd = "zstd"
	// MethodStore skips compression entirely for speed.
	MethodStore = "store"
)

// zstdMethodID is the registered zip method id for Zstandard.
const zstdMethodID = 93

// Methods returns the selectable compression method names.
func Methods() []string {
	return []string{MethodDeflate, MethodZstd, MethodStore}
}

// ValidMethod reports whether name is a selectable method.
func ValidMethod(name string) bool {
	switch strings.ToLower(name) {
	case MethodDeflate, MethodZstd, MethodStore:
		return true
	}
	return false
}

// Writer wraps a zip writer over a destination file. Creation failure
// is fatal to a packaging run; per-entry failures surface as
// ArchiveError so the caller can abort.
type Writer struct {
	path   string
	file   *os.File
	zw     *zip.Writer
	method uint16
}

// NewWriter creates the destination archive. The method name selects
// the codec applied to every entry.
func NewWriter(path, method string) (*Writer, error) {
	methodID, err := methodID(method)
	if err != nil {
		return nil, err
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, domain.NewArchiveError(path, err)
	}

	zw := zip.NewWriter(f)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.DefaultCompression)
	})
	zw.RegisterCompressor(zstdMethodID, func(out io.Writer) (io.WriteCloser, error) {
		return zstd.NewWriter(out, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	})

	return &Writer{
		path:   path,
		file:   f,
		zw:     zw,
		method: methodID,
	}, nil
}

// Path returns the destination archive path.
func (w *Writer) Path() string { return w.path }

// Add stores one entry under its slash-separated archive name.
func (w *Writer) Add(name string, mode fs.FileMode, modTime time.Time, content []byte) error {
	header := &zip.FileHeader{
		Name:     name,
		Method:   w.method,
		Modified: modTime,
	}
	header.SetMode(mode)

	entry, err := w.zw.CreateHeader(header)
	if err != nil {
		return domain.NewArchiveError(w.path, err)
	}
	if _, err := entry.Write(content); err != nil {
		return domain.NewArchiveError(w.path, err)
	}
	return nil
}

// Close flushes the central directory and closes the file.
func (w *Writer) Close() error {
	if err := w.zw.Close(); err != nil {
		w.file.Close()
		return domain.NewArchiveError(w.path, err)
	}
	if err := w.file.Close(); err != nil {
		return domain.NewArchiveError(w.path, err)
	}
	return nil
}

// methodID maps a method name to its zip method id.
func methodID(name string) (uint16, error) {
	switch strings.ToLower(name) {
	case MethodDeflate, "":
		return zip.Deflate, nil
	case MethodZstd:
		return zstdMethodID, nil
	case MethodStore:
		return zip.Store, nil
	default:
		return 0, domain.NewConfigError("", 0, "unknown compression method: "+name, domain.ErrUnknownCompression)
	}
}
