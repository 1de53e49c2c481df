package tracing

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/snappy"
	"github.com/pierrec/lz4/v4"
	"github.com/sarchlab/pagesim/paging"
)

// Compression selects how an exported trace is compressed.
type Compression uint8

// Supported compressions.
const (
	CompressionNone   Compression = 0
	CompressionLZ4    Compression = 1
	CompressionSnappy Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionSnappy:
		return "snappy"
	}

	return fmt.Sprintf("Compression(%d)", uint8(c))
}

// CompressionFromPath picks the compression from a file extension: ".lz4"
// and ".sz" are compressed, anything else is plain JSON.
func CompressionFromPath(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".lz4":
		return CompressionLZ4
	case ".sz":
		return CompressionSnappy
	}

	return CompressionNone
}

// Export writes the result as JSON.
func Export(w io.Writer, result *paging.Result, c Compression) error {
	var (
		cw  io.WriteCloser
		err error
	)

	switch c {
	case CompressionNone:
		cw = nopCloser{w}
	case CompressionLZ4:
		cw = lz4.NewWriter(w)
	case CompressionSnappy:
		cw = snappy.NewBufferedWriter(w)
	default:
		return fmt.Errorf("unsupported compression: %s", c)
	}

	err = json.NewEncoder(cw).Encode(result)
	if err != nil {
		return fmt.Errorf("encoding trace: %w", err)
	}

	err = cw.Close()
	if err != nil {
		return fmt.Errorf("%s compression failed: %w", c, err)
	}

	return nil
}

// Import reads a result written by Export.
func Import(r io.Reader, c Compression) (*paging.Result, error) {
	switch c {
	case CompressionNone:
	case CompressionLZ4:
		r = lz4.NewReader(r)
	case CompressionSnappy:
		r = snappy.NewReader(r)
	default:
		return nil, fmt.Errorf("unsupported compression: %s", c)
	}

	result := &paging.Result{}

	err := json.NewDecoder(r).Decode(result)
	if err != nil {
		return nil, fmt.Errorf("decoding %s trace: %w", c, err)
	}

	return result, nil
}

// ExportFile writes the result to path, compressed according to its
// extension.
func ExportFile(path string, result *paging.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)

	err = Export(w, result, CompressionFromPath(path))
	if err == nil {
		err = w.Flush()
	}

	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}

	return err
}

// ImportFile reads a result written by ExportFile.
func ImportFile(path string) (*paging.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Import(bufio.NewReader(f), CompressionFromPath(path))
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
