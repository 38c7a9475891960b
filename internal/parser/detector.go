package parser

import (
	"bytes"
	"io"
	"os"
)

type FileType string

const (
	FileTypeFIT     FileType = "fit"
	FileTypeJSON    FileType = "json"
	FileTypeCSV     FileType = "csv"
	FileTypeUnknown FileType = "unknown"
)

func DetectFileType(filepath string) (FileType, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return FileTypeUnknown, err
	}
	defer file.Close()

	// Read first 512 bytes for detection
	header := make([]byte, 512)
	n, err := io.ReadFull(file, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return FileTypeUnknown, err
	}

	return DetectFileTypeFromData(header[:n]), nil
}

func DetectFileTypeFromData(data []byte) FileType {
	// FIT files carry ".FIT" at offset 8 of the header
	if len(data) >= 12 && bytes.Equal(data[8:12], []byte(".FIT")) {
		return FileTypeFIT
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return FileTypeUnknown
	}
	switch trimmed[0] {
	case '[', '{':
		return FileTypeJSON
	}

	if bytes.IndexByte(trimmed, ',') >= 0 {
		return FileTypeCSV
	}
	return FileTypeUnknown
}
