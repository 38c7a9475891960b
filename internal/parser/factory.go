package parser

import (
	"fmt"
	"path/filepath"
	"strings"
)

// NewParser creates a parser based on file extension or content
func NewParser(filename string, profile Profile) (Parser, error) {
	// First try by extension
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".fit":
		return NewFITParser(profile), nil
	case ".json":
		return NewJSONParser(), nil
	case ".csv":
		return NewCSVParser(), nil
	}

	// If extension doesn't match, detect by content
	fileType, err := DetectFileType(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to detect file type: %w", err)
	}
	return newParser(fileType, profile)
}

// NewParserFromData creates a parser based on file content
func NewParserFromData(data []byte, profile Profile) (Parser, error) {
	return newParser(DetectFileTypeFromData(data), profile)
}

func newParser(fileType FileType, profile Profile) (Parser, error) {
	switch fileType {
	case FileTypeFIT:
		return NewFITParser(profile), nil
	case FileTypeJSON:
		return NewJSONParser(), nil
	case FileTypeCSV:
		return NewCSVParser(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, fileType)
	}
}
