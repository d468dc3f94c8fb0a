package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/michael-freling/file-manager/internal/db"
	"github.com/michael-freling/file-manager/internal/xerrors"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatSQLite Format = "sqlite"
)

func FormatFromPath(filePath string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".sqlite", ".db":
		return FormatSQLite, nil
	}
	return "", fmt.Errorf("%w: unsupported seed file %s", xerrors.ErrInvalidArgument, filePath)
}

// LoadFile reads a seed document in the format of the file extension
func LoadFile(ctx context.Context, filePath string, options ...db.ClientOption) (Document, error) {
	format, err := FormatFromPath(filePath)
	if err != nil {
		return Document{}, err
	}

	if format == FormatSQLite {
		if _, err := os.Stat(filePath); err != nil {
			return Document{}, fmt.Errorf("os.Stat: %w", err)
		}
		dbClient, err := db.NewClient(db.DSNFromFilePath(filePath), options...)
		if err != nil {
			return Document{}, fmt.Errorf("db.NewClient: %w", err)
		}
		defer dbClient.Close()

		return ReadDB(ctx, dbClient)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return Document{}, fmt.Errorf("os.Open: %w", err)
	}
	defer file.Close()

	return Decode(file, format)
}

func Decode(reader io.Reader, format Format) (Document, error) {
	var document Document
	switch format {
	case FormatJSON:
		decoder := json.NewDecoder(reader)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&document); err != nil {
			return Document{}, fmt.Errorf("%w: json.Decode: %w", xerrors.ErrInvalidArgument, err)
		}
	case FormatYAML:
		decoder := yaml.NewDecoder(reader)
		decoder.KnownFields(true)
		if err := decoder.Decode(&document); err != nil && err != io.EOF {
			return Document{}, fmt.Errorf("%w: yaml.Decode: %w", xerrors.ErrInvalidArgument, err)
		}
	default:
		return Document{}, fmt.Errorf("%w: format %s cannot be decoded from a stream", xerrors.ErrInvalidArgument, format)
	}
	if err := document.Validate(); err != nil {
		return Document{}, fmt.Errorf("document.Validate: %w", err)
	}
	return document, nil
}

func Encode(writer io.Writer, document Document, format Format) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(document); err != nil {
			return fmt.Errorf("json.Encode: %w", err)
		}
	case FormatYAML:
		encoder := yaml.NewEncoder(writer)
		encoder.SetIndent(2)
		if err := encoder.Encode(document); err != nil {
			return fmt.Errorf("yaml.Encode: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("encoder.Close: %w", err)
		}
	default:
		return fmt.Errorf("%w: format %s cannot be encoded to a stream", xerrors.ErrInvalidArgument, format)
	}
	return nil
}

// WriteFile writes a document in the format of the file extension.
// An existing file is not overwritten
func WriteFile(ctx context.Context, filePath string, document Document, options ...db.ClientOption) error {
	format, err := FormatFromPath(filePath)
	if err != nil {
		return err
	}
	if _, err := os.Stat(filePath); err == nil {
		return fmt.Errorf("%w: file already exists: %s", xerrors.ErrInvalidArgument, filePath)
	}

	if format == FormatSQLite {
		dbClient, err := db.NewClient(db.DSNFromFilePath(filePath), options...)
		if err != nil {
			return fmt.Errorf("db.NewClient: %w", err)
		}
		defer dbClient.Close()

		return WriteDB(ctx, dbClient, document)
	}

	var buffer bytes.Buffer
	if err := Encode(&buffer, document, format); err != nil {
		return err
	}
	if err := os.WriteFile(filePath, buffer.Bytes(), 0644); err != nil {
		return fmt.Errorf("os.WriteFile: %w", err)
	}
	return nil
}
