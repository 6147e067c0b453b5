package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile writes entries as indented JSON to outputPath, passing the
// payload through enc first when it is non-nil. Parent directories are
// created and the file is readable by the owner only.
func WriteFile[E any](entries []E, outputPath string, enc Encryptor) error {
	if entries == nil {
		entries = []E{}
	}

	payload, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode entries: %w", err)
	}
	payload = append(payload, '\n')

	if enc != nil {
		payload, err = enc.Encrypt(payload)
		if err != nil {
			return fmt.Errorf("failed to encrypt export: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o700); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(outputPath, payload, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}
	return nil
}
