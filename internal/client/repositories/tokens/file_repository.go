package tokens

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/invoicextractor/internal/client/models"
)

// FileRepository keeps the pair as a single JSON object
// {"refresh_token": ..., "access_token": ...} at path.
type FileRepository struct {
	path string
}

// NewFileRepository stores the pair at path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

// Load reads the saved pair without any expiry validation.
func (r *FileRepository) Load(ctx context.Context) (*models.TokenPair, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}

	var pair models.TokenPair
	if err := json.Unmarshal(data, &pair); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.path, err)
	}
	if pair.RefreshToken == "" {
		return nil, ErrNotFound
	}
	return &pair, nil
}

// Save writes the pair through a temporary file and a rename so a crash
// never leaves a half-written cache behind. The file is private to the user.
func (r *FileRepository) Save(ctx context.Context, pair *models.TokenPair) error {
	data, err := json.MarshalIndent(pair, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".token-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("save %s: %w", r.path, err)
	}
	return nil
}
