package picker

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/jobintake/internal/client/models"
	"github.com/gabriel-vasile/mimetype"
)

// LocalPicker reads resumes from the local filesystem. The MIME type is
// sniffed from the file content rather than trusted from the extension.
type LocalPicker struct{}

func NewLocalPicker() *LocalPicker {
	return &LocalPicker{}
}

func (p *LocalPicker) Pick(ctx context.Context, ref string) (*models.ResumeFile, error) {
	path, err := expandHome(strings.TrimSpace(ref))
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat resume: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s: %w", path, ErrNotRegularFile)
	}

	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("detect resume type: %w", err)
	}

	return &models.ResumeFile{
		Name:     filepath.Base(path),
		MIMEType: mt.String(),
		Size:     info.Size(),
		Source:   path,
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
