package tasks

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/desertthunder/visuallab/internal/models"
	"github.com/desertthunder/visuallab/internal/shared"
	"github.com/gabriel-vasile/mimetype"
)

// Inspect validates the file at path and describes it as a [models.FileRef].
//
// Only the leading bytes are read, to sniff the content type.
func Inspect(path string, opts shared.UploadConfig) (models.FileRef, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return models.FileRef{}, fmt.Errorf("%w: no file selected", shared.ErrInvalidFile)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return models.FileRef{}, fmt.Errorf("%w: %v", shared.ErrInvalidFile, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return models.FileRef{}, fmt.Errorf("%w: %s does not exist", shared.ErrInvalidFile, path)
		}
		return models.FileRef{}, fmt.Errorf("%w: %v", shared.ErrInvalidFile, err)
	}

	if info.IsDir() {
		return models.FileRef{}, fmt.Errorf("%w: %s is a directory", shared.ErrInvalidFile, path)
	}
	if info.Size() == 0 {
		return models.FileRef{}, fmt.Errorf("%w: %s is empty", shared.ErrInvalidFile, path)
	}
	if limit := opts.MaxSizeBytes(); limit > 0 && info.Size() > limit {
		return models.FileRef{}, fmt.Errorf("%w: %s is %s, limit is %s", shared.ErrInvalidFile, path,
			shared.FormatBytes(info.Size()), shared.FormatBytes(limit))
	}

	mime, err := mimetype.DetectFile(abs)
	if err != nil {
		return models.FileRef{}, fmt.Errorf("%w: failed to read %s: %v", shared.ErrInvalidFile, path, err)
	}

	if !isText(mime) {
		return models.FileRef{}, fmt.Errorf("%w: %s has binary content (%s)", shared.ErrInvalidFile, path, mime.String())
	}
	if opts.StrictCSV && !mime.Is("text/csv") {
		return models.FileRef{}, fmt.Errorf("%w: %s is not comma separated (detected %s)", shared.ErrParse, path, mime.String())
	}

	return models.NewFileRef(abs, info.Size(), mime.String()), nil
}

// ExtensionAllowed reports whether file has one of the allowed extensions.
//
// An empty allow list accepts every file.
func ExtensionAllowed(file models.FileRef, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	return slices.ContainsFunc(allowed, func(ext string) bool {
		return strings.EqualFold(ext, file.Ext())
	})
}

func isText(mime *mimetype.MIME) bool {
	for m := mime; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}
