package site

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	derrors "git.home.luguber.info/inful/tagpages/internal/foundation/errors"
	"git.home.luguber.info/inful/tagpages/internal/frontmatter"
	"git.home.luguber.info/inful/tagpages/internal/logfields"
)

// Load reads every non-hidden file below s.Source into s.Files.
func (s *Site) Load() error {
	info, err := os.Stat(s.Source)
	if err != nil {
		return derrors.WrapError(err, derrors.CategoryFileSystem, "source directory not readable").
			WithContext("source", s.Source).
			Build()
	}
	if !info.IsDir() {
		return derrors.ValidationError("source is not a directory").
			WithContext("source", s.Source).
			Build()
	}

	err = filepath.WalkDir(s.Source, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path != s.Source && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(s.Source, path)
		if err != nil {
			return err
		}
		f, err := readFile(path, filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		s.Files.Add(f)
		slog.Debug("Loaded file", logfields.Path(f.Path))
		return nil
	})
	if err != nil {
		if _, ok := derrors.AsClassified(err); ok {
			return err
		}
		return derrors.WrapError(err, derrors.CategoryFileSystem, "walk source directory").
			WithContext("source", s.Source).
			Build()
	}

	slog.Info("Source loaded", slog.String("source", s.Source), logfields.Count(len(s.Files)))
	return nil
}

func readFile(path, rel string) (*File, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- path comes from walking the configured source
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryFileSystem, "read source file").
			WithContext("path", rel).
			Build()
	}

	doc, err := frontmatter.Parse(content)
	if err != nil {
		msg := "invalid front matter"
		if errors.Is(err, frontmatter.ErrMissingClosingDelimiter) {
			msg = "unterminated front matter"
		}
		return nil, derrors.WrapError(err, derrors.CategoryValidation, msg).
			WithContext("path", rel).
			Build()
	}

	f := NewFile(rel, doc.Fields, doc.Body)
	if info, err := os.Stat(path); err == nil {
		f.Mode = info.Mode().Perm()
	}
	return f, nil
}
