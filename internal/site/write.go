package site

import (
	"log/slog"
	"maps"
	"os"
	"path/filepath"

	derrors "git.home.luguber.info/inful/tagpages/internal/foundation/errors"
	"git.home.luguber.info/inful/tagpages/internal/frontmatter"
	"git.home.luguber.info/inful/tagpages/internal/logfields"
)

// Write stores every registered file below s.Destination. With clean set, the
// destination is removed first. Nothing is touched when any path is absolute
// or climbs out of the destination.
func (s *Site) Write(clean bool) error {
	paths := s.Files.Paths()
	for _, p := range paths {
		if !filepath.IsLocal(filepath.FromSlash(p)) {
			return derrors.ValidationError("output path escapes destination").
				WithContext("path", p).
				Build()
		}
	}

	if clean {
		if err := s.cleanDestination(); err != nil {
			return err
		}
	}

	for _, p := range paths {
		f := s.Files[p]
		data, err := Output(f)
		if err != nil {
			return derrors.WrapError(err, derrors.CategoryRender, "serialize page").
				WithContext("path", p).
				Build()
		}

		target := filepath.Join(s.Destination, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
			return derrors.WrapError(err, derrors.CategoryFileSystem, "create output directory").
				WithContext("path", p).
				Build()
		}
		mode := f.Mode
		if mode == 0 {
			mode = 0o644
		}
		if err := os.WriteFile(target, data, mode); err != nil {
			return derrors.WrapError(err, derrors.CategoryFileSystem, "write output file").
				WithContext("path", p).
				Build()
		}
	}

	slog.Info("Destination written", slog.String("destination", s.Destination), logfields.Count(len(s.Files)))
	return nil
}

// Output returns the bytes written for f. Generated pages that no layout has
// rendered become a front matter document describing the page.
func Output(f *File) ([]byte, error) {
	if !f.Generated || f.Rendered {
		return f.Contents, nil
	}

	fields := maps.Clone(f.FrontMatter)
	if fields == nil {
		fields = map[string]any{}
	}
	if f.Pagination != nil {
		fields[KeyPagination] = PaginationSummary(f)
	}
	if _, _, err := frontmatter.Upsert(fields, f.Contents); err != nil {
		return nil, err
	}
	return frontmatter.Render(fields, f.Contents)
}

// PaginationSummary describes a tag page with plain values and file paths.
func PaginationSummary(f *File) map[string]any {
	p := f.Pagination
	if p == nil {
		return nil
	}
	files := make([]string, 0, len(p.Items))
	for _, item := range p.Items {
		files = append(files, item.Path)
	}
	summary := map[string]any{
		"num":   p.Num,
		"pages": p.Pages,
		"tag":   p.Tag,
		"start": p.Start,
		"end":   p.End,
		"files": files,
	}
	if p.Prev != nil {
		summary["prev"] = p.Prev.Path
	}
	if p.Next != nil {
		summary["next"] = p.Next.Path
	}
	return summary
}

func (s *Site) cleanDestination() error {
	dest, err := filepath.Abs(s.Destination)
	if err != nil {
		return derrors.WrapError(err, derrors.CategoryFileSystem, "resolve destination").Build()
	}
	src, err := filepath.Abs(s.Source)
	if err != nil {
		return derrors.WrapError(err, derrors.CategoryFileSystem, "resolve source").Build()
	}
	if dest == filepath.Dir(dest) || isWithin(src, dest) {
		return derrors.ValidationError("refusing to clean destination").
			WithContext("destination", s.Destination).
			WithContext("source", s.Source).
			Build()
	}
	if err := os.RemoveAll(dest); err != nil {
		return derrors.WrapError(err, derrors.CategoryFileSystem, "clean destination").
			WithContext("destination", s.Destination).
			Build()
	}
	slog.Debug("Destination cleaned", slog.String("destination", dest))
	return nil
}

// isWithin reports whether path equals dir or lies below it.
func isWithin(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return filepath.IsLocal(rel)
}
