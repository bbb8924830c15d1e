package library

import (
	"os"
	"path/filepath"
	"strings"
)

// Extensions considered scannable media. The scanner's engine has the
// final say; this only keeps the walk from probing cover art and cue
// sheets.
var mediaExts = map[string]bool{
	".mp3":  true,
	".flac": true,
	".ogg":  true,
	".oga":  true,
	".opus": true,
	".m4a":  true,
	".mp4":  true,
	".aac":  true,
	".wav":  true,
	".wma":  true,
}

// isMediaFile reports whether path looks like a scannable media file.
func isMediaFile(path string) bool {
	return mediaExts[strings.ToLower(filepath.Ext(path))]
}

// fileInfo holds one discovered media file.
type fileInfo struct {
	path   string
	mtime  int64
	source string
}

// discoverFiles walks the source directories and returns all media files
// found, plus a path set for the deletion phase. Walk and stat errors are
// skipped so one unreadable directory does not abort the scan.
func discoverFiles(sources []string, progress chan<- ScanProgress) ([]fileInfo, map[string]string) {
	var files []fileInfo
	for _, src := range sources {
		_ = filepath.WalkDir(src, func(path string, d os.DirEntry, walkErr error) error {
			if walkErr != nil {
				return nil //nolint:nilerr // intentionally skipping errors
			}
			if d.IsDir() || !isMediaFile(path) {
				return nil
			}
			info, infoErr := d.Info()
			if infoErr != nil {
				return nil //nolint:nilerr // intentionally skipping errors
			}
			files = append(files, fileInfo{
				path:   path,
				mtime:  info.ModTime().Unix(),
				source: src,
			})
			if len(files)%100 == 0 {
				progress <- ScanProgress{Phase: PhaseScanning, Current: len(files)}
			}
			return nil
		})
	}

	discovered := make(map[string]string, len(files))
	for _, f := range files {
		discovered[f.path] = f.source
	}
	return files, discovered
}

// relativePath returns path relative to source, or path unchanged if it is
// not under source.
func relativePath(source, path string) string {
	rel, err := filepath.Rel(source, path)
	if err != nil {
		return path
	}
	return rel
}
