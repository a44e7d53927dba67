package analysis

import (
	"path/filepath"
	"strings"
)

type fileLayout struct {
	Dir       string
	FileName  string
	Extension string
}

func extractLayout(file string) fileLayout {
	result := fileLayout{}

	dir, fileName := filepath.Split(file)
	result.Dir = strings.TrimSuffix(dir, string(filepath.Separator))

	result.Extension = filepath.Ext(fileName)
	if result.Extension == fileName {
		// dot-files have no extension
		result.Extension = ""
	}
	result.FileName = strings.TrimSuffix(fileName, result.Extension)
	result.Extension = strings.TrimPrefix(result.Extension, ".")

	return result
}

func (l fileLayout) IsImageFile() bool {
	var imageExtensions = []string{
		"png", "jpg", "jpeg", "gif", "bmp", "webp",
	}

	ext := strings.ToLower(l.Extension)
	for _, imageExtension := range imageExtensions {
		if ext == imageExtension {
			return true
		}
	}

	return false
}

// Stem returns file name without directory, extension and the optional suffix
func Stem(file, suffix string) string {
	stem := extractLayout(file).FileName
	if suffix != "" {
		stem = strings.TrimSuffix(stem, suffix)
	}
	return stem
}

// IsImage reports whether the file has an image extension
func IsImage(file string) bool {
	return extractLayout(file).IsImageFile()
}
