package util

import (
	"regexp"
	"strings"
)

const uploadDir = "/uploads/"

var whitespace = regexp.MustCompile(`[\s\p{Zs}\x{FEFF}]+`)

// UploadPath derives the storage path of a file from its name. Nothing is
// written there, it only identifies where the upload would live
func UploadPath(name string) string {
	return uploadDir + strings.ToLower(whitespace.ReplaceAllString(name, "_"))
}
