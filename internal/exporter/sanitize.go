package exporter

import (
	"strings"
)

// maxSheetNameLen is the sheet name length limit imposed by the xlsx format.
const maxSheetNameLen = 31

// fileNameReplacer strips characters that are illegal in file names on the
// common platforms. Replacement is deterministic: the same input always
// yields the same output.
var fileNameReplacer = strings.NewReplacer(
	"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
	"\"", "_", "<", "_", ">", "_", "|", "_",
)

// sheetNameReplacer strips characters excelize rejects in sheet names.
var sheetNameReplacer = strings.NewReplacer(
	"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "[", "_", "]", "_",
)

// SanitizeFileName makes a salesperson name safe to use as a file name.
// Surrounding whitespace is trimmed, so names differing only by padding
// collide; the exporters reject the resulting duplicate artifact names.
func SanitizeFileName(name string) string {
	return strings.TrimSpace(fileNameReplacer.Replace(name))
}

// SanitizeSheetName makes a salesperson name safe to use as a sheet name,
// applying the 31 character cap of the xlsx format.
func SanitizeSheetName(name string) string {
	s := strings.TrimSpace(sheetNameReplacer.Replace(name))
	s = strings.Trim(s, "'")
	if runes := []rune(s); len(runes) > maxSheetNameLen {
		s = string(runes[:maxSheetNameLen])
	}
	return s
}
