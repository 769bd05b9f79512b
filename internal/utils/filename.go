package utils

import (
	"path"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var windowsDeviceNames = map[string]struct{}{
	"CON": {}, "PRN": {}, "AUX": {}, "NUL": {},
	"COM1": {}, "COM2": {}, "COM3": {}, "COM4": {}, "COM5": {}, "COM6": {}, "COM7": {}, "COM8": {}, "COM9": {},
	"LPT1": {}, "LPT2": {}, "LPT3": {}, "LPT4": {}, "LPT5": {}, "LPT6": {}, "LPT7": {}, "LPT8": {}, "LPT9": {},
}

// SecureFilename returns a version of name that is safe to store on a
// regular file system and to use as a single path element:
//
//   - the name is NFKD normalized and non-ASCII characters are dropped
//   - path separators become spaces and whitespace runs are joined with "_"
//   - anything outside [A-Za-z0-9_.-] is removed
//   - leading and trailing "." and "_" are trimmed
//   - Windows device names get a "_" prefix
//
// The result may be empty; callers must reject that case.
//
//	SecureFilename("My cool movie.mov")     // "My_cool_movie.mov"
//	SecureFilename("../../../etc/passwd")   // "etc_passwd"
//	SecureFilename("i contain cool ümläuts.txt") // "i_contain_cool_umlauts.txt"
func SecureFilename(name string) string {
	name = norm.NFKD.String(name)

	var ascii strings.Builder
	ascii.Grow(len(name))
	for _, r := range name {
		switch {
		case r == '/' || r == '\\':
			ascii.WriteByte(' ')
		case r < 0x80:
			ascii.WriteRune(r)
		}
	}

	joined := strings.Join(strings.Fields(ascii.String()), "_")

	var clean strings.Builder
	clean.Grow(len(joined))
	for i := 0; i < len(joined); i++ {
		c := joined[i]
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' || c == '.' || c == '-' {
			clean.WriteByte(c)
		}
	}

	result := strings.Trim(clean.String(), "._")

	if result != "" {
		base, _, _ := strings.Cut(result, ".")
		if _, reserved := windowsDeviceNames[strings.ToUpper(base)]; reserved {
			result = "_" + result
		}
	}

	return result
}

// FileExtension returns the lower-cased extension of name without the dot,
// or an empty string when name has none.
func FileExtension(name string) string {
	ext := path.Ext(name)
	if ext == "" {
		return ""
	}

	return strings.ToLower(ext[1:])
}
