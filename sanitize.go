package main

import "regexp"

var illegalFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// SanitizeFilename removes characters that are not allowed in file names on
// common filesystems. Nothing else is touched.
func SanitizeFilename(title string) string {
	return illegalFilenameChars.ReplaceAllString(title, "")
}
