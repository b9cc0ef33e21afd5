package recipe

import (
	"os"
	"strings"
)

// Rewrite transforms a text file line by line. Each line is passed to fn
// without its trailing newline; the returned line replaces it. Untouched
// lines round-trip verbatim and the file's trailing-newline shape is
// preserved.
func Rewrite(path string, fn func(line string) string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	content := string(data)
	trailingNewline := strings.HasSuffix(content, "\n")
	if trailingNewline {
		content = strings.TrimSuffix(content, "\n")
	}

	var lines []string
	if content != "" {
		lines = strings.Split(content, "\n")
	}

	for i, line := range lines {
		lines[i] = fn(line)
	}

	out := strings.Join(lines, "\n")
	if trailingNewline {
		out += "\n"
	}
	return os.WriteFile(path, []byte(out), 0o644)
}

// AppendLine appends a single line to the file, creating it if needed.
func AppendLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(line + "\n")
	return err
}
