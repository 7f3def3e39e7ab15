package sessions

import "strings"

const (
	// Claude Code encodes the session's working directory into the project
	// directory name by replacing path separators with dashes.
	tmpDirPrefix = "-tmp-"
	tmpLabel     = "/tmp"
	homeLabel    = "~"
	projectsTok  = "projects"
)

// ProjectDisplayName converts an encoded project directory name into the
// short name shown in reports. "-home-alice-projects-foo" becomes "foo",
// "-home-alice" becomes "~", temp-dir sessions collapse under "/tmp", and
// anything that doesn't match the encoding passes through unchanged.
func ProjectDisplayName(raw string) string {
	if raw == "-tmp" || strings.HasPrefix(raw, tmpDirPrefix) {
		return tmpLabel
	}

	var tokens []string
	for _, tok := range strings.Split(raw, "-") {
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}

	if len(tokens) < 2 || tokens[0] != "home" {
		return raw
	}

	// Drop "home" and the username.
	rest := tokens[2:]
	if len(rest) > 0 && rest[0] == projectsTok {
		rest = rest[1:]
	}
	if len(rest) == 0 {
		return homeLabel
	}
	return strings.Join(rest, "-")
}
