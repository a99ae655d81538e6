package config

import (
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
)

// percentVar matches a Windows-style %NAME% reference.
var percentVar = regexp.MustCompile(`%([^%]+)%`)

// expandPath resolves environment references and a leading ~ in p.
// %NAME% references are expanded on Windows only; unknown names are kept.
func expandPath(p string) string {
	if p == "" {
		return p
	}

	p = os.ExpandEnv(p)
	if runtime.GOOS == "windows" {
		p = percentVar.ReplaceAllStringFunc(p, func(ref string) string {
			if val, ok := os.LookupEnv(strings.Trim(ref, "%")); ok {
				return val
			}
			return ref
		})
	}

	rest, ok := strings.CutPrefix(p, "~")
	if !ok {
		return p
	}
	if rest != "" && rest[0] != '/' && (runtime.GOOS != "windows" || rest[0] != '\\') {
		// ~user is not supported
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, rest)
}
