package util

import (
	"strconv"
	"strings"
)

// MaskToken reduce un bearer token a algo seguro para logs: primeros y últimos
// 4 caracteres más el largo total. Tokens cortos se ocultan completos.
func MaskToken(s string) string {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return ""
	case len(s) <= 12:
		return "***"
	}
	return s[:4] + "…" + s[len(s)-4:] + "(" + strconv.Itoa(len(s)) + ")"
}
