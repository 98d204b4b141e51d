package script

import (
	"strings"

	"github.com/zztstep/engine/internal/sim"
)

const maxCodeRefDepth = 32

// resolveCode follows a status's code-source reference chain to the owned
// bytes, defensively bounded so a corrupt save (spec.md §9 Cyclic code
// sharing) cannot loop forever.
func resolveCode(s *sim.Sim, status *sim.StatusElement) []byte {
	cur := status
	for depth := 0; depth < maxCodeRefDepth; depth++ {
		if !cur.Code.IsRef() {
			return cur.Code.Code
		}
		next := s.Board.Statuses.Get(cur.Code.Ref)
		if next == nil {
			return nil
		}
		cur = next
	}
	return nil
}

func indexCR(code []byte, start int) int {
	for i := start; i < len(code); i++ {
		if code[i] == '\r' {
			return i
		}
	}
	return len(code)
}

// parseLabelName extracts the token after a ':' or '\'' line marker, up to
// the first whitespace, ':' (receiver separator) or end of line.
func parseLabelName(line []byte) string {
	end := 0
	for end < len(line) {
		c := line[end]
		if c == ' ' || c == '\t' || c == ':' {
			break
		}
		end++
	}
	return string(line[:end])
}

func isLabelBoundary(c byte) bool {
	return !(c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'))
}

// matchesLabel reports whether target is a case-insensitive prefix of
// declared, with the following character (if any) not a letter/underscore
// (spec.md §4.3 Label semantics).
func matchesLabel(declared, target string) bool {
	if target == "" || len(target) > len(declared) {
		return false
	}
	d := strings.ToLower(declared)
	t := strings.ToLower(target)
	if !strings.HasPrefix(d, t) {
		return false
	}
	if len(d) == len(t) {
		return true
	}
	return isLabelBoundary(d[len(t)])
}

// jumpToLabel finds the first ':' line whose name matches target and
// returns the cursor at its trailing CR (or 0 for the literal name
// "restart"). ok is false when no label matches.
func jumpToLabel(code []byte, target string) (int, bool) {
	if strings.EqualFold(target, "restart") {
		return 0, true
	}
	i := 0
	for i < len(code) {
		lineEnd := indexCR(code, i)
		if i < len(code) && code[i] == ':' {
			name := parseLabelName(code[i+1 : lineEnd])
			if matchesLabel(name, target) {
				return lineEnd, true
			}
		}
		i = lineEnd + 1
	}
	return 0, false
}

// zapLabel turns the first matching ':' line into a comment ('\'').
func zapLabel(code []byte, name string) []byte {
	i := 0
	for i < len(code) {
		lineEnd := indexCR(code, i)
		if i < len(code) && code[i] == ':' {
			lbl := parseLabelName(code[i+1 : lineEnd])
			if matchesLabel(lbl, name) {
				out := append([]byte{}, code...)
				out[i] = '\''
				return out
			}
		}
		i = lineEnd + 1
	}
	return code
}

// restoreLabel is the inverse of zapLabel but reproduces the documented
// legacy quirk (spec.md §4.3 Zap and restore): the first matching '\''
// line is compared against label; every subsequent '\'' line is compared
// against receiver instead.
func restoreLabel(code []byte, label, receiver string) []byte {
	out := append([]byte{}, code...)
	i := 0
	first := true
	for i < len(out) {
		lineEnd := indexCR(out, i)
		if i < len(out) && out[i] == '\'' {
			name := parseLabelName(out[i+1 : lineEnd])
			target := label
			if !first {
				target = receiver
			}
			if matchesLabel(name, target) {
				out[i] = ':'
				first = false
			}
		}
		i = lineEnd + 1
	}
	return out
}

// objectName parses the '@' line's first word, the look-up name used by
// #bind and by-name broadcasts.
func objectName(code []byte) string {
	if len(code) == 0 || code[0] != '@' {
		return ""
	}
	lineEnd := indexCR(code, 0)
	title := string(code[1:lineEnd])
	title = strings.TrimSpace(title)
	if sp := strings.IndexAny(title, " \t"); sp >= 0 {
		return title[:sp]
	}
	return title
}

// scrollTitle returns the '@' line's full title, defaulting as spec.md
// §4.3 finalise describes.
func scrollTitle(code []byte) string {
	if len(code) == 0 || code[0] != '@' {
		return "Interaction"
	}
	lineEnd := indexCR(code, 0)
	title := strings.TrimSpace(string(code[1:lineEnd]))
	if title == "" {
		return "Interaction"
	}
	return title
}
