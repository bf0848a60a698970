package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mattn/go-isatty"

	"krimiwiki/internal/audit"
)

type statusKind int

const (
	statusOK statusKind = iota
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const (
	statusLabelWidth = 12
	statusIndent     = "  "
)

var statusStyles = map[statusKind]struct{ tag, color string }{
	statusOK:    {"OK", ansiGreen},
	statusWarn:  {"WARN", ansiYellow},
	statusError: {"ERROR", ansiRed},
}

func paint(s, color string, colorize bool) string {
	if !colorize || color == "" {
		return s
	}
	return color + s + ansiReset
}

// renderStatusLine formats "  Label:       [TAG] message".
func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	style := statusStyles[kind]
	status := "[" + style.tag + "]"
	if message != "" {
		status += " " + message
	}
	line := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", status)
	return paint(line, style.color, colorize)
}

// renderAuditSummary describes an audit run for the terminal.
func renderAuditSummary(report *audit.Report, workDir string, wroteFiles bool, colorize bool) []string {
	header := "== " + report.Profile.Name + " audit =="
	lines := []string{paint(header, ansiBlue, colorize)}

	status := func(label string, kind statusKind, message string) {
		lines = append(lines, renderStatusLine(label, kind, message, colorize))
	}

	if dropped := report.Pages - len(report.Records); dropped > 0 {
		status("Pages", statusWarn, fmt.Sprintf("%d read, %d not in the episode sequence", report.Pages, dropped))
	} else {
		status("Pages", statusOK, fmt.Sprintf("%d read", report.Pages))
	}

	if n := len(report.Episodes()); n > 0 {
		status("Episodes", statusOK, strconv.Itoa(n))
	} else {
		status("Episodes", statusError, "none found")
	}

	if n := len(report.Findings); n > 0 {
		status("Findings", statusWarn, strconv.Itoa(n))
	} else {
		status("Findings", statusOK, "none")
	}

	if wroteFiles {
		for _, name := range report.Files() {
			lines = append(lines, statusIndent+paint(fmt.Sprintf("%-*s %s", statusLabelWidth, "Wrote:", filepath.Join(workDir, name)), ansiBlue, colorize))
		}
	}
	return lines
}

func shouldColorize(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
