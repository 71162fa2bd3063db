// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package cliout

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Format represents the output format.
type Format string

const (
	// FormatDefault is the default human-readable format.
	FormatDefault Format = "default"
	// FormatJSON is JSON format.
	FormatJSON Format = "json"
	// FormatYAML is YAML format.
	FormatYAML Format = "yaml"
)

// ANSI color codes for consistent styling
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"
	Dim   = "\033[2m"

	BrightRed    = "\033[91m"
	BrightGreen  = "\033[92m"
	BrightYellow = "\033[93m"
	BrightBlue   = "\033[94m"
)

// Unicode symbols and their ASCII fallbacks.
const (
	SymbolCheck   = "✓"
	SymbolCross   = "✗"
	SymbolWarning = "⚠"
	SymbolInfo    = "ℹ"

	ASCIICheck   = "[+]"
	ASCIICross   = "[-]"
	ASCIIWarning = "[!]"
	ASCIIInfo    = "[i]"
)

var (
	// mu protects the settings below.
	mu           sync.RWMutex
	globalFormat = FormatDefault
	noColor      = detectNoColor()
)

// supportsUnicode detects if the terminal supports Unicode symbols.
var supportsUnicode = detectUnicodeSupport()

func detectNoColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return true
	}
	return !term.IsTerminal(int(os.Stdout.Fd()))
}

func detectUnicodeSupport() bool {
	if runtime.GOOS != "windows" {
		return true
	}
	// Windows Terminal, VS Code, ConEmu and PowerShell render Unicode; old
	// cmd.exe consoles do not.
	for _, env := range []string{"WT_SESSION", "ConEmuPID", "PSModulePath", "TERM"} {
		if os.Getenv(env) != "" {
			return true
		}
	}
	return os.Getenv("TERM_PROGRAM") == "vscode"
}

func getIcon(unicode, ascii string) string {
	if supportsUnicode {
		return unicode
	}
	return ascii
}

// ForceColor enables color output regardless of terminal detection.
func ForceColor() {
	mu.Lock()
	noColor = false
	mu.Unlock()
}

// NoColor disables color output.
func NoColor() {
	mu.Lock()
	noColor = true
	mu.Unlock()
}

// SetColorMode sets color output to "always", "never", or "auto", which
// enables it only when stdout is a terminal and NO_COLOR is unset.
func SetColorMode(mode string) error {
	switch strings.ToLower(mode) {
	case "auto", "":
		if detectNoColor() {
			NoColor()
		} else {
			ForceColor()
		}
	case "always":
		ForceColor()
	case "never":
		NoColor()
	default:
		return fmt.Errorf("invalid color mode %q (valid options: auto, always, never)", mode)
	}
	return nil
}

func color(code, s string) string {
	mu.RLock()
	disabled := noColor
	mu.RUnlock()
	if disabled {
		return s
	}
	return code + s + Reset
}

// SetFormat sets the global output format.
func SetFormat(format string) error {
	var f Format
	switch strings.ToLower(format) {
	case "default", "":
		f = FormatDefault
	case "json":
		f = FormatJSON
	case "yaml", "yml":
		f = FormatYAML
	default:
		return fmt.Errorf("invalid output format: %s (valid options: default, json, yaml)", format)
	}
	mu.Lock()
	globalFormat = f
	mu.Unlock()
	return nil
}

// GetFormat returns the current output format.
func GetFormat() Format {
	mu.RLock()
	defer mu.RUnlock()
	return globalFormat
}

// IsStructured returns true if the output format is JSON or YAML.
func IsStructured() bool {
	f := GetFormat()
	return f == FormatJSON || f == FormatYAML
}

// PrintJSON prints data as indented JSON to stdout.
func PrintJSON(data interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// PrintYAML prints data as YAML to stdout.
func PrintYAML(data interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return err
	}
	return encoder.Close()
}

// Print outputs data in the configured format.
// For default format, uses the formatter function.
func Print(data interface{}, formatter func()) error {
	switch GetFormat() {
	case FormatJSON:
		return PrintJSON(data)
	case FormatYAML:
		return PrintYAML(data)
	default:
		formatter()
		return nil
	}
}

// Header prints a bold header with a divider
func Header(text string) {
	fmt.Printf("\n%s\n", color(Bold, text))
	fmt.Println(strings.Repeat("=", len(text)))
}

// Success prints a success message with green checkmark
func Success(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", color(BrightGreen, getIcon(SymbolCheck, ASCIICheck)), fmt.Sprintf(format, args...))
}

// Error prints an error message with red X
func Error(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", color(BrightRed, getIcon(SymbolCross, ASCIICross)), fmt.Sprintf(format, args...))
}

// Warning prints a warning message with yellow triangle
func Warning(format string, args ...interface{}) {
	fmt.Printf("%s  %s\n", color(BrightYellow, getIcon(SymbolWarning, ASCIIWarning)), fmt.Sprintf(format, args...))
}

// Info prints an info message with blue info icon
func Info(format string, args ...interface{}) {
	fmt.Printf("%s  %s\n", color(BrightBlue, getIcon(SymbolInfo, ASCIIInfo)), fmt.Sprintf(format, args...))
}

// Label prints a label and value pair
func Label(label, value string) {
	fmt.Printf("   %s %s\n", color(Dim, fmt.Sprintf("%-14s", label+":")), value)
}

// Newline prints a blank line
func Newline() {
	fmt.Println()
}

// Status returns a status word colored by meaning.
func Status(status string) string {
	switch strings.ToLower(status) {
	case "ok", "running", "success":
		return color(BrightGreen, status)
	case "error", "failed", "not running":
		return color(BrightRed, status)
	default:
		return status
	}
}

// TableRow represents a row in a table as a map of column header to value.
type TableRow map[string]string

// Table prints a simple table with the given headers and rows.
func Table(headers []string, rows []TableRow) {
	if len(rows) == 0 {
		return
	}

	widths := make(map[string]int)
	for _, header := range headers {
		widths[header] = len(header)
	}
	for _, row := range rows {
		for _, header := range headers {
			if len(row[header]) > widths[header] {
				widths[header] = len(row[header])
			}
		}
	}

	fmt.Print("   ")
	for _, header := range headers {
		fmt.Print(color(Bold, fmt.Sprintf("%-*s", widths[header], header)) + "  ")
	}
	fmt.Println()

	fmt.Print("   ")
	for _, header := range headers {
		fmt.Print(strings.Repeat("─", widths[header]) + "  ")
	}
	fmt.Println()

	for _, row := range rows {
		fmt.Print("   ")
		for _, header := range headers {
			fmt.Printf("%-*s  ", widths[header], row[header])
		}
		fmt.Println()
	}
}
