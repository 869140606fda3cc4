package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Banner printed at the start of an interactive run
const Banner = `
    ╔════════════════════════════════════════════╗
    ║ vkbackup · VK profile photos → Yandex Disk ║
    ╚════════════════════════════════════════════╝
`

var (
	mu           sync.Mutex
	out          io.Writer = os.Stdout
	quiet        bool
	colorEnabled = true
)

// Color functions for terminal output
var (
	Cyan    = colorize("\033[36m%s\033[0m")
	Yellow  = colorize("\033[33m%s\033[0m")
	Red     = colorize("\033[31m%s\033[0m")
	Green   = colorize("\033[32m%s\033[0m")
	Magenta = colorize("\033[35m%s\033[0m")
	Dim     = colorize("\033[2m%s\033[0m")
)

// colorize returns a function that wraps text with ANSI color codes
// unless colour output is disabled
func colorize(colorString string) func(string) string {
	return func(text string) string {
		mu.Lock()
		enabled := colorEnabled
		mu.Unlock()
		if !enabled {
			return text
		}
		return fmt.Sprintf(colorString, text)
	}
}

// SetOutput redirects terminal output, returning the previous writer
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	return prev
}

// SetQuiet suppresses everything except errors
func SetQuiet(q bool) {
	mu.Lock()
	defer mu.Unlock()
	quiet = q
}

// SetColor enables or disables ANSI colours
func SetColor(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	colorEnabled = enabled
}

// IsQuiet reports whether quiet mode is on
func IsQuiet() bool {
	mu.Lock()
	defer mu.Unlock()
	return quiet
}

// Output returns the current terminal writer
func Output() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	return out
}

func printf(force bool, format string, args ...interface{}) {
	mu.Lock()
	w, q := out, quiet
	mu.Unlock()
	if q && !force {
		return
	}
	fmt.Fprintf(w, format, args...)
}

// PrintBanner prints the banner with color
func PrintBanner() {
	printf(false, "%s", Cyan(Banner))
}

// PrintStage prints a pipeline stage line
func PrintStage(msg string) {
	printf(false, "%s %s\n", Magenta("→"), msg)
}

// PrintError prints an error message in red; shown even in quiet mode
func PrintError(msg string, args ...interface{}) {
	if len(args) > 0 {
		printf(true, "%s\n", Red(msg+": "+fmt.Sprintf("%v", args[0])))
	} else {
		printf(true, "%s\n", Red(msg))
	}
}

// PrintSuccess prints a success message in green
func PrintSuccess(msg string) {
	printf(false, "%s\n", Green(msg))
}

// PrintInfo prints a label/value pair
func PrintInfo(label string, value string) {
	printf(false, "%s: %s\n", Cyan(label), Yellow(value))
}

// PrintWarning prints a warning message in yellow
func PrintWarning(msg string, args ...interface{}) {
	if len(args) > 0 {
		printf(false, "%s\n", Yellow(msg+": "+fmt.Sprintf("%v", args[0])))
	} else {
		printf(false, "%s\n", Yellow(msg))
	}
}

// PrintHighlight prints a highlighted message in magenta
func PrintHighlight(msg string) {
	printf(false, "%s\n", Magenta(msg))
}
