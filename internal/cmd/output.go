package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/eljojo/riscpad/internal/project"
	"github.com/eljojo/riscpad/internal/translations"
)

func green(s string) string  { return colorize("32", s) }
func yellow(s string) string { return colorize("33", s) }
func red(s string) string    { return colorize("31", s) }

func colorize(code, s string) string {
	if os.Getenv("NO_COLOR") != "" {
		return s
	}
	if fi, err := os.Stdout.Stat(); err != nil || fi.Mode()&os.ModeCharDevice == 0 {
		return s
	}
	return "\x1b[" + code + "m" + s + "\x1b[0m"
}

func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

func formatDuration(d time.Duration) string {
	days := int(d.Hours() / 24)
	if days > 365 {
		years := days / 365
		return fmt.Sprintf("%d year%s", years, plural(years))
	}
	if days > 30 {
		months := days / 30
		return fmt.Sprintf("%d month%s", months, plural(months))
	}
	if days > 0 {
		return fmt.Sprintf("%d day%s", days, plural(days))
	}
	hours := int(d.Hours())
	if hours > 0 {
		return fmt.Sprintf("%d hour%s", hours, plural(hours))
	}
	return "just now"
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// checkLanguage rejects unsupported --language values. Empty is allowed.
func checkLanguage(lang string) error {
	if lang != "" && !translations.Valid(lang) {
		return fmt.Errorf("unsupported language %q (supported: %s)", lang, strings.Join(translations.Languages, ", "))
	}
	return nil
}

// resolveLanguage picks the flag value, then the workspace setting, then English.
func resolveLanguage(flag string, p *project.Project) string {
	if flag != "" {
		return flag
	}
	if p != nil && p.Language != "" {
		return p.Language
	}
	return "en"
}

// findProject loads the workspace enclosing the current directory, or nil.
func findProject() (*project.Project, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting current directory: %w", err)
	}
	dir, err := project.FindProjectDir(cwd)
	if err != nil {
		return nil, nil
	}
	p, err := project.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("loading workspace: %w", err)
	}
	return p, nil
}

// requireProject is findProject for commands that need a workspace.
func requireProject() (*project.Project, error) {
	p, err := findProject()
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("no riscpad workspace found (run 'riscpad init' first)")
	}
	return p, nil
}
