// Package translations holds the UI strings of the editor front-ends and the
// listing PDF, one JSON file per component and language.
package translations

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"regexp"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"
)

//go:embed editor/*.json listing/*.json
var files embed.FS

// Languages lists all supported language codes.
var Languages = []string{"en", "es", "de", "fr", "sl"}

// Components lists the translated components.
var Components = []string{"editor", "listing"}

// Valid reports whether lang is a supported language code.
func Valid(lang string) bool {
	return slices.Contains(Languages, lang)
}

// table maps language -> key -> text for one component.
type table map[string]map[string]string

func (t table) lookup(lang, key string) (string, bool) {
	if v, ok := t[lang][key]; ok {
		return v, true
	}
	v, ok := t["en"][key]
	return v, ok
}

var (
	mu     sync.Mutex
	tables = make(map[string]table)
)

func load(component string) table {
	mu.Lock()
	defer mu.Unlock()

	if t, ok := tables[component]; ok {
		return t
	}
	t := make(table)
	for _, lang := range Languages {
		if m, err := GetComponentTranslations(component, lang); err == nil {
			t[lang] = m
		}
	}
	tables[component] = t
	return t
}

// GetString returns the raw text for key, falling back to English and then
// to the key itself.
func GetString(component, lang, key string) string {
	if v, ok := load(component).lookup(lang, key); ok {
		return v
	}
	return key
}

var placeholder = regexp.MustCompile(`\{(\d+)\}`)

// T is GetString with {0}, {1}, ... replaced by args.
func T(component, lang, key string, args ...any) string {
	text := GetString(component, lang, key)
	if len(args) == 0 {
		return text
	}
	return placeholder.ReplaceAllStringFunc(text, func(m string) string {
		i, err := strconv.Atoi(m[1 : len(m)-1])
		if err != nil || i >= len(args) {
			return m
		}
		return fmt.Sprint(args[i])
	})
}

// GetTranslationsJS renders a component as a JavaScript object literal keyed
// by language, for injection into HTML pages:
//
//	{
//	  en: {
//	    "assemble": "Assemble",
//	    ...
//	  },
//	  es: { ... }
//	}
func GetTranslationsJS(component string) string {
	t := load(component)
	if len(t) == 0 {
		return "{}"
	}

	var b strings.Builder
	b.WriteString("{\n")
	first := true
	for _, lang := range Languages {
		m, ok := t[lang]
		if !ok {
			continue
		}
		if !first {
			b.WriteString(",\n")
		}
		first = false

		fmt.Fprintf(&b, "  %s: {\n", lang)
		keys := sortedKeys(m)
		for i, k := range keys {
			kj, _ := json.Marshal(k)
			vj, _ := json.Marshal(m[k])
			sep := ","
			if i == len(keys)-1 {
				sep = ""
			}
			fmt.Fprintf(&b, "    %s: %s%s\n", kj, vj, sep)
		}
		b.WriteString("  }")
	}
	b.WriteString("\n}")
	return b.String()
}

// GetComponentTranslations reads one component's strings for lang.
func GetComponentTranslations(component, lang string) (map[string]string, error) {
	if !slices.Contains(Components, component) {
		return nil, fmt.Errorf("unknown component: %s", component)
	}
	data, err := files.ReadFile(path.Join(component, lang+".json"))
	if err != nil {
		return nil, fmt.Errorf("language %s not found for component %s", lang, component)
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("invalid JSON for %s/%s: %w", component, lang, err)
	}
	return m, nil
}

// GetComponentKeys returns the sorted English keys of a component.
func GetComponentKeys(component string) ([]string, error) {
	m, err := GetComponentTranslations(component, "en")
	if err != nil {
		return nil, err
	}
	return sortedKeys(m), nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
