// Package styles discovers resume CSS themes from a directory. A theme
// file declares itself with a banner comment on its first line:
//
//	/* Modern Blue $ https://github.com/someone */
//
// The text before the dollar sign is the style name, the text after is
// a link crediting the author. Files without the banner are ignored.
package styles

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Style is one discovered CSS theme.
type Style struct {
	Name       string
	File       string
	AuthorLink string
}

// Registry holds the themes discovered from a single directory.
type Registry struct {
	dir    string
	styles map[string]Style
}

// Discover scans dir for CSS files carrying the style banner and builds
// a registry from them. Subdirectories are not descended into.
func Discover(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &DiscoverError{Dir: dir, Cause: err}
	}

	reg := &Registry{dir: dir, styles: make(map[string]Style)}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		style, ok := parseBanner(filepath.Join(dir, entry.Name()))
		if !ok {
			continue
		}
		style.File = entry.Name()
		reg.styles[style.Name] = style
	}
	return reg, nil
}

// parseBanner reads the first line of path and extracts the style name
// and author link from the banner comment, if present.
func parseBanner(path string) (Style, bool) {
	f, err := os.Open(path)
	if err != nil {
		return Style{}, false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return Style{}, false
	}
	line := strings.TrimSpace(scanner.Text())
	if !strings.HasPrefix(line, "/*") || !strings.HasSuffix(line, "*/") {
		return Style{}, false
	}
	content := strings.TrimSpace(line[2 : len(line)-2])
	name, link, found := strings.Cut(content, "$")
	if !found {
		return Style{}, false
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Style{}, false
	}
	return Style{Name: name, AuthorLink: strings.TrimSpace(link)}, true
}

// Names returns the discovered style names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.styles))
	for name := range r.styles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Choices formats the discovered styles for display, crediting authors.
func (r *Registry) Choices() []string {
	choices := make([]string, 0, len(r.styles))
	for _, name := range r.Names() {
		style := r.styles[name]
		choices = append(choices, fmt.Sprintf("%s (style author -> %s)", style.Name, style.AuthorLink))
	}
	return choices
}

// Path resolves a style name to the path of its CSS file.
func (r *Registry) Path(name string) (string, error) {
	style, ok := r.styles[name]
	if !ok {
		return "", &UnknownStyleError{Name: name}
	}
	return filepath.Join(r.dir, style.File), nil
}

// CSS loads the full stylesheet for a style name.
func (r *Registry) CSS(name string) ([]byte, error) {
	path, err := r.Path(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &DiscoverError{Dir: r.dir, Cause: err}
	}
	return data, nil
}

// Len reports how many styles were discovered.
func (r *Registry) Len() int {
	return len(r.styles)
}
