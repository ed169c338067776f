// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// docgen renders docs/commands/*.md into techjacked man pages and tldr pages:
//   - docs/man/share/man1/techjacked-<cmd>.1 via md2man
//   - docs/tldr/techjacked-<cmd>.md from the short description and the Quick
//     examples block
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	md2man "github.com/cpuguy83/go-md2man/v2/md2man"
)

const (
	binary  = "techjacked"
	homeURL = "https://github.com/AnirudhJM24/TechJacked"
)

func main() {
	var (
		repoRoot           string
		writeOnlyIfChanged bool
	)

	flag.StringVar(&repoRoot, "root", ".", "repo root (default current dir)")
	flag.BoolVar(&writeOnlyIfChanged, "only-if-changed", true, "only write files if content changed")
	flag.Parse()

	n, err := generate(repoRoot, writeOnlyIfChanged)
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Printf("rendered %d command pages\n", n)
}

func fatalf(f string, a ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", a...)
	os.Exit(1)
}

// generate renders every command page under root and returns how many were
// processed.
func generate(root string, onlyIfChanged bool) (int, error) {
	commandsDir := filepath.Join(root, "docs", "commands")
	manOutDir := filepath.Join(root, "docs", "man", "share", "man1")
	tldrOutDir := filepath.Join(root, "docs", "tldr")

	for _, d := range []string{manOutDir, tldrOutDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return 0, fmt.Errorf("creating output dir: %w", err)
		}
	}

	entries, err := os.ReadDir(commandsDir)
	if err != nil {
		return 0, fmt.Errorf("reading commands dir %s: %w", commandsDir, err)
	}

	var processed int
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		inPath := filepath.Join(commandsDir, e.Name())
		raw, err := os.ReadFile(inPath)
		if err != nil {
			return processed, fmt.Errorf("reading %s: %w", inPath, err)
		}

		p := parsePage(strings.TrimSuffix(e.Name(), ".md"), string(raw))

		manPath := filepath.Join(manOutDir, fmt.Sprintf("%s-%s.1", binary, p.Name))
		if err := writeFileIfChanged(manPath, md2man.Render(raw), onlyIfChanged); err != nil {
			return processed, fmt.Errorf("writing man page for %s: %w", p.Name, err)
		}

		tldrPath := filepath.Join(tldrOutDir, fmt.Sprintf("%s-%s.md", binary, p.Name))
		if err := writeFileIfChanged(tldrPath, []byte(p.TLDR()), onlyIfChanged); err != nil {
			return processed, fmt.Errorf("writing TLDR for %s: %w", p.Name, err)
		}

		processed++
	}

	if processed == 0 {
		return 0, fmt.Errorf("no command markdown found under %s", commandsDir)
	}
	return processed, nil
}

func writeFileIfChanged(path string, content []byte, onlyIfChanged bool) error {
	if !onlyIfChanged {
		return os.WriteFile(path, content, 0o644)
	}
	old, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return os.WriteFile(path, content, 0o644)
		}
		return err
	}
	if bytes.Equal(bytes.TrimSpace(old), bytes.TrimSpace(content)) {
		return nil
	}
	return os.WriteFile(path, content, 0o644)
}

type example struct {
	Desc string
	Cmd  string
}

// page is the part of a command doc that feeds the tldr page.
type page struct {
	Name     string
	Title    string
	Short    string
	Examples []example
}

var (
	h1Re      = regexp.MustCompile(`(?m)^#\s+(.+)$`)
	sectionRe = regexp.MustCompile(`(?m)^##\s+(.+)$`)
)

func parsePage(name, md string) page {
	p := page{Name: name}
	if m := h1Re.FindStringSubmatch(md); m != nil {
		p.Title = strings.TrimSpace(m[1])
	}
	p.Short = firstParagraph(section(md, "short description"))
	if p.Short == "" && p.Title != "" {
		p.Short = p.Title + "."
	}
	p.Examples = parseExamples(section(md, "quick examples"))
	return p
}

// section returns the body of the "## name" section, up to the next section.
func section(md, name string) string {
	locs := sectionRe.FindAllStringSubmatchIndex(md, -1)
	for i, loc := range locs {
		if !strings.EqualFold(strings.TrimSpace(md[loc[2]:loc[3]]), name) {
			continue
		}
		end := len(md)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		return md[loc[1]:end]
	}
	return ""
}

func firstParagraph(s string) string {
	var words []string
	for _, ln := range strings.Split(s, "\n") {
		ln = strings.TrimSpace(ln)
		if ln == "" {
			if len(words) > 0 {
				break
			}
			continue
		}
		words = append(words, ln)
	}
	return strings.Join(words, " ")
}

// parseExamples reads the first fenced block. A "# ..." line describes the
// command line that follows it.
func parseExamples(s string) []example {
	const fence = "```"
	start := strings.Index(s, fence)
	if start < 0 {
		return nil
	}
	rest := s[start+len(fence):]
	// Skip the info string.
	if nl := strings.Index(rest, "\n"); nl >= 0 {
		rest = rest[nl+1:]
	}
	end := strings.Index(rest, fence)
	if end < 0 {
		return nil
	}

	var (
		exs  []example
		desc string
	)
	for _, ln := range strings.Split(rest[:end], "\n") {
		ln = strings.TrimSpace(ln)
		switch {
		case ln == "":
		case strings.HasPrefix(ln, "#"):
			desc = strings.TrimSpace(strings.TrimPrefix(ln, "#"))
		default:
			if desc == "" {
				desc = "Example"
			}
			exs = append(exs, example{Desc: desc, Cmd: strings.Join(strings.Fields(ln), " ")})
			desc = ""
		}
	}
	return exs
}

// TLDR renders the page in tldr format.
func (p page) TLDR() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s-%s\n\n", binary, p.Name)
	switch {
	case p.Short != "":
		fmt.Fprintf(&b, "> %s\n", p.Short)
	default:
		fmt.Fprintf(&b, "> %s %s\n", binary, p.Name)
	}
	fmt.Fprintf(&b, "> More information: %s.\n\n", homeURL)

	exs := p.Examples
	if len(exs) == 0 {
		exs = []example{{Desc: "Show help for the command", Cmd: fmt.Sprintf("%s %s --help", binary, p.Name)}}
	}
	for i, ex := range exs {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "- %s:\n\n`%s`\n", ex.Desc, ex.Cmd)
	}
	return b.String()
}
