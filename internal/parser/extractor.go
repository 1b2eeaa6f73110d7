package parser

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Fallback values substituted when extraction finds nothing usable. Kept as
// named constants so the never-fails policy stays auditable.
const (
	FallbackTitle       = "Ideia sem título"
	FallbackDescription = "Descrição não informada"
)

// Fields holds everything the extractor could pull out of one section.
// Every field is best-effort; absent labeled fields stay empty.
type Fields struct {
	Titulo         string
	Descricao      string
	Gancho         string
	CTA            string
	Roteiro        string
	Legenda        string
	Prazo          string
	DataPublicacao string
	LinksMidia     []string
}

var (
	labelPrefix     = regexp.MustCompile(`(?i)^(?:t[íi]tulo|title|nome|ideia|item|os)\s*:\s*`)
	descLabelPrefix = regexp.MustCompile(`(?i)^(?:descri[çc][ãa]o|description|desc)\s*:\s*`)
	bulletPrefix    = regexp.MustCompile(`^\d+\.\s*`)

	ganchoPattern  = regexp.MustCompile(`(?im)^\s*(?:gancho|hook)\s*:\s*(.+)$`)
	ctaPattern     = regexp.MustCompile(`(?im)^\s*(?:cta|chamada|call to action)\s*:\s*(.+)$`)
	roteiroPattern = regexp.MustCompile(`(?im)^\s*(?:roteiro|script)\s*:\s*(.+)$`)
	legendaPattern = regexp.MustCompile(`(?im)^\s*(?:legenda|caption)\s*:\s*(.+)$`)
	prazoPattern   = regexp.MustCompile(`(?im)^\s*(?:prazo|deadline|entrega)\s*:\s*(.+)$`)
	dataPattern    = regexp.MustCompile(`(?im)^\s*(?:data de publica[çc][ãa]o|publica[çc][ãa]o|publish date)\s*:\s*(.+)$`)

	urlPattern = regexp.MustCompile(`https?://[^\s<>()\[\]"']+`)
)

// allowedMediaHosts is the allow-list of file sharing hosts; links anywhere
// else are silently dropped.
var allowedMediaHosts = []string{
	"drive.google.com",
	"docs.google.com",
	"dropbox.com",
	"wetransfer.com",
	"onedrive",
	"1drv.ms",
}

// ExtractFields pulls labeled fields out of one section. It never fails:
// malformed input degrades to fallback values, not errors. That is deliberate
// for noisy human-authored text.
func ExtractFields(section string) Fields {
	lines := nonEmptyLines(section)

	titulo, titleIdx := extractTitle(lines)
	descricao := extractDescription(lines, titleIdx)

	return Fields{
		Titulo:         titulo,
		Descricao:      descricao,
		Gancho:         firstMatch(ganchoPattern, section),
		CTA:            firstMatch(ctaPattern, section),
		Roteiro:        firstMatch(roteiroPattern, section),
		Legenda:        firstMatch(legendaPattern, section),
		Prazo:          firstMatch(prazoPattern, section),
		DataPublicacao: firstMatch(dataPattern, section),
		LinksMidia:     extractMediaLinks(section),
	}
}

// extractTitle returns the first line whose stripped form lands in the
// (10, 100) character window, and the index of the line it came from. When no
// line qualifies it falls back to the raw first line, then to the placeholder.
func extractTitle(lines []string) (string, int) {
	for i, line := range lines {
		stripped := bulletPrefix.ReplaceAllString(labelPrefix.ReplaceAllString(line, ""), "")
		stripped = strings.TrimSpace(stripped)
		n := utf8.RuneCountInString(stripped)
		if n > 10 && n < 100 {
			return stripped, i
		}
	}

	if len(lines) > 0 {
		return lines[0], 0
	}
	return FallbackTitle, -1
}

// extractDescription returns the first line after the title whose stripped
// form is longer than 20 characters; if none exists the remaining lines are
// joined. A leading "Descrição:"/"Description:" label is removed.
func extractDescription(lines []string, titleIdx int) string {
	for i := titleIdx + 1; i < len(lines); i++ {
		stripped := strings.TrimSpace(descLabelPrefix.ReplaceAllString(lines[i], ""))
		if utf8.RuneCountInString(stripped) > 20 {
			return stripped
		}
	}

	var rest []string
	for i := titleIdx + 1; i < len(lines); i++ {
		rest = append(rest, lines[i])
	}
	if joined := strings.TrimSpace(strings.Join(rest, " ")); joined != "" {
		return joined
	}
	return FallbackDescription
}

func extractMediaLinks(section string) []string {
	matches := urlPattern.FindAllString(section, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	var links []string
	for _, raw := range matches {
		url := strings.TrimRight(raw, ".,;")
		if seen[url] || !isAllowedMediaHost(url) {
			continue
		}
		seen[url] = true
		links = append(links, url)
	}
	return links
}

func isAllowedMediaHost(url string) bool {
	lowered := strings.ToLower(url)
	for _, host := range allowedMediaHosts {
		if strings.Contains(lowered, host) {
			return true
		}
	}
	return false
}

func firstMatch(pattern *regexp.Regexp, text string) string {
	if m := pattern.FindStringSubmatch(text); len(m) > 1 {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func nonEmptyLines(section string) []string {
	var lines []string
	for _, line := range strings.Split(section, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}
