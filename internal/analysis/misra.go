package analysis

import (
	"bufio"
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/lvezzaro/buildsweep/internal/filesystem"
)

// Rules maps a MISRA rule number ("10.3") to its category
// (Mandatory, Required, Advisory).
type Rules map[string]string

var misraIDPattern = regexp.MustCompile(`misra-c2012-(\d+\.\d+)`)

// LoadRules parses a MISRA headline file of "Rule <number>\t<category>"
// lines. A missing file yields empty rules so that engine severities are used
// instead; only a read failure on an existing file is an error.
func LoadRules(fsys filesystem.FileSystem, path string) (Rules, error) {
	rules := Rules{}
	if path == "" || !fsys.Exists(path) {
		return rules, nil
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file %s: %w", path, err)
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "Rule ") {
			continue
		}

		rest := strings.TrimSpace(line[len("Rule "):])
		parts := strings.SplitN(rest, "\t", 2)
		if len(parts) < 2 {
			parts = strings.Fields(rest)
			if len(parts) < 2 {
				continue
			}
			parts = []string{parts[0], strings.Join(parts[1:], " ")}
		}

		id := strings.TrimSpace(parts[0])
		category := strings.TrimSpace(parts[1])
		if id != "" && category != "" {
			rules[id] = category
		}
	}

	return rules, nil
}

// SeverityFor resolves the severity for a finding: the MISRA category when
// the finding ID is a misra-c2012 rule known to the rules set, otherwise the
// engine's own severity.
func (r Rules) SeverityFor(findingID, engineSeverity string) string {
	if m := misraIDPattern.FindStringSubmatch(findingID); m != nil {
		if category, ok := r[m[1]]; ok {
			return category
		}
	}
	return engineSeverity
}
