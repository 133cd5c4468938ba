// Package keywordload is the thin, out-of-core extractor adapter: it
// scans a directory of plaintext documents for "Disease: a, b, c" lines
// and produces the keywords_map the index builder consumes. It is
// intentionally not part of the cryptographic core (spec §1) and performs
// no cryptography itself.
package keywordload

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sseindex/sseindex-server/internal/index"
)

const diseasePrefix = "disease:"

// Load scans every *.txt file directly under dir, in lexically sorted
// filename order (a fixed, reproducible order — spec §4.2 requires one),
// and extracts keywords from lines of the form "Disease: a, b, c". Ties
// between the two original loader variants (spec §9 item 2: one splits
// only the first colon field as a single keyword, the other splits on
// commas) are resolved in favor of the comma-split variant, which is the
// only one that handles a patient with multiple conditions correctly;
// this is a loader-level decision and the core stays neutral to it.
func Load(dir string) ([]index.DocKeywords, map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, err
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".txt") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var docs []index.DocKeywords
	documents := make(map[string]string, len(names))

	for _, name := range names {
		path := filepath.Join(dir, name)
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, err
		}
		documents[name] = string(content)

		var keywords []string
		scanner := bufio.NewScanner(strings.NewReader(string(content)))
		for scanner.Scan() {
			line := scanner.Text()
			lower := strings.ToLower(line)
			if !strings.HasPrefix(lower, diseasePrefix) {
				continue
			}
			_, value, found := strings.Cut(line, ":")
			if !found {
				continue
			}
			for _, d := range strings.Split(value, ",") {
				d = strings.ToLower(strings.TrimSpace(d))
				if d != "" {
					keywords = append(keywords, d)
				}
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, nil, err
		}

		if len(keywords) > 0 {
			docs = append(docs, index.DocKeywords{DocID: name, Keywords: keywords})
		}
	}

	return docs, documents, nil
}
