// Package species normalizes genome names. Release databases spell the same
// organism several ways ("Homo sapiens", "homo_sapiens", "human"); checks that
// match entities across databases go through Canonical and ResolveAlias first.
package species

import (
	"strings"
	"sync"
)

// Canonical lower-cases a raw genome name and collapses internal whitespace
// to single underscores: "Homo sapiens" -> "homo_sapiens".
func Canonical(name string) string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(name)))
	return strings.Join(fields, "_")
}

// aliases maps historical and informal names to the production name. Many
// aliases may point at one canonical name, never the other way around.
var aliases = map[string]string{
	"human":                   "homo_sapiens",
	"mouse":                   "mus_musculus",
	"rat":                     "rattus_norvegicus",
	"zebrafish":               "danio_rerio",
	"chicken":                 "gallus_gallus",
	"dog":                     "canis_lupus_familiaris",
	"canis_familiaris":        "canis_lupus_familiaris",
	"fruitfly":                "drosophila_melanogaster",
	"worm":                    "caenorhabditis_elegans",
	"yeast":                   "saccharomyces_cerevisiae",
	"pig":                     "sus_scrofa",
	"cow":                     "bos_taurus",
	"chimp":                   "pan_troglodytes",
	"chimpanzee":              "pan_troglodytes",
	"gorilla":                 "gorilla_gorilla",
	"gorilla_gorilla_gorilla": "gorilla_gorilla",
	"macaque":                 "macaca_mulatta",
	"rhesus":                  "macaca_mulatta",
	"xenopus":                 "xenopus_tropicalis",
	"fugu":                    "takifugu_rubripes",
	"tetraodon":               "tetraodon_nigroviridis",
}

var mu sync.RWMutex

// ResolveAlias maps a name to its canonical production name. The function is
// total: an unknown name comes back canonicalized but otherwise unchanged.
// Resolution is idempotent because alias values are themselves canonical.
func ResolveAlias(name string) string {
	canonical := Canonical(name)
	mu.RLock()
	defer mu.RUnlock()
	if resolved, ok := aliases[canonical]; ok {
		return resolved
	}
	return canonical
}

// Register adds an alias for hosts that carry extra naming history. The
// canonical side is itself resolved first, so registering an alias of an
// alias cannot create a resolution chain and resolution stays idempotent.
func Register(alias, canonical string) {
	resolved := ResolveAlias(canonical)
	mu.Lock()
	defer mu.Unlock()
	aliases[Canonical(alias)] = resolved
}
