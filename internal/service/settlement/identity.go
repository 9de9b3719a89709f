package settlement

import (
	"regexp"
	"strings"

	"github.com/beginal/jeongsan-admin-sub000/internal/domain/settlement"
)

var trailingSuffix = regexp.MustCompile(`(\d{4})\s*$`)

// placeholder license ids written by the source platform when a rider has
// no registered license.
func isPlaceholderLicense(id string) bool {
	switch strings.TrimSpace(id) {
	case "", "-", "0":
		return true
	}
	return false
}

// SplitSuffix splits a trailing 4-digit phone suffix off a raw rider name.
// Uploaded files often carry names like "김민수 1234".
func SplitSuffix(fullName string) (name, suffix string) {
	m := trailingSuffix.FindStringSubmatch(fullName)
	if m == nil {
		return strings.TrimSpace(fullName), ""
	}
	name = strings.TrimSpace(strings.TrimSuffix(fullName, m[0]))
	return name, m[1]
}

// Resolver derives one canonical RiderKey per rider across every uploaded
// file in a run. The binding table is built once per run and shared by the
// order aggregator and the summary merger so both produce identical keys;
// it is never reused across runs.
//
// Binding is first-seen-wins per (name, suffix) pair: the first row seen
// for a pair fixes the key, and a license id arriving later for the same
// pair does not split the rider mid-run.
type Resolver struct {
	byComposite map[string]settlement.RiderKey
}

func NewResolver() *Resolver {
	return &Resolver{byComposite: make(map[string]settlement.RiderKey)}
}

func compositeKey(name, suffix string) string {
	if suffix == "" {
		suffix = "none"
	}
	return name + "/" + suffix
}

// Resolve returns the canonical key for the given identity fields. It never
// fails; with no usable license id the composite (name, suffix) string is
// the key.
func (r *Resolver) Resolve(licenseID, fullName, explicitSuffix string) settlement.RiderKey {
	name, suffix := fullName, strings.TrimSpace(explicitSuffix)
	if suffix == "" {
		name, suffix = SplitSuffix(fullName)
	} else {
		name = strings.TrimSpace(fullName)
	}

	composite := compositeKey(name, suffix)
	if key, ok := r.byComposite[composite]; ok {
		return key
	}

	key := settlement.RiderKey(composite)
	if !isPlaceholderLicense(licenseID) {
		key = settlement.RiderKey(strings.TrimSpace(licenseID))
	}
	r.byComposite[composite] = key
	return key
}
