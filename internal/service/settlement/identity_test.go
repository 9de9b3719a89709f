package settlement

import (
	"testing"

	"github.com/beginal/jeongsan-admin-sub000/internal/domain/settlement"
	"github.com/stretchr/testify/assert"
)

func TestSplitSuffix(t *testing.T) {
	cases := []struct {
		input      string
		wantName   string
		wantSuffix string
	}{
		{"김민수 1234", "김민수", "1234"},
		{"김민수1234", "김민수", "1234"},
		{"김민수", "김민수", ""},
		{"김민수 123", "김민수 123", ""},
		{"  박지훈 5678  ", "박지훈", "5678"},
	}
	for _, c := range cases {
		name, suffix := SplitSuffix(c.input)
		if name != c.wantName || suffix != c.wantSuffix {
			t.Errorf("SplitSuffix(%q) = (%q, %q), want (%q, %q)", c.input, name, suffix, c.wantName, c.wantSuffix)
		}
	}
}

func TestResolver_LicenseIDWins(t *testing.T) {
	r := NewResolver()

	key := r.Resolve("LIC-100", "김민수 1234", "")
	assert.Equal(t, settlement.RiderKey("LIC-100"), key)

	// Same identity without a license id resolves to the bound key.
	again := r.Resolve("", "김민수 1234", "")
	assert.Equal(t, key, again)

	// Explicit suffix takes the place of a trailing-digit split.
	explicit := r.Resolve("", "김민수", "1234")
	assert.Equal(t, key, explicit)
}

func TestResolver_PlaceholderFallsBackToComposite(t *testing.T) {
	r := NewResolver()

	for _, placeholder := range []string{"", "-", "0"} {
		key := r.Resolve(placeholder, "이서연 9876", "")
		assert.Equal(t, settlement.RiderKey("이서연/9876"), key)
	}
}

func TestResolver_FirstSeenWins(t *testing.T) {
	r := NewResolver()

	// Composite binding is established first.
	first := r.Resolve("", "박지훈 5678", "")
	assert.Equal(t, settlement.RiderKey("박지훈/5678"), first)

	// A license id arriving later for the same pair must not split the
	// rider mid-run.
	later := r.Resolve("LIC-200", "박지훈 5678", "")
	assert.Equal(t, first, later)
}

func TestResolver_NoSuffix(t *testing.T) {
	r := NewResolver()

	key := r.Resolve("", "최은지", "")
	assert.Equal(t, settlement.RiderKey("최은지/none"), key)
	assert.Equal(t, key, r.Resolve("", "최은지", ""))
}

func TestResolver_AlwaysReturnsKey(t *testing.T) {
	r := NewResolver()
	key := r.Resolve("", "", "")
	assert.NotEmpty(t, string(key))
}
