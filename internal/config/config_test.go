package config

import (
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/optable/hashviz/internal/hash"
)

const salt = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func TestParse(t *testing.T) {
	doc := `
hash = "murmur3"
salt = "` + salt + `"
rehash_delay = "250ms"
log_capacity = 20
verbosity = 2
metrics = true
`
	got, err := Parse([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}

	want := Config{
		HashType:    hash.Murmur3,
		Salt:        []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31},
		RehashDelay: 250 * time.Millisecond,
		LogCapacity: 20,
		Verbosity:   2,
		Metrics:     true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}

	if _, err := got.Options(); err != nil {
		t.Errorf("unexpected error building options: %v", err)
	}
}

func TestParseDefaults(t *testing.T) {
	got, err := Parse(nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Default(), got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	parseErrorTests := []struct {
		doc  string
		want string
	}{
		{`hash = "sha1"`, "unknown hash"},
		{`salt = "zz"`, "invalid salt"},
		{`rehash_delay = "soon"`, "invalid rehash_delay"},
		{`rehash_delay = "-1s"`, "must not be negative"},
		{`log_capacity = -3`, "log capacity"},
		{`verbosity = 7`, "verbosity"},
		{`hash = `, "could not decode"},
	}

	for _, tt := range parseErrorTests {
		_, err := Parse([]byte(tt.doc))
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("Parse(%q): expected error containing %q, got %v", tt.doc, tt.want, err)
		}
	}
}

func TestShortSalt(t *testing.T) {
	c, err := Parse([]byte(`hash = "highway"` + "\n" + `salt = "0011"`))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Options(); !errors.Is(err, hash.ErrSaltLengthMismatch) {
		t.Errorf("expected ErrSaltLengthMismatch, got %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir, err := ioutil.TempDir("", "hashviz")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "hashviz.toml")
	if err := ioutil.WriteFile(path, []byte(`rehash_delay = "0s"`), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.RehashDelay != 0 {
		t.Errorf("expected no rehash delay, got %v", c.RehashDelay)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Errorf("expected an error loading a missing file")
	}
}
