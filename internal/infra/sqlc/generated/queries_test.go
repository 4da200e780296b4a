//go:build unit

package sqlc_test

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	queryName  = regexp.MustCompile(`(?m)^-- name: (\w+) (:\w+)\s*$`)
	queryFuncs = regexp.MustCompile(`(?m)^func \(q \*Queries\) (\w+)\(`)
)

// Every named query in queries/ has its constant and method here, and nothing else does.
func TestGeneratedMatchesQueries(t *testing.T) {
	sources, err := filepath.Glob(filepath.Join("..", "queries", "*.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, sources)

	for _, src := range sources {
		base := filepath.Base(src)
		t.Run(base, func(t *testing.T) {
			query, err := os.ReadFile(src)
			require.NoError(t, err)
			generated, err := os.ReadFile(base + ".go")
			require.NoError(t, err, "no generated file for %s", base)

			var want []string
			for _, m := range queryName.FindAllStringSubmatch(string(query), -1) {
				want = append(want, m[1])
				assert.Contains(t, string(generated), "`-- name: "+m[1]+" "+m[2]+"\n", "query %s", m[1])
			}

			var got []string
			for _, m := range queryFuncs.FindAllStringSubmatch(string(generated), -1) {
				got = append(got, m[1])
			}
			assert.ElementsMatch(t, want, got)
			assert.True(t, strings.Contains(string(generated), "// source: "+base))
		})
	}
}
