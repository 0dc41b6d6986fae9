package staging

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/c360/flowplan/errors"
	"github.com/c360/flowplan/testutil"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		master string
		class  EndpointClass
	}{
		{"[auto]", AutoLocal},
		{"[collection]", CollectionLocal},
		{"[local]", ExplicitLocal},
		{"localhost:8081", Remote},
		{"flink-jm.cluster.internal:8081", Remote},
		{"", Remote},
		{"[AUTO]", Remote},   // literals are case-sensitive
		{"[auto] ", Remote},  // and exact
		{"not-a-host", Remote},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("%q", test.master), func(t *testing.T) {
			endpoint := Classify(test.master)
			assert.Equal(t, test.class, endpoint.Class)
			assert.Equal(t, test.master, endpoint.Raw)

			if test.class == Remote {
				assert.False(t, endpoint.IsLocal())
				assert.Equal(t, test.master, endpoint.Address())
			} else {
				assert.True(t, endpoint.IsLocal())
				assert.Empty(t, endpoint.Address())
			}
		})
	}
}

func TestIsArchive(t *testing.T) {
	assert.True(t, IsArchive("/opt/artifacts/job.jar"))
	assert.True(t, IsArchive("/opt/artifacts/bundle.zip"))
	assert.True(t, IsArchive("upper.JAR"))
	assert.False(t, IsArchive("/opt/artifacts/readme.txt"))
	assert.False(t, IsArchive("/opt/artifacts/jarless"))
	assert.False(t, IsArchive("/opt/artifacts"))
}

func TestDirLister(t *testing.T) {
	t.Run("lists only archives, sorted", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{"b.jar", "a.jar", "notes.txt", "data.csv"} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
		}

		artifacts, err := NewDirLister(dir).ListArtifacts()
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(dir, "a.jar"),
			filepath.Join(dir, "b.jar"),
		}, artifacts)
	})

	t.Run("walks nested directories", func(t *testing.T) {
		dir := t.TempDir()
		nested := filepath.Join(dir, "lib")
		require.NoError(t, os.Mkdir(nested, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(nested, "dep.zip"), nil, 0o644))

		artifacts, err := NewDirLister(dir).ListArtifacts()
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(nested, "dep.zip")}, artifacts)
	})

	t.Run("missing directory skipped", func(t *testing.T) {
		artifacts, err := NewDirLister(filepath.Join(t.TempDir(), "absent")).ListArtifacts()
		require.NoError(t, err)
		assert.Empty(t, artifacts)
	})
}

func TestStagerResolve(t *testing.T) {
	t.Run("local endpoints keep caller list byte for byte", func(t *testing.T) {
		stager := NewStager(failingLister{}, testutil.DiscardLogger())
		current := []string{"/some/dir", "/path/to/not/existing/dir"}

		for _, master := range []string{"[auto]", "[collection]", "[local]"} {
			t.Run(master, func(t *testing.T) {
				resolved, err := stager.Resolve(Classify(master), current)
				require.NoError(t, err)
				assert.Equal(t, current, resolved)
			})
		}
	})

	t.Run("remote endpoint replaces caller list with discovered archives", func(t *testing.T) {
		dir := t.TempDir()
		jar := filepath.Join(dir, "flowplan-bundled.jar")
		require.NoError(t, os.WriteFile(jar, nil, 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "stray.txt"), nil, 0o644))

		stager := NewStager(NewDirLister(dir), testutil.DiscardLogger())
		current := []string{dir, "/path/to/not/existing/dir"}

		resolved, err := stager.Resolve(Classify("localhost:8081"), current)
		require.NoError(t, err)
		assert.Equal(t, []string{jar}, resolved)
	})

	t.Run("resolve is idempotent", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "job.jar"), nil, 0o644))
		stager := NewStager(NewDirLister(dir), testutil.DiscardLogger())
		endpoint := Classify("localhost:8081")

		first, err := stager.Resolve(endpoint, nil)
		require.NoError(t, err)
		second, err := stager.Resolve(endpoint, first)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("enumeration failure is fatal", func(t *testing.T) {
		stager := NewStager(failingLister{}, testutil.DiscardLogger())

		_, err := stager.Resolve(Classify("localhost:8081"), nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, pkgerrors.ErrStagingResolution)
		assert.True(t, pkgerrors.IsFatal(err))
	})
}

type failingLister struct{}

func (failingLister) ListArtifacts() ([]string, error) {
	return nil, fmt.Errorf("enumeration unavailable")
}
