package targets

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/sheetorder-go/pkg/sheetorder/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// project lays out:
//
//	resources/{x,y,z}/ plus resources/file.txt
//	src/test/java/{a,b,c}/
type project struct {
	root      string
	resources string
}

func newProject(t *testing.T) project {
	t.Helper()
	root := t.TempDir()
	resources := filepath.Join(root, "resources")
	for _, d := range []string{"x", "y", "z"} {
		require.NoError(t, os.MkdirAll(filepath.Join(resources, d), 0755))
	}
	require.NoError(t, os.WriteFile(filepath.Join(resources, "file.txt"), []byte("x"), 0644))
	for _, d := range []string{"a", "b", "c"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, "src", "test", "java", d), 0755))
	}
	return project{root: root, resources: resources}
}

func (p project) writeDescriptor(t *testing.T, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(p.root, ".classpath"), []byte(content), 0644))
}

func (p project) children() []string {
	return []string{
		filepath.Join(p.resources, "x"),
		filepath.Join(p.resources, "y"),
		filepath.Join(p.resources, "z"),
	}
}

func (p project) pkg(names ...string) []string {
	var dirs []string
	for _, n := range names {
		dirs = append(dirs, filepath.Join(p.root, "src", "test", "java", n))
	}
	return dirs
}

func baseConfig() *config.Config {
	return &config.Config{
		OnlyBuildTargetPackage:     true,
		SheetOrderFileRelativePath: "order.txt",
		DefaultTargetDirectory:     "resources",
		GlobFileNamePattern:        "*.xlsx",
		DescriptorFileRelativePath: ".classpath",
		DefaultTargetPackage:       "src/test/java",
	}
}

const descriptorABC = `<classpath>
	<classpathentry kind="src" path="src/test/java" including="a|b|c"/>
</classpath>`

func TestResolveFilteringDisabledIgnoresDescriptor(t *testing.T) {
	p := newProject(t)
	p.writeDescriptor(t, descriptorABC)

	cfg := baseConfig()
	cfg.OnlyBuildTargetPackage = false

	dirs, err := NewResolver(discardLogger()).Resolve(cfg, p.root, p.resources)
	require.NoError(t, err)
	assert.Equal(t, p.children(), dirs)
}

func TestResolveFallsBackToChildren(t *testing.T) {
	tests := []struct {
		name       string
		descriptor string
		mutate     func(*config.Config)
	}{
		{
			name:   "no descriptor configured",
			mutate: func(c *config.Config) { c.DescriptorFileRelativePath = "" },
		},
		{
			name: "descriptor missing on disk",
		},
		{
			name:       "entry without including",
			descriptor: `<classpath><classpathentry kind="src" path="src/test/java"/></classpath>`,
		},
		{
			name:       "entry with empty including",
			descriptor: `<classpath><classpathentry kind="src" path="src/test/java" including=""/></classpath>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newProject(t)
			if tt.descriptor != "" {
				p.writeDescriptor(t, tt.descriptor)
			}
			cfg := baseConfig()
			if tt.mutate != nil {
				tt.mutate(cfg)
			}

			dirs, err := NewResolver(discardLogger()).Resolve(cfg, p.root, p.resources)
			require.NoError(t, err)
			assert.Equal(t, p.children(), dirs)
		})
	}
}

func TestResolveIncludesWithExclusions(t *testing.T) {
	p := newProject(t)
	p.writeDescriptor(t, descriptorABC)

	cfg := baseConfig()
	cfg.ExcludePackageList = []string{"b"}

	dirs, err := NewResolver(discardLogger()).Resolve(cfg, p.root, p.resources)
	require.NoError(t, err)
	assert.Equal(t, p.pkg("a", "c"), dirs)
}

func TestResolveIncludesPreserveOrderAndDropMissing(t *testing.T) {
	p := newProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(p.root, "src", "test", "java", "notadir"), []byte("x"), 0644))
	p.writeDescriptor(t, `<classpath>
	<classpathentry kind="src" path="src/test/java" including="c/|missing/|a/||notadir|c"/>
</classpath>`)

	dirs, err := NewResolver(discardLogger()).Resolve(baseConfig(), p.root, p.resources)
	require.NoError(t, err)
	assert.Equal(t, p.pkg("c", "a"), dirs)
}

func TestResolveEntryNotFound(t *testing.T) {
	p := newProject(t)
	p.writeDescriptor(t, `<classpath><classpathentry kind="src" path="src/main/java" including="a"/></classpath>`)

	_, err := NewResolver(discardLogger()).Resolve(baseConfig(), p.root, p.resources)
	require.Error(t, err)

	var descErr *DescriptorError
	require.True(t, errors.As(err, &descErr))
	assert.Equal(t, "src/test/java", descErr.Package)
	assert.True(t, errors.Is(err, ErrEntryNotFound))
}

func TestResolveMalformedDescriptor(t *testing.T) {
	p := newProject(t)
	p.writeDescriptor(t, `<classpath><classpathentry path="src/test/java">`)

	_, err := NewResolver(discardLogger()).Resolve(baseConfig(), p.root, p.resources)
	require.Error(t, err)

	var descErr *DescriptorError
	assert.True(t, errors.As(err, &descErr))
}

func TestResolveMissingDefaultDirectory(t *testing.T) {
	cfg := baseConfig()
	cfg.OnlyBuildTargetPackage = false

	_, err := NewResolver(discardLogger()).Resolve(cfg, t.TempDir(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
