package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maa-cli/maa-go/internal/maadirs"
)

func withTestDirs(t *testing.T) *maadirs.Dirs {
	t.Helper()
	dir := t.TempDir()
	dirs := &maadirs.Dirs{
		Data:   filepath.Join(dir, "data"),
		State:  filepath.Join(dir, "state"),
		Cache:  filepath.Join(dir, "cache"),
		Config: filepath.Join(dir, "config"),
	}
	prev := g
	g.dirs = dirs
	t.Cleanup(func() { g = prev })
	return dirs
}

func TestInitCmdScaffoldsDefaultProfile(t *testing.T) {
	dirs := withTestDirs(t)
	c := initCmd()
	c.SetContext(context.Background())
	assert.NoError(t, c.Flags().Parse(nil))
	assert.NoError(t, c.RunE(c, nil))

	_, err := os.Stat(filepath.Join(dirs.Config, "profiles", "default.json"))
	assert.NoError(t, err)
}

func TestInitCmdRefusesOverwrite(t *testing.T) {
	withTestDirs(t)
	c := initCmd()
	c.SetContext(context.Background())
	assert.NoError(t, c.RunE(c, nil))
	assert.Error(t, c.RunE(c, nil))
}

func TestImportCmdRejectsUnsupportedExtension(t *testing.T) {
	dirs := withTestDirs(t)
	src := filepath.Join(dirs.Data, "cli.ini")
	assert.NoError(t, os.MkdirAll(filepath.Dir(src), 0o755))
	assert.NoError(t, os.WriteFile(src, []byte("x=1"), 0o644))

	c := importCmd()
	c.SetContext(context.Background())
	assert.NoError(t, c.Flags().Set("type", "profile"))
	assert.Error(t, c.RunE(c, []string{src}))
}

func TestImportCmdCopiesAndRefusesOverwriteWithoutForce(t *testing.T) {
	dirs := withTestDirs(t)
	src := filepath.Join(dirs.Data, "default.json")
	assert.NoError(t, os.MkdirAll(filepath.Dir(src), 0o755))
	assert.NoError(t, os.WriteFile(src, []byte(`{"a":1}`), 0o644))

	c := importCmd()
	c.SetContext(context.Background())
	assert.NoError(t, c.Flags().Set("type", "profile"))
	assert.NoError(t, c.RunE(c, []string{src}))

	c2 := importCmd()
	c2.SetContext(context.Background())
	assert.NoError(t, c2.Flags().Set("type", "profile"))
	assert.Error(t, c2.RunE(c2, []string{src}))

	assert.NoError(t, c2.Flags().Set("force", "true"))
	assert.NoError(t, c2.RunE(c2, []string{src}))
}

func TestListCmdPrintsNoneForEmptyDirs(t *testing.T) {
	withTestDirs(t)
	var buf bytes.Buffer
	printDirListing(&buf, "profiles", filepath.Join(g.dirs.Config, "profiles"))
	assert.Contains(t, buf.String(), "(none)")
}

func TestDirCmdPrintsKnownKinds(t *testing.T) {
	withTestDirs(t)
	c := dirCmd()
	c.SetContext(context.Background())
	assert.NoError(t, c.RunE(c, []string{"config"}))
}

func TestDirCmdRejectsUnknownKind(t *testing.T) {
	withTestDirs(t)
	c := dirCmd()
	c.SetContext(context.Background())
	assert.Error(t, c.RunE(c, []string{"nonsense"}))
}

func TestRemainderCmdRejectsNonPositiveDivisor(t *testing.T) {
	withTestDirs(t)
	c := remainderCmd()
	c.SetContext(context.Background())
	assert.Error(t, c.RunE(c, []string{"0"}))
	assert.Error(t, c.RunE(c, []string{"notanumber"}))
}

func TestRemainderCmdAcceptsPositiveDivisor(t *testing.T) {
	withTestDirs(t)
	c := remainderCmd()
	c.SetContext(context.Background())
	assert.NoError(t, c.RunE(c, []string{"7"}))
}

func TestConvertCmdRejectsNonJSONFormat(t *testing.T) {
	dirs := withTestDirs(t)
	src := filepath.Join(dirs.Data, "x.json")
	assert.NoError(t, os.MkdirAll(filepath.Dir(src), 0o755))
	assert.NoError(t, os.WriteFile(src, []byte(`{"a":1}`), 0o644))

	c := convertCmd()
	c.SetContext(context.Background())
	assert.NoError(t, c.Flags().Set("format", "toml"))
	assert.Error(t, c.RunE(c, []string{src}))
}

func TestConvertCmdWritesOutputFile(t *testing.T) {
	dirs := withTestDirs(t)
	src := filepath.Join(dirs.Data, "x.json")
	dest := filepath.Join(dirs.Data, "y.json")
	assert.NoError(t, os.MkdirAll(filepath.Dir(src), 0o755))
	assert.NoError(t, os.WriteFile(src, []byte(`{"a":1}`), 0o644))

	c := convertCmd()
	c.SetContext(context.Background())
	assert.NoError(t, c.RunE(c, []string{src, dest}))

	data, err := os.ReadFile(dest)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(data))
}

func TestCleanupCmdWithNoCopilotDirIsNoop(t *testing.T) {
	withTestDirs(t)
	c := cleanupCmd()
	c.SetContext(context.Background())
	assert.NoError(t, c.RunE(c, nil))
}

func TestMangenCmdIsUnimplemented(t *testing.T) {
	c := mangenCmd()
	c.SetContext(context.Background())
	assert.Error(t, c.RunE(c, nil))
}

func TestVersionCmdPrintsRequestedComponent(t *testing.T) {
	c := versionCmd("1.2.3")
	c.SetContext(context.Background())
	assert.NoError(t, c.RunE(c, []string{"cli"}))
}
