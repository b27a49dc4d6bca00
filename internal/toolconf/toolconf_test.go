package toolconf

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_resolvePath(t *testing.T) {
	type args struct {
		homedir string
		path    string
	}
	tests := []struct {
		name string
		args args
		want string
	}{
		{"Home", args{"/home/ammar", "~"}, "/home/ammar"},
		{"Nested", args{"/home/ammar", "~/.venv/bin/python"}, "/home/ammar/.venv/bin/python"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolvePath(tt.args.homedir, tt.args.path); got != filepath.FromSlash(tt.want) {
				t.Errorf("resolvePath() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	assert.Equal(t, "python3", ExpandHome("python3"))
	assert.Equal(t, "/usr/bin/python3", ExpandHome("/usr/bin/python3"))
	assert.Equal(t, "~user/python", ExpandHome("~user/python"))
}

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	assert.Equal(t, "stat_log_db", c.Package)
	assert.Equal(t, "__pycache__", c.CachePattern)
	assert.Contains(t, c.CleanDirs, "stat_log_db/build")
	assert.Contains(t, c.CleanDirs, "stat_log_db/dist")

	for _, action := range Actions() {
		assert.Contains(t, c.Commands, action)
	}

	// Each call decodes a fresh copy.
	c.Commands[ActionInstall] = nil
	assert.NotEmpty(t, Default().Commands[ActionInstall])
}

func TestCommand(t *testing.T) {
	c := Default()

	var tests = []struct {
		action string
		exp    []string
	}{
		{ActionInstallDev, []string{"python3", "-m", "pip", "install", "-e", "./stat_log_db[dev]"}},
		{ActionInstall, []string{"python3", "-m", "pip", "install", "./stat_log_db"}},
		{ActionUninstall, []string{"python3", "-m", "pip", "uninstall", "-y", "stat_log_db"}},
		{ActionTestPackage, []string{"python3", "-m", "pytest", "./stat_log_db/tests"}},
		{ActionTestTools, []string{"go", "test", "./..."}},
		{ActionDocHTML, []string{"python3", "-m", "pdoc", "-o", "docs", "stat_log_db"}},
		{ActionDocServe, []string{"python3", "-m", "pdoc", "stat_log_db"}},
	}

	for _, test := range tests {
		test := test
		t.Run(test.action, func(t *testing.T) {
			argv, err := c.Command(test.action)
			require.NoError(t, err)
			assert.Equal(t, test.exp, argv)
		})
	}

	_, err := c.Command("deploy")
	assert.Error(t, err)
}

func TestRead(t *testing.T) {
	dir := t.TempDir()

	t.Run("Overrides", func(t *testing.T) {
		path := filepath.Join(dir, "override.toml")
		err := ioutil.WriteFile(path, []byte(`
python = "python3.11"
docs_dir = "site"
clean_dirs = ["build"]

[commands]
test_style = ["{python}", "-m", "ruff", "check", "."]
`), 0644)
		require.NoError(t, err)

		c, err := Read(path)
		require.NoError(t, err)

		assert.Equal(t, "python3.11", c.Python)
		assert.Equal(t, "site", c.DocsDir)
		assert.Equal(t, []string{"build"}, c.CleanDirs)
		// Untouched keys keep their defaults.
		assert.Equal(t, "stat_log_db", c.Package)

		argv, err := c.Command(ActionTestStyle)
		require.NoError(t, err)
		assert.Equal(t, []string{"python3.11", "-m", "ruff", "check", "."}, argv)

		argv, err = c.Command(ActionInstall)
		require.NoError(t, err)
		assert.Equal(t, []string{"python3.11", "-m", "pip", "install", "./stat_log_db"}, argv)
	})

	t.Run("EmptyCommand", func(t *testing.T) {
		path := filepath.Join(dir, "empty.toml")
		err := ioutil.WriteFile(path, []byte("[commands]\nuninstall = []\n"), 0644)
		require.NoError(t, err)

		_, err = Read(path)
		assert.Error(t, err)
	})

	t.Run("BadPattern", func(t *testing.T) {
		path := filepath.Join(dir, "pattern.toml")
		err := ioutil.WriteFile(path, []byte("cache_pattern = \"[\"\n"), 0644)
		require.NoError(t, err)

		_, err = Read(path)
		assert.Error(t, err)
	})

	t.Run("Malformed", func(t *testing.T) {
		path := filepath.Join(dir, "bad.toml")
		err := ioutil.WriteFile(path, []byte("python = \n"), 0644)
		require.NoError(t, err)

		_, err = Read(path)
		assert.Error(t, err)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := Read(filepath.Join(dir, "nope.toml"))
		assert.Error(t, err)
	})
}
