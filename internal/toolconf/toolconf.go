// Package toolconf describes the external tools sltools dispatches to.
package toolconf

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/xerrors"
)

// Actions name the commands in the [commands] table.
const (
	ActionInstallDev  = "install_dev"
	ActionInstall     = "install"
	ActionUninstall   = "uninstall"
	ActionTestProject = "test_project"
	ActionTestTools   = "test_tools"
	ActionTestAll     = "test_all"
	ActionTestPackage = "test_package"
	ActionTestStyle   = "test_style"
	ActionDocHTML     = "doc_html"
	ActionDocServe    = "doc_serve"
)

// Config describes sltools.toml.
// Changes to this should be accompanied by changes to DefaultConfig.
type Config struct {
	Package      string              `toml:"package"`
	PackageDir   string              `toml:"package_dir"`
	Python       string              `toml:"python"`
	DocsDir      string              `toml:"docs_dir"`
	OpenDocs     bool                `toml:"open_docs"`
	CleanDirs    []string            `toml:"clean_dirs"`
	CachePattern string              `toml:"cache_pattern"`
	Commands     map[string][]string `toml:"commands"`
}

const DefaultConfig = `# sltools configuration.
# package is the importable name of the wrapped package.
package = "stat_log_db"

# package_dir is the package's source tree, relative to the working directory.
# It must look like a path so pip doesn't resolve it against an index.
package_dir = "./stat_log_db"

# python is the interpreter every Python tool runs under.
python = "python3"

# docs_dir receives the generated HTML documentation.
docs_dir = "docs"

# open_docs opens the generated index.html in a browser after -d h.
open_docs = false

# clean_dirs are removed by -c, relative to the working directory.
clean_dirs = [
  ".pytest_cache",
  "stat_log_db/.pytest_cache",
  "stat_log_db/build",
  "stat_log_db/dist",
  "stat_log_db/src/stat_log_db.egg-info",
]

# cache_pattern matches the cache directories -c removes anywhere in the tree.
cache_pattern = "__pycache__"

# commands are argv lists. {python}, {package}, {package_dir} and {docs_dir}
# are substituted.
[commands]
install_dev = ["{python}", "-m", "pip", "install", "-e", "{package_dir}[dev]"]
install = ["{python}", "-m", "pip", "install", "{package_dir}"]
uninstall = ["{python}", "-m", "pip", "uninstall", "-y", "{package}"]
test_project = ["{python}", "-m", "pytest", "tests"]
test_tools = ["go", "test", "./..."]
test_all = ["{python}", "-m", "pytest"]
test_package = ["{python}", "-m", "pytest", "{package_dir}/tests"]
test_style = ["{python}", "-m", "flake8", "."]
doc_html = ["{python}", "-m", "pdoc", "-o", "{docs_dir}", "{package}"]
doc_serve = ["{python}", "-m", "pdoc", "{package}"]
`

// Default returns the configuration described by DefaultConfig.
func Default() Config {
	var c Config
	_, err := toml.Decode(DefaultConfig, &c)
	if err != nil {
		panic("toolconf: bad default config: " + err.Error())
	}
	return c
}

// Read decodes the file at path over the defaults.
// Keys missing from the file keep their default values.
func Read(path string) (Config, error) {
	c := Default()
	_, err := toml.DecodeFile(path, &c)
	if err != nil {
		return Config{}, xerrors.Errorf("failed to parse config @ %v: %w", path, err)
	}
	return c, c.Validate()
}

// Validate checks that every action has a command.
func (c Config) Validate() error {
	if c.Package == "" {
		return xerrors.New("package must be set")
	}
	for _, action := range Actions() {
		_, err := c.Command(action)
		if err != nil {
			return err
		}
	}
	_, err := filepath.Match(c.CachePattern, "")
	if err != nil {
		return xerrors.Errorf("bad cache_pattern %q: %w", c.CachePattern, err)
	}
	return nil
}

// Actions lists every action DefaultConfig defines, sorted.
func Actions() []string {
	actions := []string{
		ActionInstallDev, ActionInstall, ActionUninstall,
		ActionTestProject, ActionTestTools, ActionTestAll, ActionTestPackage, ActionTestStyle,
		ActionDocHTML, ActionDocServe,
	}
	sort.Strings(actions)
	return actions
}

// Command returns the argv for action with placeholders substituted.
func (c Config) Command(action string) ([]string, error) {
	argv, ok := c.Commands[action]
	if !ok || len(argv) == 0 || argv[0] == "" {
		return nil, xerrors.Errorf("no command configured for %q", action)
	}

	r := strings.NewReplacer(
		"{python}", ExpandHome(c.Python),
		"{package}", c.Package,
		"{package_dir}", c.PackageDir,
		"{docs_dir}", c.DocsDir,
	)
	out := make([]string, len(argv))
	for i, arg := range argv {
		out[i] = r.Replace(arg)
	}
	return out, nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~"+string(filepath.Separator)) && !strings.HasPrefix(path, "~/") {
		return path
	}
	homedir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return resolvePath(homedir, path)
}

func resolvePath(homedir, path string) string {
	if path == "~" {
		return homedir
	}
	return filepath.Join(homedir, filepath.FromSlash(path[2:]))
}
