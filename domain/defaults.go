package domain

// Build defaults. The config package and the embedded default config
// template both read these so there is one source of truth.
const (
	// DefaultBuilderType is the documentation builder used when none is configured
	DefaultBuilderType = "html"

	// DefaultSphinxBuildDir is the output root, relative to the docs directory
	DefaultSphinxBuildDir = "_build"

	// DefaultSphinxTemplateDir is rendered into templates_path of generated conf.py files
	DefaultSphinxTemplateDir = "/var/lib/rtdbuild/templates/sphinx"

	// DefaultDocRoot holds per-project checkouts: <root>/<slug>/checkouts/<version>
	DefaultDocRoot = "user_builds"

	// DefaultSourceExtension is the extension of a created index document
	DefaultSourceExtension = "rst"

	// DefaultHTMLTheme is the theme a generated conf.py selects
	DefaultHTMLTheme = "sphinx_rtd_theme"

	// DefaultLanguage is the documentation language when a project sets none
	DefaultLanguage = "en"
)

// Site defaults injected into the conf.py overlay
const (
	DefaultProductionDomain = "readthedocs.org"
	DefaultAPIHost          = "https://readthedocs.org"
	DefaultMediaURL         = "https://media.readthedocs.org/"
	DefaultStaticURL        = "https://assets.readthedocs.org/static/"
)

// Logging defaults
const (
	DefaultLogLevel = "info"
)

// SphinxBuilders maps builder types to the sphinx-build -b argument
var SphinxBuilders = map[string]string{
	"html":       "readthedocs",
	"htmldir":    "readthedocsdirhtml",
	"singlehtml": "readthedocssinglehtmllocalmedia",
	"pdf":        "latex",
	"epub":       "epub",
}

// ConfPySkipDirs are never searched for a project conf.py
var ConfPySkipDirs = []string{
	"_build",
	".git",
	".hg",
	".svn",
	".tox",
	".venv",
	"venv",
	"node_modules",
	"site-packages",
}

// DocsDirCandidates are probed in order when a checkout has no conf.py
var DocsDirCandidates = []string{"docs", "doc", "Doc", "book"}
