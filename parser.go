package conanrecipe

import (
	"errors"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"github.com/albertocavalcante/go-conanrecipe/label"
)

// ConfigSource is the readable build-configuration text identity is derived from.
type ConfigSource interface {
	// Name identifies the source in error messages, usually a file path.
	Name() string

	// ReadConfig returns the full configuration text.
	ReadConfig() ([]byte, error)
}

// FileSource reads a configuration file from disk.
type FileSource string

// Name returns the file path.
func (f FileSource) Name() string { return string(f) }

// ReadConfig reads the file.
func (f FileSource) ReadConfig() ([]byte, error) { return os.ReadFile(string(f)) }

// FSSource reads a configuration file from an fs.FS.
type FSSource struct {
	FS   fs.FS
	Path string
}

// Name returns the path inside the file system.
func (s FSSource) Name() string { return s.Path }

// ReadConfig reads the file from the file system.
func (s FSSource) ReadConfig() ([]byte, error) { return fs.ReadFile(s.FS, s.Path) }

// BytesSource is an in-memory configuration source.
type BytesSource struct {
	Path string
	Data []byte
}

// Name returns the path the content is attributed to.
func (b BytesSource) Name() string { return b.Path }

// ReadConfig returns the content. A nil Data is reported as fs.ErrNotExist.
func (b BytesSource) ReadConfig() ([]byte, error) {
	if b.Data == nil {
		return nil, fs.ErrNotExist
	}
	return b.Data, nil
}

// ProjectVariant names the shape a project(...) statement was matched with.
type ProjectVariant string

const (
	// VariantNameVersion is the older project(<name> VERSION <v>) form.
	VariantNameVersion ProjectVariant = "name-version"

	// VariantDescribed is the newer project(<name> VERSION X.Y.Z DESCRIPTION "<text>") form.
	VariantDescribed ProjectVariant = "described"
)

// ProjectDeclaration is the content of the single project(...) statement.
type ProjectDeclaration struct {
	Name        string
	Version     string
	Description string
	Variant     ProjectVariant
}

// cmakeArgument is one unquoted character or a whole quoted argument.
const cmakeArgument = `[^()"]|"(?:[^"\\]|\\.)*"`

// versionToken is a bare version such as 0.5 or 0.9.4-rc1.
const versionToken = `[0-9][0-9A-Za-z.+-]*`

var (
	// projectStartRegex finds where a project(...) call begins. CMake command
	// names are case-insensitive.
	projectStartRegex = regexp.MustCompile(`(?i)\bproject\s*\(`)

	// projectStatementRegex reads one project(...) call from its start. Quoted
	// arguments may contain parentheses; one level of nested parentheses is
	// allowed for argument lists.
	projectStatementRegex = regexp.MustCompile(`(?i)^project\s*\(((?:` + cmakeArgument + `|\((?:` + cmakeArgument + `)*\))*)\)`)

	// describedRegex is the newer form: name, X.Y.Z version and a quoted
	// description. Trailing arguments such as LANGUAGES are allowed.
	describedRegex = regexp.MustCompile(`^\s*([A-Za-z0-9_.+-]+)\s+VERSION\s+(\d+\.\d+\.\d+)\s+DESCRIPTION\s+"((?:[^"\\]|\\.)*)"(?:\s|$)`)

	// nameVersionRegex is the older form: name and a version given as a
	// quoted token, a parenthesized argument list or a bare token.
	nameVersionRegex = regexp.MustCompile(`^\s*([A-Za-z0-9_.+-]+)\s+VERSION(?:\s+"(` + versionToken + `)"|\s*\(\s*"?(` + versionToken + `)"?\s*\)|\s+(` + versionToken + `))(?:\s|$)`)

	descriptionKeywordRegex = regexp.MustCompile(`(?:^|\s)DESCRIPTION(?:\s|$)`)
)

// ResolveIdentity derives the package identity from src.
//
// A non-empty override (after trimming) replaces the parsed version; name and
// description always come from src. The result depends only on the inputs.
func ResolveIdentity(override string, src ConfigSource) (PackageIdentity, error) {
	if src == nil {
		return PackageIdentity{}, &ConfigNotFoundError{Err: errors.New("no configuration source")}
	}

	data, err := src.ReadConfig()
	if err != nil {
		return PackageIdentity{}, &ConfigNotFoundError{Path: src.Name(), Err: err}
	}

	decl, err := ParseProjectDeclaration(src.Name(), data)
	if err != nil {
		return PackageIdentity{}, err
	}

	id := PackageIdentity{
		Name:        decl.Name,
		Version:     decl.Version,
		Description: decl.Description,
	}
	if v := strings.TrimSpace(override); v != "" {
		id.Version = v
	}
	return id, nil
}

// ParseProjectDeclaration extracts the single project(...) statement from
// CMake text. It tries the described form first and falls back to the
// name/version form; anything else is a *MetadataParseError.
func ParseProjectDeclaration(path string, data []byte) (ProjectDeclaration, error) {
	text := stripComments(string(data))

	statements := projectStatements(text)
	switch len(statements) {
	case 1:
	case 0:
		return ProjectDeclaration{}, &MetadataParseError{
			Path:    path,
			Pattern: projectStartRegex.String(),
			Reason:  "no project(...) declaration",
		}
	default:
		return ProjectDeclaration{}, &MetadataParseError{
			Path:    path,
			Pattern: projectStartRegex.String(),
			Matches: len(statements),
			Reason:  "more than one project(...) declaration",
		}
	}

	body, ok := statements[0].body, statements[0].ok
	if !ok {
		return ProjectDeclaration{}, &MetadataParseError{
			Path:    path,
			Pattern: projectStatementRegex.String(),
			Matches: 1,
			Reason:  "project(...) arguments are unbalanced or nested more than one level",
		}
	}

	if m := describedRegex.FindStringSubmatch(body); m != nil {
		return finishDeclaration(path, describedRegex, ProjectDeclaration{
			Name:        m[1],
			Version:     m[2],
			Description: unescape(m[3]),
			Variant:     VariantDescribed,
		})
	}

	// A DESCRIPTION the described form could not take means the version is
	// not X.Y.Z; dropping the description silently would hide that.
	if descriptionKeywordRegex.MatchString(body) {
		return ProjectDeclaration{}, &MetadataParseError{
			Path:    path,
			Pattern: describedRegex.String(),
			Matches: 1,
			Reason:  "DESCRIPTION given but VERSION is not MAJOR.MINOR.PATCH",
		}
	}

	if m := nameVersionRegex.FindStringSubmatch(body); m != nil {
		version := m[2] + m[3] + m[4]
		return finishDeclaration(path, nameVersionRegex, ProjectDeclaration{
			Name:    m[1],
			Version: version,
			Variant: VariantNameVersion,
		})
	}

	return ProjectDeclaration{}, &MetadataParseError{
		Path:    path,
		Pattern: nameVersionRegex.String(),
		Matches: 1,
		Reason:  "project(...) declaration has no usable NAME VERSION arguments",
	}
}

func finishDeclaration(path string, pattern *regexp.Regexp, decl ProjectDeclaration) (ProjectDeclaration, error) {
	if _, err := label.NewPackageName(decl.Name); err != nil {
		return ProjectDeclaration{}, &MetadataParseError{
			Path:    path,
			Pattern: pattern.String(),
			Matches: 1,
			Reason:  err.Error(),
		}
	}
	if _, err := label.NewVersion(decl.Version); err != nil {
		return ProjectDeclaration{}, &MetadataParseError{
			Path:    path,
			Pattern: pattern.String(),
			Matches: 1,
			Reason:  err.Error(),
		}
	}
	return decl, nil
}

type projectStatement struct {
	body string
	ok   bool
}

// projectStatements returns every project(...) call in comment-free text.
// Calls inside quoted or bracket arguments of other commands do not count.
func projectStatements(text string) []projectStatement {
	masked := maskArguments(text)

	var out []projectStatement
	for _, loc := range projectStartRegex.FindAllStringIndex(masked, -1) {
		m := projectStatementRegex.FindStringSubmatch(text[loc[0]:])
		if m == nil {
			out = append(out, projectStatement{})
			continue
		}
		out = append(out, projectStatement{body: m[1], ok: true})
	}
	return out
}

// stripComments removes CMake line comments and bracket comments
// (#[[ ... ]], #[=[ ... ]=]), leaving quoted and bracket arguments intact.
// Newlines are kept so line structure survives.
func stripComments(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inQuote, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case inQuote && c == '\\':
			escaped = true
		case c == '"':
			inQuote = !inQuote
		case inQuote:
		case c == '[':
			if level, ok := bracketOpen(s[i:]); ok {
				end := bracketEnd(s, i+level+2, level)
				b.WriteString(s[i:end])
				i = end - 1
				continue
			}
		case c == '#':
			if level, ok := bracketOpen(s[i+1:]); ok {
				end := bracketEnd(s, i+1+level+2, level)
				b.WriteString(strings.Repeat("\n", strings.Count(s[i:end], "\n")))
				i = end - 1
				continue
			}
			for i < len(s) && s[i] != '\n' {
				i++
			}
			if i < len(s) {
				b.WriteByte('\n')
			}
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// maskArguments blanks the content of quoted and bracket arguments, keeping
// byte offsets and newlines.
func maskArguments(s string) string {
	b := []byte(s)

	inQuote, escaped := false, false
	for i := 0; i < len(b); i++ {
		c := b[i]
		switch {
		case escaped:
			escaped = false
			b[i] = ' '
		case inQuote && c == '\\':
			escaped = true
			b[i] = ' '
		case c == '"':
			inQuote = !inQuote
		case inQuote:
			if c != '\n' {
				b[i] = ' '
			}
		case c == '[':
			if level, ok := bracketOpen(s[i:]); ok {
				end := bracketEnd(s, i+level+2, level)
				for j := i; j < end; j++ {
					if b[j] != '\n' {
						b[j] = ' '
					}
				}
				i = end - 1
			}
		}
	}
	return string(b)
}

// bracketOpen reports whether s starts with a bracket opener [[, [=[, [==[ ...
// and returns its level (the number of '=').
func bracketOpen(s string) (int, bool) {
	if !strings.HasPrefix(s, "[") {
		return 0, false
	}
	level := 1
	for level < len(s) && s[level] == '=' {
		level++
	}
	if level < len(s) && s[level] == '[' {
		return level - 1, true
	}
	return 0, false
}

// bracketEnd returns the offset just past the closer of a bracket of the
// given level, searching from from. An unclosed bracket runs to the end.
func bracketEnd(s string, from, level int) int {
	closer := "]" + strings.Repeat("=", level) + "]"
	j := strings.Index(s[from:], closer)
	if j < 0 {
		return len(s)
	}
	return from + j + len(closer)
}

// unescape resolves the backslash escapes CMake allows inside quoted arguments.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	escaped := false
	for _, r := range s {
		if escaped {
			switch r {
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			default:
				b.WriteRune(r)
			}
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
