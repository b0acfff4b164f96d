package lang

// Language names a grammar the generated code can be checked against.
type Language string

const (
	Swift Language = "swift"
)

// AllLanguages returns all supported languages.
func AllLanguages() []Language {
	return []Language{Swift}
}

// LanguageSpec lists the tree-sitter node kinds the verifier looks at.
type LanguageSpec struct {
	Language       Language
	FileExtensions []string

	// ModuleNodeTypes is the kind of the root node.
	ModuleNodeTypes []string
	// CallNodeTypes are counted as statements that touch a view.
	CallNodeTypes []string
	// DeclarationNodeTypes are counted as bindings (let/var).
	DeclarationNodeTypes []string
	// AssignmentNodeTypes are property writes.
	AssignmentNodeTypes []string
	// LambdaNodeTypes are closure blocks such as SnapKit's makeConstraints.
	LambdaNodeTypes []string
}

// registry maps file extensions to language specs.
var registry = map[string]*LanguageSpec{}

// Register adds a LanguageSpec to the global registry.
func Register(spec *LanguageSpec) {
	for _, ext := range spec.FileExtensions {
		registry[ext] = spec
	}
}

// ForExtension returns the LanguageSpec for a file extension (e.g. ".swift").
func ForExtension(ext string) *LanguageSpec {
	return registry[ext]
}

// ForLanguage returns the LanguageSpec for a language.
func ForLanguage(lang Language) *LanguageSpec {
	for _, spec := range registry {
		if spec.Language == lang {
			return spec
		}
	}
	return nil
}

// Has reports whether kind is one of kinds.
func Has(kinds []string, kind string) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}
