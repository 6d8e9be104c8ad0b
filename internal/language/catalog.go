package language

// Catalog exposes the package lookups as a value so callers can depend on
// an interface and substitute a fake in tests.
type Catalog struct{}

// NewCatalog returns the default catalog.
func NewCatalog() Catalog { return Catalog{} }

// Resolve maps a language code to a Language.
func (Catalog) Resolve(code string) (Language, error) { return Resolve(code) }

// ResolveName maps a language name to a Language.
func (Catalog) ResolveName(name string) (Language, error) { return ResolveName(name) }

// BestCode returns the 2-letter code when available, else the 3-letter one.
func (Catalog) BestCode(lang Language) (string, bool) { return lang.BestCode() }
