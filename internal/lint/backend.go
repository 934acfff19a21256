package lint

import (
	"github.com/hatappo/frontmatter-lint/internal/schema"
	"github.com/hatappo/frontmatter-lint/internal/validator"
	"github.com/hatappo/frontmatter-lint/pkg/value"
)

// Backend validates one parsed frontmatter document. Every schema source
// adapts to this interface, so dispatch never depends on the source kind.
type Backend interface {
	Validate(v value.Value) []validator.Error
}

// structuralBackend adapts a flattened type definition to the Backend
// interface.
type structuralBackend struct {
	typ  *schema.Type
	opts validator.Options
}

func (b structuralBackend) Validate(v value.Value) []validator.Error {
	return validator.Validate(v, b.typ, b.opts)
}
