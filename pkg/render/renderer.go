package render

import (
	"context"

	"github.com/goliatone/go-paramedit/pkg/state"
)

// Renderer turns an editor snapshot into a byte representation (HTML, text,
// or the outcome of an interactive terminal session).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, st state.State, options RenderOptions) ([]byte, error)
}
