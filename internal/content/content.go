// Package content contains transformers to render and sanitize blog content.
//
// Blog posts are stored as CommonMark Markdown and rendered to HTML on read.
// Rendered output is always passed through the sanitizer so stored content
// can never inject markup into the public site.
package content

// Transformer modifies content, returning modified content or an error.
type Transformer interface {
	// Transform modifies input, returning modified content or an error.
	Transform(input []byte) ([]byte, error)
}

// TransformerFunc is a [Transformer] that can be represented just by the
// [Transform] method.
type TransformerFunc func(input []byte) ([]byte, error)

// Transform satisfies [Transformer].
func (fn TransformerFunc) Transform(input []byte) ([]byte, error) { return fn(input) }

// Chain chains together a set of transformers, failing fast if any
// transformer in the chain errors.
func Chain(transformers ...Transformer) TransformerFunc {
	return func(input []byte) ([]byte, error) {
		var err error
		for _, transformer := range transformers {
			input, err = transformer.Transform(input)
			if err != nil {
				return nil, err
			}
		}
		return input, nil
	}
}

// RenderMarkdown is the pre-composed Markdown-to-sanitized-HTML pipeline.
var RenderMarkdown = Chain(MarkdownToHTML(), SanitizeHTML())
