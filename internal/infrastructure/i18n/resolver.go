package i18n

import (
	"context"
	"fmt"

	"github.com/jhoicas/Inventario-stock/internal/application/inventory"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

var _ inventory.TextResolver = (*Resolver)(nil)

// Idiomas soportados; el primero es el de respaldo.
var supported = []language.Tag{language.English, language.Spanish}

var matcher = language.NewMatcher(supported)

type ctxKey struct{}

// WithLanguage fija el idioma preferido de la petición (valor de Accept-Language o código simple).
func WithLanguage(ctx context.Context, accept string) context.Context {
	if accept == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxKey{}, accept)
}

// Resolver traduce claves de razón de movimiento con un catálogo de golang.org/x/text.
// Para claves que no están en el catálogo devuelve "", así el caso de uso cae a su texto por defecto.
type Resolver struct {
	fallback language.Tag
	catalog  *catalog.Builder
	known    map[string]struct{}
}

// NewResolver construye el catálogo; locale es el idioma por defecto (en, es).
func NewResolver(locale string) (*Resolver, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	known := make(map[string]struct{})
	for tag, msgs := range translations {
		for key, text := range msgs {
			if err := b.SetString(tag, key, text); err != nil {
				return nil, fmt.Errorf("i18n: registrar %q (%s): %w", key, tag, err)
			}
			known[key] = struct{}{}
		}
	}
	return &Resolver{fallback: match(locale, language.English), catalog: b, known: known}, nil
}

// Resolve devuelve el texto de key en el idioma del contexto (o el por defecto).
func (r *Resolver) Resolve(ctx context.Context, key string, args ...any) string {
	if _, ok := r.known[key]; !ok {
		return ""
	}
	tag := r.fallback
	if accept, ok := ctx.Value(ctxKey{}).(string); ok {
		tag = match(accept, r.fallback)
	}
	p := message.NewPrinter(tag, message.Catalog(r.catalog))
	return p.Sprintf(key, args...)
}

func match(accept string, def language.Tag) language.Tag {
	if accept == "" {
		return def
	}
	_, idx, conf := matcher.Match(parseAccept(accept)...)
	if conf == language.No {
		return def
	}
	return supported[idx]
}

func parseAccept(accept string) []language.Tag {
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return []language.Tag{language.Make(accept)}
	}
	return tags
}
