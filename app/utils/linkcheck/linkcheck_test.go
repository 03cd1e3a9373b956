package linkcheck

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	pages    map[string]bool
	posts    map[string]bool
	products map[string]bool
	err      error
}

func (f fakeStore) PageSlugExists(_ context.Context, slug string) (bool, error) {
	return f.pages[slug], f.err
}

func (f fakeStore) PostSlugExists(_ context.Context, slug string) (bool, error) {
	return f.posts[slug], f.err
}

func (f fakeStore) ProductSlugExists(_ context.Context, slug string) (bool, error) {
	return f.products[slug], f.err
}

func TestCheckContentFlagsBrokenLinks(t *testing.T) {
	store := fakeStore{
		pages:    map[string]bool{"about": true},
		posts:    map[string]bool{"hello-world": true},
		products: map[string]bool{"firestick-4k": true},
	}

	body := `
		<p><a href="/pages/about">ok page</a></p>
		<p><a href="/blog/hello-world">ok post</a></p>
		<p><a href="/products/firestick-4k">ok product</a></p>
		<p><a href="/pages/missing">broken page</a></p>
		<p><a href="/products/gone">broken product</a></p>
	`
	warnings, err := CheckContent(context.Background(), body, store)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"broken internal link: /pages/missing",
		"broken internal link: /products/gone",
	}, warnings)
}

func TestCheckContentIgnoresExternalAndNonContentLinks(t *testing.T) {
	store := fakeStore{}

	body := `
		<a href="https://example.com/pages/whatever">external</a>
		<a href="/cart">app route</a>
		<a href="/blog">listing, no slug</a>
		<a href="/pages/nested/too/deep">not a slug</a>
		<a href="/products/x?utm=1">query string</a>
	`
	warnings, err := CheckContent(context.Background(), body, store)
	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestCheckContentDeduplicatesRepeatedHrefs(t *testing.T) {
	store := fakeStore{}

	body := `
		<a href="/pages/missing">one</a>
		<a href="/pages/missing">two</a>
	`
	warnings, err := CheckContent(context.Background(), body, store)
	require.NoError(t, err)
	assert.Len(t, warnings, 1)
}

func TestCheckContentTrailingSlashAndMalformedHTML(t *testing.T) {
	store := fakeStore{pages: map[string]bool{"about": true}}

	// Trailing slash still resolves; unclosed tags never error.
	warnings, err := CheckContent(context.Background(), `<div><a href="/pages/about/">ok`, store)
	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestCheckContentPropagatesStoreErrors(t *testing.T) {
	store := fakeStore{err: errors.New("db down")}

	warnings, err := CheckContent(context.Background(), `<a href="/pages/about">x</a>`, store)
	assert.Error(t, err)
	assert.Empty(t, warnings)
}
