package linkcheck

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// SlugChecker resolves internal link targets against the store.
type SlugChecker interface {
	PageSlugExists(ctx context.Context, slug string) (bool, error)
	PostSlugExists(ctx context.Context, slug string) (bool, error)
	ProductSlugExists(ctx context.Context, slug string) (bool, error)
}

// CheckContent scans an HTML body for anchors pointing at internal
// /pages/{slug}, /blog/{slug} or /products/{slug} paths and verifies
// each referenced slug exists. Unresolved links come back as warning
// strings; saving is never blocked by them.
func CheckContent(ctx context.Context, body string, store SlugChecker) ([]string, error) {
	var warnings []string
	seen := make(map[string]bool)

	tokenizer := html.NewTokenizer(strings.NewReader(body))
	for {
		tt := tokenizer.Next()
		if tt == html.ErrorToken {
			// io.EOF for well-formed input; anything else means the
			// body was malformed enough that we stop scanning.
			return warnings, nil
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}
		token := tokenizer.Token()
		if token.Data != "a" {
			continue
		}
		for _, attr := range token.Attr {
			if attr.Key != "href" {
				continue
			}
			href := strings.TrimSpace(attr.Val)
			if seen[href] {
				continue
			}
			seen[href] = true

			kind, slug, ok := splitInternal(href)
			if !ok {
				continue
			}
			exists, err := slugExists(ctx, store, kind, slug)
			if err != nil {
				return warnings, fmt.Errorf("failed to verify link %s: %w", href, err)
			}
			if !exists {
				warnings = append(warnings, fmt.Sprintf("broken internal link: %s", href))
			}
		}
	}
}

func splitInternal(href string) (kind, slug string, ok bool) {
	for _, prefix := range []string{"/pages/", "/blog/", "/products/"} {
		if !strings.HasPrefix(href, prefix) {
			continue
		}
		rest := strings.TrimPrefix(href, prefix)
		rest = strings.TrimSuffix(rest, "/")
		if rest == "" || strings.ContainsAny(rest, "/?#") {
			return "", "", false
		}
		return prefix, rest, true
	}
	return "", "", false
}

func slugExists(ctx context.Context, store SlugChecker, kind, slug string) (bool, error) {
	switch kind {
	case "/pages/":
		return store.PageSlugExists(ctx, slug)
	case "/blog/":
		return store.PostSlugExists(ctx, slug)
	default:
		return store.ProductSlugExists(ctx, slug)
	}
}
