package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoizeCachesUntilInvalidated(t *testing.T) {
	c := New()
	calls := 0
	load := func() (string, error) {
		calls++
		return "value", nil
	}

	got, err := Memoize(c, "k", time.Minute, []string{TagProducts}, load)
	require.NoError(t, err)
	assert.Equal(t, "value", got)

	got, err = Memoize(c, "k", time.Minute, []string{TagProducts}, load)
	require.NoError(t, err)
	assert.Equal(t, "value", got)
	assert.Equal(t, 1, calls)

	c.InvalidateTags(TagProducts)

	_, err = Memoize(c, "k", time.Minute, []string{TagProducts}, load)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestMemoizeNeverCachesErrors(t *testing.T) {
	c := New()
	calls := 0
	load := func() (int, error) {
		calls++
		if calls == 1 {
			return 0, errors.New("transient")
		}
		return 42, nil
	}

	_, err := Memoize(c, "k", time.Minute, nil, load)
	assert.Error(t, err)

	got, err := Memoize(c, "k", time.Minute, nil, load)
	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, 2, calls)
}

func TestInvalidateTagsIsSelective(t *testing.T) {
	c := New()
	load := func(v string) func() (string, error) {
		return func() (string, error) { return v, nil }
	}

	_, err := Memoize(c, "p1", time.Minute, []string{TagProducts}, load("a"))
	require.NoError(t, err)
	_, err = Memoize(c, "m1", time.Minute, []string{TagMenus}, load("b"))
	require.NoError(t, err)

	c.InvalidateTags(TagProducts)

	// Menu entry survives a product invalidation.
	calls := 0
	got, err := Memoize(c, "m1", time.Minute, []string{TagMenus}, func() (string, error) {
		calls++
		return "fresh", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "b", got)
	assert.Zero(t, calls)
}

func TestInvalidatePathUsesOwnNamespace(t *testing.T) {
	c := New()

	_, err := Memoize(c, "route", time.Minute, []string{TagProducts, PathTag("/uk/products")}, func() ([]string, error) {
		return []string{"x"}, nil
	})
	require.NoError(t, err)

	c.InvalidatePath("/uk/products")

	calls := 0
	_, err = Memoize(c, "route", time.Minute, []string{TagProducts, PathTag("/uk/products")}, func() ([]string, error) {
		calls++
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}
