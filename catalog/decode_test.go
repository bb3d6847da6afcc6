package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviesearch/catalog"
	"moviesearch/errs"
	"moviesearch/movie"
)

func TestDecode(t *testing.T) {
	t.Run("duplicates collapse to set membership", func(t *testing.T) {
		c, err := catalog.Decode([]byte(`[{"title":"Heat","year":1995,"cast":["Al","Al","Robert"],"genres":["Crime","Crime"]}]`))

		require.NoError(t, err)
		require.Len(t, c, 1)
		assert.Equal(t, movie.NewSet("Al", "Robert"), c[0].Cast)
		assert.Equal(t, movie.NewSet("Crime"), c[0].Genres)
	})

	t.Run("keeps document order", func(t *testing.T) {
		c, err := catalog.Decode([]byte(catalogA))

		require.NoError(t, err)
		assert.Equal(t, "The Matrix", c[0].Title)
		assert.Equal(t, "Amélie", c[1].Title)
	})

	tests := []struct {
		name  string
		input []byte
		is    error
	}{
		{name: "invalid utf-8", input: []byte("[\"\xc3\x28\"]"), is: catalog.ErrNotUTF8},
		{name: "object instead of array", input: []byte(`{"title":"Heat"}`)},
		{name: "wrong field type", input: []byte(`[{"title":"Heat","year":"1995"}]`)},
		{name: "null document", input: []byte(`null`)},
		{name: "truncated", input: []byte(`[{"title":`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := catalog.Decode(tt.input)

			assert.Nil(t, c)
			assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}
