package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileLoader_Load(t *testing.T) {
	path := writeSeedFile(t, `[
		{"name": "모던 패브릭 소파", "price": 890000, "stock": 5},
		{"name": "원목 의자", "price": 120000, "stock": 20, "isActive": false},
		{"id": "fixed-id", "name": "침대 프레임", "price": 450000, "stock": 3, "image": "https://cdn.example.com/bed.jpg"}
	]`)

	loader := NewFileLoader(zerolog.Nop())

	products, err := loader.Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, products, 3)

	assert.Equal(t, "모던 패브릭 소파", products[0].Name)
	assert.True(t, products[0].IsActive, "isActive defaults to true")
	assert.False(t, products[1].IsActive)
	assert.Equal(t, "fixed-id", products[2].ID)
	require.NotNil(t, products[2].Image)
	assert.Equal(t, "https://cdn.example.com/bed.jpg", *products[2].Image)
}

func TestFileLoader_Load_MissingFile(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())

	_, err := loader.Load(context.Background(), filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestFileLoader_Load_RejectsNamelessEntry(t *testing.T) {
	path := writeSeedFile(t, `[{"price": 1000, "stock": 1}]`)
	loader := NewFileLoader(zerolog.Nop())

	_, err := loader.Load(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no name")
}

func TestFallbackLoader_UsesFileWhenS3Disabled(t *testing.T) {
	path := writeSeedFile(t, `[{"name": "원목 의자", "price": 120000, "stock": 20}]`)

	loader := NewFallbackLoader(nil, NewFileLoader(zerolog.Nop()), "seed/products.json", false, zerolog.Nop())

	products, err := loader.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, products, 1)
}
