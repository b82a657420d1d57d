package repositories

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/cvadnais/qr-tracker/internal/entities"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	gdb, err := gorm.Open(sqlite.Open(path+"?_busy_timeout=5000"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&entities.Link{}, &entities.ClickEvent{}))

	return gdb
}

func TestLinkRepo_CreateAndGet(t *testing.T) {
	repo := NewLinkRepo(testDB(t))

	link, err := repo.Create("abc123", "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, "abc123", link.Code)
	assert.Equal(t, int64(0), link.Clicks)

	got, err := repo.GetByCode("abc123")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", got.Destination)
}

func TestLinkRepo_DuplicateCode(t *testing.T) {
	repo := NewLinkRepo(testDB(t))

	_, err := repo.Create("abc123", "https://example.com")
	require.NoError(t, err)

	_, err = repo.Create("abc123", "https://other.example")
	assert.ErrorIs(t, err, ErrCodeTaken)
}

func TestLinkRepo_GetByCode_NotFound(t *testing.T) {
	repo := NewLinkRepo(testDB(t))

	_, err := repo.GetByCode("nosuch")
	assert.ErrorIs(t, err, ErrLinkNotFound)
}

func TestLinkRepo_IncrementClicks(t *testing.T) {
	repo := NewLinkRepo(testDB(t))

	_, err := repo.Create("abc123", "https://example.com")
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		link, err := repo.IncrementClicks("abc123")
		require.NoError(t, err)
		assert.Equal(t, int64(i), link.Clicks)
	}
}

func TestLinkRepo_IncrementClicks_NotFound(t *testing.T) {
	repo := NewLinkRepo(testDB(t))

	_, err := repo.IncrementClicks("nosuch")
	assert.ErrorIs(t, err, ErrLinkNotFound)
}

func TestLinkRepo_List_OrderedByClicks(t *testing.T) {
	repo := NewLinkRepo(testDB(t))

	counts := map[string]int{"first1": 5, "second": 3, "third3": 9}
	for _, code := range []string{"first1", "second", "third3"} {
		_, err := repo.Create(code, "https://example.com/"+code)
		require.NoError(t, err)
		for i := 0; i < counts[code]; i++ {
			_, err := repo.IncrementClicks(code)
			require.NoError(t, err)
		}
	}

	links, err := repo.List()
	require.NoError(t, err)
	require.Len(t, links, 3)
	assert.Equal(t, "third3", links[0].Code)
	assert.Equal(t, "first1", links[1].Code)
	assert.Equal(t, "second", links[2].Code)
}

func TestLinkRepo_List_TiesByInsertionOrder(t *testing.T) {
	repo := NewLinkRepo(testDB(t))

	for _, code := range []string{"older1", "newer1"} {
		_, err := repo.Create(code, "https://example.com")
		require.NoError(t, err)
	}

	links, err := repo.List()
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, "older1", links[0].Code)
	assert.Equal(t, "newer1", links[1].Code)
}
