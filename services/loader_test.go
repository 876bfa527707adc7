package services

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-recommendation-engine/errors"
)

func testLogger() Logger {
	return NewStructuredLogger(LogLevelError, io.Discard)
}

func TestParseCatalog(t *testing.T) {
	loader := NewCatalogLoader(testLogger())

	t.Run("parses a clean catalog", func(t *testing.T) {
		data := `title,year,genre,description,rating
The Shawshank Redemption,1994,Drama,Two imprisoned men bond over years,9.3
Inception,2010,"Action, Sci-Fi",A thief steals secrets through dreams,8.8
`
		catalog, err := loader.Parse(strings.NewReader(data))
		require.NoError(t, err)
		require.Equal(t, 2, catalog.Len())

		movie := catalog.Movies[0]
		assert.Equal(t, "The Shawshank Redemption", movie.Title)
		require.NotNil(t, movie.Year)
		assert.Equal(t, 1994, *movie.Year)
		require.NotNil(t, movie.Rating)
		assert.Equal(t, 9.3, *movie.Rating)

		assert.Equal(t, "Action, Sci-Fi", catalog.Movies[1].Genre)
	})

	t.Run("accepts columns in any order", func(t *testing.T) {
		data := `rating,description,title,genre,year
8.0,A story,Some Movie,Drama,2001
`
		catalog, err := loader.Parse(strings.NewReader(data))
		require.NoError(t, err)
		require.Equal(t, 1, catalog.Len())
		assert.Equal(t, "Some Movie", catalog.Movies[0].Title)
		assert.Equal(t, "Drama", catalog.Movies[0].Genre)
	})

	t.Run("missing required column degrades to empty", func(t *testing.T) {
		data := `title,year,genre,description
A Movie,2001,Drama,Something happens
`
		catalog, err := loader.Parse(strings.NewReader(data))
		require.Error(t, err)
		assert.True(t, catalog.IsEmpty())
		assert.NotNil(t, catalog.Movies)

		appErr, ok := errors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, errors.ErrCodeCatalogMissingColumn, appErr.Code)
		assert.Contains(t, appErr.Message, "rating")
	})

	t.Run("malformed rows degrade to empty", func(t *testing.T) {
		data := `title,year,genre,description,rating
Good Movie,2001,Drama,Fine,8.0
"Broken Movie,2002,Drama,unterminated quote,7.0
`
		catalog, err := loader.Parse(strings.NewReader(data))
		require.Error(t, err)
		assert.True(t, catalog.IsEmpty())

		appErr, ok := errors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, errors.ErrCodeCatalogParseFailed, appErr.Code)
	})

	t.Run("quoted fields keep embedded commas and newlines", func(t *testing.T) {
		data := "title,year,genre,description,rating\n" +
			"Complex Movie,2005,\"Drama, Thriller\",\"Line one\nline two, with comma\",7.5\n"
		catalog, err := loader.Parse(strings.NewReader(data))
		require.NoError(t, err)
		require.Equal(t, 1, catalog.Len())
		assert.Equal(t, "Drama, Thriller", catalog.Movies[0].Genre)
		assert.Contains(t, catalog.Movies[0].Description, "line two, with comma")
	})

	t.Run("unparsable year and rating become missing", func(t *testing.T) {
		data := `title,year,genre,description,rating
Odd Movie,unknown,Drama,Something,N/A
Float Year,1994.0,Drama,Something,8.25
`
		catalog, err := loader.Parse(strings.NewReader(data))
		require.NoError(t, err)
		require.Equal(t, 2, catalog.Len())

		assert.Nil(t, catalog.Movies[0].Year)
		assert.Nil(t, catalog.Movies[0].Rating)

		require.NotNil(t, catalog.Movies[1].Year)
		assert.Equal(t, 1994, *catalog.Movies[1].Year)
	})

	t.Run("duplicate titles keep the first occurrence", func(t *testing.T) {
		data := `title,year,genre,description,rating
Twin,1990,Drama,First version,6.0
Twin,2010,Action,Second version,9.0
`
		catalog, err := loader.Parse(strings.NewReader(data))
		require.NoError(t, err)
		require.Equal(t, 1, catalog.Len())
		require.NotNil(t, catalog.Movies[0].Year)
		assert.Equal(t, 1990, *catalog.Movies[0].Year)
		assert.Equal(t, "Drama", catalog.Movies[0].Genre)
	})

	t.Run("rows without a title are dropped", func(t *testing.T) {
		data := `title,year,genre,description,rating
,2001,Drama,No title here,8.0
   ,2002,Drama,Whitespace title,8.0
Real Movie,2003,Drama,Has a title,8.0
`
		catalog, err := loader.Parse(strings.NewReader(data))
		require.NoError(t, err)
		require.Equal(t, 1, catalog.Len())
		assert.Equal(t, "Real Movie", catalog.Movies[0].Title)
	})

	t.Run("catalog with no surviving rows is an error", func(t *testing.T) {
		data := `title,year,genre,description,rating
,2001,Drama,No title,8.0
`
		catalog, err := loader.Parse(strings.NewReader(data))
		require.Error(t, err)
		assert.True(t, catalog.IsEmpty())

		appErr, ok := errors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, errors.ErrCodeCatalogEmpty, appErr.Code)
	})

	t.Run("header is case and whitespace insensitive", func(t *testing.T) {
		data := `Title, Year ,GENRE,Description,Rating
A Movie,2001,Drama,Something,8.0
`
		catalog, err := loader.Parse(strings.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, 1, catalog.Len())
	})
}

func TestLoadCatalogMissingFile(t *testing.T) {
	loader := NewCatalogLoader(testLogger())

	catalog, err := loader.LoadCatalog("testdata/does-not-exist.csv")
	require.Error(t, err)
	assert.True(t, catalog.IsEmpty())
	assert.NotNil(t, catalog.Movies)

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeCatalogFileNotFound, appErr.Code)
}

func TestLoadCatalogFromFile(t *testing.T) {
	loader := NewCatalogLoader(testLogger())

	catalog, err := loader.LoadCatalog("testdata/movies.csv")
	require.NoError(t, err)
	assert.Greater(t, catalog.Len(), 0)

	for _, movie := range catalog.Movies {
		assert.NotEmpty(t, movie.Title)
	}
}
