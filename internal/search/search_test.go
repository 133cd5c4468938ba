package search_test

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sseindex/sseindex-server/internal/index"
	"github.com/sseindex/sseindex-server/internal/keys"
	"github.com/sseindex/sseindex-server/internal/search"
	"github.com/sseindex/sseindex-server/internal/trapdoor"
)

const testM = 32749

func TestZeroedMaskIsNotProtocolError(t *testing.T) {
	k, err := keys.Generate(rand.Reader)
	require.NoError(t, err)
	b := index.NewBuilder(k, testM, rand.Reader)
	a, tbl, err := b.Build([]index.DocKeywords{{DocID: "doc1", Keywords: []string{"cancer"}}})
	require.NoError(t, err)

	td := trapdoor.Generate(k, testM, "cancer")
	td.Mask = [index.EntrySize]byte{} // the Mask type is fixed at 20 bytes, so a wrong-length mask cannot be built here
	_, err = search.Search(tbl, a, td)
	// A zeroed mask of correct width is a forged-but-well-shaped trapdoor,
	// not a protocol error; it must resolve to "no results", never a panic.
	require.NoError(t, err)
}

func TestForgedTrapdoorYieldsEmptyNotError(t *testing.T) {
	k, err := keys.Generate(rand.Reader)
	require.NoError(t, err)
	b := index.NewBuilder(k, testM, rand.Reader)
	a, tbl, err := b.Build([]index.DocKeywords{{DocID: "doc1", Keywords: []string{"cancer"}}})
	require.NoError(t, err)

	other, err := keys.Generate(rand.Reader)
	require.NoError(t, err)
	forged := trapdoor.Generate(other, testM, "cancer")

	got, err := search.Search(tbl, a, forged)
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearchWalksLongChainToTail(t *testing.T) {
	k, err := keys.Generate(rand.Reader)
	require.NoError(t, err)
	b := index.NewBuilder(k, testM, rand.Reader)
	docs := make([]index.DocKeywords, 0, 50)
	for i := 0; i < 50; i++ {
		docs = append(docs, index.DocKeywords{DocID: "doc", Keywords: []string{"w"}})
	}
	a, tbl, err := b.Build(docs)
	require.NoError(t, err)

	td := trapdoor.Generate(k, testM, "w")
	got, err := search.Search(tbl, a, td)
	require.NoError(t, err)
	assert.Len(t, got, 50)
}
