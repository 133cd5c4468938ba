package keywordload_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sseindex/sseindex-server/internal/keywordload"
)

func TestLoadExtractsCommaSeparatedDiseases(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc1.txt"), []byte("Name: Jane\nDisease: Cancer, Diabetes\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc2.txt"), []byte("Disease: flu\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.md"), []byte("Disease: nope\n"), 0o644))

	docs, documents, err := keywordload.Load(dir)
	require.NoError(t, err)

	require.Len(t, docs, 2)
	assert.Equal(t, "doc1.txt", docs[0].DocID)
	assert.Equal(t, []string{"cancer", "diabetes"}, docs[0].Keywords)
	assert.Equal(t, "doc2.txt", docs[1].DocID)
	assert.Equal(t, []string{"flu"}, docs[1].Keywords)

	assert.Len(t, documents, 2)
	assert.NotContains(t, documents, "ignored.md")
}

func TestLoadSkipsDocumentsWithNoDiseaseLine(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc1.txt"), []byte("Name: Jane\n"), 0o644))

	docs, _, err := keywordload.Load(dir)
	require.NoError(t, err)
	assert.Empty(t, docs)
}
