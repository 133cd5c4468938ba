// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sseindex/sseindex-server/internal/docstore"
	"github.com/sseindex/sseindex-server/internal/index"
	"github.com/sseindex/sseindex-server/internal/keys"
	"github.com/sseindex/sseindex-server/internal/keywordload"
)

var buildCmd = &cobra.Command{
	Use:   "build-index documents_dir",
	Short: "Build the encrypted index and document store from a document directory",
	Long: `build-index is the client's offline setup phase: it generates a
fresh key set, extracts keywords from every document under
documents_dir, builds the encrypted array A and table T, encrypts the
documents, and writes all three to the configured database. The key set
is written to --keyfile and must never be given to the server.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, keyfilePath, err := buildCmdLoadConfig(cmd)
		if err != nil {
			return err
		}
		return runBuild(cfg, keyfilePath, args[0])
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().String("db-type", "sqlite", "Database driver: sqlite or postgres")
	buildCmd.Flags().String("db-dsn", "", "Database connection string")
	buildCmd.Flags().Uint64("m", 32749, "Table size M (should be prime, comfortably above expected postings)")
	buildCmd.Flags().String("keyfile", "keys.json", "Output path for the client's key set")
}

func buildCmdLoadConfig(cmd *cobra.Command) (*SSEServerConfig, string, error) {
	if err := rootCmdLoadConfig(cmd); err != nil {
		return nil, "", err
	}

	cfg, err := loadConfigFile()
	if err != nil {
		return nil, "", err
	}

	if cmd.Flags().Changed("db-type") || cfg.DB.Type == "" {
		cfg.DB.Type = viper.GetString("db-type")
	}
	if cmd.Flags().Changed("db-dsn") || cfg.DB.DSN == "" {
		cfg.DB.DSN = viper.GetString("db-dsn")
	}
	if cmd.Flags().Changed("m") || cfg.Index.M == 0 {
		cfg.Index.M = viper.GetUint64("m")
	}

	if err := cfg.Index.validate(); err != nil {
		return nil, "", err
	}

	return &cfg, viper.GetString("keyfile"), nil
}

func runBuild(cfg *SSEServerConfig, keyfilePath, docsDir string) error {
	docs, documents, err := keywordload.Load(docsDir)
	if err != nil {
		return fmt.Errorf("loading documents: %w", err)
	}
	if len(docs) == 0 {
		return fmt.Errorf("no documents with keyword lines found under %s", docsDir)
	}
	slog.Info("loaded documents", "count", len(docs))

	clientKeys, err := keys.Generate(rand.Reader)
	if err != nil {
		return fmt.Errorf("generating keys: %w", err)
	}

	builder := index.NewBuilder(clientKeys, cfg.Index.M, rand.Reader)
	array, table, err := builder.Build(docs)
	if err != nil {
		return fmt.Errorf("building index: %w", err)
	}
	slog.Info("built index", "postings", array.Len(), "table_size", table.Len())

	plainDocs := make(map[string][]byte, len(documents))
	for id, content := range documents {
		plainDocs[id] = []byte(content)
	}
	encDocs, err := docstore.EncryptDocuments(clientKeys, plainDocs)
	if err != nil {
		return fmt.Errorf("encrypting documents: %w", err)
	}

	db, err := cfg.DB.open()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	if err := db.PutNodes(array.Entries()); err != nil {
		return fmt.Errorf("storing array: %w", err)
	}
	if err := db.PutTable(table.Entries()); err != nil {
		return fmt.Errorf("storing table: %w", err)
	}
	if err := db.PutDocuments(encDocs); err != nil {
		return fmt.Errorf("storing documents: %w", err)
	}

	keyBytes, err := json.MarshalIndent(clientKeys, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding keyfile: %w", err)
	}
	if err := os.WriteFile(keyfilePath, keyBytes, 0o600); err != nil {
		return fmt.Errorf("writing keyfile: %w", err)
	}
	clientKeys.Zero()

	slog.Info("build complete", "keyfile", keyfilePath)
	return nil
}
