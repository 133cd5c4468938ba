// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sseindex/sseindex-server/internal/docstore"
	"github.com/sseindex/sseindex-server/internal/keys"
	"github.com/sseindex/sseindex-server/internal/trapdoor"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Interactively query a running server for a keyword",
	Long: `query is the client's search phase: it reads a keyword from the
terminal, derives a trapdoor under the client's key set, sends it to a
running "serve" instance, and prints the matching document IDs. It never
sends the keyword itself over the wire.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, keyfilePath, m, err := queryCmdLoadConfig(cmd)
		if err != nil {
			return err
		}
		return runQuery(cfg, keyfilePath, m)
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)

	queryCmd.Flags().String("server", "http://127.0.0.1:8080", "Base URL of the running server")
	queryCmd.Flags().String("keyfile", "keys.json", "Path to the client's key set, written by build-index")
	queryCmd.Flags().Uint64("m", 32749, "Table size M, must match the value build-index was run with")
}

func queryCmdLoadConfig(cmd *cobra.Command) (string, string, uint64, error) {
	if err := rootCmdLoadConfig(cmd); err != nil {
		return "", "", 0, err
	}
	return viper.GetString("server"), viper.GetString("keyfile"), viper.GetUint64("m"), nil
}

type searchRequestBody struct {
	Index uint64 `json:"index"`
	Mask  string `json:"mask"`
}

type searchResponseBody struct {
	DocIDs []string `json:"doc_ids"`
}

func runQuery(server, keyfilePath string, m uint64) error {
	keyBytes, err := os.ReadFile(keyfilePath)
	if err != nil {
		return fmt.Errorf("reading keyfile: %w", err)
	}
	var clientKeys keys.ClientKeys
	if err := json.Unmarshal(keyBytes, &clientKeys); err != nil {
		return fmt.Errorf("parsing keyfile: %w", err)
	}
	defer clientKeys.Zero()

	httpClient := &http.Client{Timeout: 10 * time.Second}
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println("Enter a keyword to search (empty line to quit):")
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		keyword := strings.TrimSpace(scanner.Text())
		if keyword == "" {
			break
		}

		docIDs, err := searchKeyword(httpClient, server, &clientKeys, m, keyword)
		if err != nil {
			fmt.Fprintf(os.Stderr, "search failed: %v\n", err)
			continue
		}
		if len(docIDs) == 0 {
			fmt.Println("no matching documents")
			continue
		}
		fmt.Printf("matches: %s\n", strings.Join(docIDs, ", "))

		if len(docIDs) == 1 {
			if err := fetchAndPrintDocument(httpClient, server, &clientKeys, docIDs[0]); err != nil {
				fmt.Fprintf(os.Stderr, "fetching document: %v\n", err)
			}
		}
	}
	return scanner.Err()
}

func searchKeyword(client *http.Client, server string, k *keys.ClientKeys, m uint64, keyword string) ([]string, error) {
	td := trapdoor.Generate(k, m, keyword)

	body, err := json.Marshal(searchRequestBody{
		Index: td.Index,
		Mask:  hex.EncodeToString(td.Mask[:]),
	})
	if err != nil {
		return nil, err
	}

	resp, err := client.Post(server+"/api/v1/search", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned %s", resp.Status)
	}

	var parsed searchResponseBody
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	return parsed.DocIDs, nil
}

func fetchAndPrintDocument(client *http.Client, server string, k *keys.ClientKeys, id string) error {
	resp, err := client.Get(server + "/api/v1/documents/" + id)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %s", resp.Status)
	}

	ciphertext, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	plaintext, err := docstore.DecryptDocument(k, ciphertext)
	if err != nil {
		return fmt.Errorf("decrypting document: %w", err)
	}

	fmt.Printf("--- %s ---\n%s\n", id, plaintext)
	return nil
}
