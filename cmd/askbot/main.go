// askbot is a minimal test client for a running ZazenBot 5000 API instance.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	persona string
)

var rootCmd = &cobra.Command{
	Use:   "askbot [question]",
	Short: "Ask a question to the ZazenBot 5000 API",
	Args:  cobra.ExactArgs(1),
	RunE:  runAsk,
}

func init() {
	rootCmd.Flags().StringVar(&baseURL, "url", "http://localhost:8000", "base URL of the API")
	rootCmd.Flags().StringVar(&persona, "persona", "", "persona for the answer (politician, wannabe-influencer, robot-with-existential-crisis)")
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]

	payload, err := json.Marshal(map[string]string{
		"question": question,
		"persona":  persona,
	})
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	endpoint := baseURL + "/query"
	cmd.Printf("Sending question to %s: %s\n", endpoint, question)

	client := &http.Client{Timeout: 120 * time.Second}
	resp, err := client.Post(endpoint, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}

	cmd.Println()
	cmd.Println("Response:")
	cmd.Println(string(body))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
