/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: discover.go
Description: Discover command implementation for the Akaylee Cracker. Scrapes
an HTML index page for wordlist links and prints the absolute URLs for use as
training corpora.
*/

package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/akaylee-cracker/pkg/corpus"
)

// RunDiscover scrapes an index page for wordlist links
func RunDiscover(cmd *cobra.Command, args []string) error {
	// Load configuration first
	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	indexURL := viper.GetString("index_url")
	timeout := viper.GetDuration("index_timeout")

	links, err := corpus.DiscoverWordlists(context.Background(), indexURL, timeout)
	if err != nil {
		return fmt.Errorf("discovery failed: %w", err)
	}
	if len(links) == 0 {
		return fmt.Errorf("no wordlist links found at %s", indexURL)
	}

	for _, link := range links {
		fmt.Println(link)
	}
	fmt.Printf("\n✅ Found %d wordlists\n", len(links))
	return nil
}
