/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: score.go
Description: Score command implementation for the Akaylee Cracker. Computes
log-probability scores of passwords under a trained model, from command-line
arguments or a file of passwords.
*/

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/akaylee-cracker/pkg/corpus"
)

// RunScore computes model scores for the given passwords
func RunScore(cmd *cobra.Command, args []string) error {
	// Load configuration first
	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Load the trained model
	m, err := loadModel()
	if err != nil {
		return err
	}

	// Collect passwords from arguments and the optional input file
	passwords := append([]string{}, args...)
	if input := viper.GetString("score_input"); input != "" {
		src, err := corpus.NewFileSource(input)
		if err != nil {
			return fmt.Errorf("failed to open input file: %w", err)
		}
		for src.Scan() {
			passwords = append(passwords, src.Text())
		}
		err = src.Err()
		src.Close()
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}
	}

	if len(passwords) == 0 {
		return fmt.Errorf("no passwords to score: pass them as arguments or via --input")
	}

	for _, password := range passwords {
		score, err := m.Score(password)
		if err != nil {
			fmt.Printf("%-30s ERROR: %v\n", password, err)
			continue
		}
		fmt.Printf("%-30s %.4f\n", password, score)
	}

	return nil
}
