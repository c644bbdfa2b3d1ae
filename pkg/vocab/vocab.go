/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: vocab.go
Description: Word vocabulary for the Akaylee Cracker tokenizer. Decides whether a
letter run is a known dictionary WORD or an arbitrary FRAG. Ships with a compact
built-in list of common password base words and can be extended from wordlist files.
*/

package vocab

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"
)

// Vocabulary is a case-insensitive set of known words. Lookups after
// construction are read-only and safe for concurrent use; Add and LoadFile
// are guarded for callers that extend the set at startup.
type Vocabulary struct {
	mu    sync.RWMutex
	words map[string]struct{}
}

// New creates a vocabulary seeded with the built-in common-word list.
func New() *Vocabulary {
	v := Empty()
	for _, w := range defaultWords {
		v.words[w] = struct{}{}
	}
	return v
}

// Empty creates a vocabulary with no entries. Used by tests that need every
// letter run classified as FRAG.
func Empty() *Vocabulary {
	return &Vocabulary{words: make(map[string]struct{})}
}

// Add inserts a single word (lowercased).
func (v *Vocabulary) Add(word string) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return
	}
	v.mu.Lock()
	v.words[word] = struct{}{}
	v.mu.Unlock()
}

// Contains reports whether the word is in the vocabulary. The word is
// expected to already be lowercase (tokenizer input is normalized).
func (v *Vocabulary) Contains(word string) bool {
	v.mu.RLock()
	_, ok := v.words[word]
	v.mu.RUnlock()
	return ok
}

// Len returns the number of words in the vocabulary.
func (v *Vocabulary) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.words)
}

// LoadFile merges a wordlist file (one word per line, blank lines and lines
// starting with '#' skipped) into the vocabulary. Returns the number of
// words added.
func (v *Vocabulary) LoadFile(path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open wordlist: %w", err)
	}
	defer file.Close()

	added := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		v.mu.Lock()
		if _, ok := v.words[word]; !ok {
			v.words[word] = struct{}{}
			added++
		}
		v.mu.Unlock()
	}
	if err := scanner.Err(); err != nil {
		return added, fmt.Errorf("failed to read wordlist: %w", err)
	}
	return added, nil
}

// defaultWords is a compact built-in vocabulary covering the base words that
// dominate leaked password corpora, so WORD detection works out of the box
// without an external wordlist.
var defaultWords = []string{
	"password", "love", "angel", "monkey", "dragon", "shadow", "master",
	"sunshine", "princess", "flower", "summer", "winter", "spring", "autumn",
	"hello", "welcome", "freedom", "whatever", "secret", "super", "silver",
	"golden", "purple", "orange", "yellow", "green", "black", "white", "blue",
	"red", "pink", "happy", "lucky", "crazy", "sweet", "baby", "girl", "boy",
	"man", "woman", "king", "queen", "prince", "star", "moon", "sun", "sky",
	"rain", "fire", "water", "earth", "wind", "storm", "thunder", "lightning",
	"rock", "stone", "river", "ocean", "mountain", "forest", "tiger", "lion",
	"bear", "wolf", "eagle", "hawk", "falcon", "horse", "dog", "cat", "bird",
	"fish", "snake", "spider", "butterfly", "music", "dance", "song", "movie",
	"book", "game", "play", "sport", "soccer", "football", "baseball",
	"basketball", "hockey", "tennis", "golf", "chess", "poker", "magic",
	"wizard", "witch", "ghost", "demon", "devil", "heaven", "hell", "god",
	"jesus", "church", "peace", "hope", "faith", "trust", "dream", "wish",
	"heart", "soul", "mind", "body", "life", "death", "time", "space",
	"world", "home", "house", "family", "friend", "mother", "father",
	"sister", "brother", "cookie", "candy", "sugar", "honey", "coffee",
	"pepper", "ginger", "cherry", "apple", "banana", "lemon", "peach",
	"berry", "grape", "melon", "mango", "school", "college", "student",
	"teacher", "doctor", "nurse", "police", "soldier", "ninja", "samurai",
	"pirate", "knight", "hero", "legend", "winner", "champion", "hunter",
	"killer", "danger", "trouble", "monster", "zombie", "vampire", "guitar",
	"piano", "drums", "violin", "diamond", "pearl", "ruby", "emerald",
	"crystal", "metal", "steel", "iron", "copper", "bronze", "smile",
	"laugh", "cry", "kiss", "hug", "forever", "always", "never", "maybe",
	"please", "thanks", "sorry", "money", "power", "glory", "honor",
	"justice", "liberty", "victory", "spirit", "energy", "light", "dark",
	"night", "day", "morning", "evening", "midnight", "sunrise", "sunset",
}
