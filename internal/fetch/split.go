package fetch

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// SplitGames splits a multi-game PGN stream into individual game records.
// Game boundaries are detected by the [Event ...] tag that opens every
// record. Text before the first [Event tag is ignored.
func SplitGames(r io.Reader) ([]string, error) {
	var games []string

	scanner := bufio.NewScanner(r)
	// Increase buffer size for long lines.
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	var gameText strings.Builder
	inGame := false

	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, "[Event ") {
			if inGame && gameText.Len() > 0 {
				games = append(games, gameText.String())
				gameText.Reset()
			}
			inGame = true
		}

		if inGame {
			gameText.WriteString(line)
			gameText.WriteString("\n")
		}
	}

	if gameText.Len() > 0 {
		games = append(games, gameText.String())
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading PGN: %w", err)
	}

	return games, nil
}
