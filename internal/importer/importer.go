// Package importer loads markdown decks from local directories or git
// repositories into the store, skipping cards that are already present.
package importer

import (
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/SaptaAjiSadewo/flashcard-rpg/internal/deck"
	"github.com/SaptaAjiSadewo/flashcard-rpg/internal/dedupe"
	"github.com/SaptaAjiSadewo/flashcard-rpg/internal/domain"
	"github.com/SaptaAjiSadewo/flashcard-rpg/internal/gitsource"
	"github.com/SaptaAjiSadewo/flashcard-rpg/internal/parser"
)

// importedDescription is used when an imported deck names a chapter that
// does not exist yet; chapters require a non-empty description.
const importedDescription = "Bab hasil impor"

// Run imports every source in order. Git URLs are synced into reposDir
// first. Per-source failures are logged and skipped so one broken source
// does not block the rest.
func Run(mgr *deck.Manager, sources []string, reposDir string) {
	if len(sources) == 0 {
		slog.Info("no import sources configured")
		return
	}

	if err := os.MkdirAll(reposDir, 0o755); err != nil {
		slog.Error("failed to create repos directory", "dir", reposDir, "error", err)
		return
	}

	for _, source := range sources {
		path := source
		if isGitURL(source) {
			localPath, err := gitURLToLocalPath(reposDir, source)
			if err != nil {
				slog.Error("cannot determine local path for git source", "url", source, "error", err)
				continue
			}
			if err := gitsource.Sync(source, localPath); err != nil {
				slog.Error("failed to sync git source", "url", source, "error", err)
				continue
			}
			path = localPath
		}

		added, skipped, err := importDirectory(mgr, path)
		if err != nil {
			slog.Error("failed to import source", "path", path, "error", err)
			continue
		}
		slog.Info("source imported", "path", path, "added", added, "skipped", skipped)
	}
}

// importDirectory walks a directory tree, parses every .md deck file and
// adds the cards whose content is not already stored under the same
// (language, chapter).
func importDirectory(mgr *deck.Manager, dir string) (added, skipped int, err error) {
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}

		parsed, parseErr := parser.ParseFile(path)
		if parseErr != nil {
			slog.Warn("skipping unreadable deck file", "path", path, "error", parseErr)
			return nil
		}

		for _, pc := range parsed {
			if pc.Language == "" || pc.Chapter == "" {
				slog.Warn("skipping card without language or chapter header", "path", path)
				skipped++
				continue
			}

			if _, err := mgr.AddChapter(domain.ChapterInput{
				Language:    pc.Language,
				Name:        pc.Chapter,
				Description: importedDescription,
			}); err != nil {
				return fmt.Errorf("ensuring chapter %q: %w", pc.Chapter, err)
			}

			existing, err := mgr.FilteredCards(pc.Language, pc.Chapter)
			if err != nil {
				return err
			}
			seen := make(map[string]bool, len(existing))
			for _, card := range existing {
				seen[dedupe.Hash(card)] = true
			}

			candidate := domain.Card{
				Question:    pc.Question,
				Code:        pc.Code,
				Explanation: pc.Explanation,
			}
			if seen[dedupe.Hash(candidate)] {
				skipped++
				continue
			}

			if _, err := mgr.AddCard(domain.CardInput{
				Language:    pc.Language,
				Chapter:     pc.Chapter,
				Question:    pc.Question,
				Code:        pc.Code,
				Explanation: pc.Explanation,
			}); err != nil {
				return fmt.Errorf("adding card from %s: %w", path, err)
			}
			added++
		}
		return nil
	})
	if walkErr != nil {
		return added, skipped, walkErr
	}
	return added, skipped, nil
}

func isGitURL(source string) bool {
	return strings.HasSuffix(source, ".git") ||
		strings.HasPrefix(source, "git@") ||
		strings.HasPrefix(source, "https://") ||
		strings.HasPrefix(source, "http://")
}

// gitURLToLocalPath maps a git URL (https or scp-like) onto a stable
// directory under baseDir.
func gitURLToLocalPath(baseDir, repoURL string) (string, error) {
	parsedURL, err := url.Parse(repoURL)
	if err != nil || (parsedURL.Scheme != "https" && parsedURL.Scheme != "http") {
		if strings.Contains(repoURL, "@") {
			parts := strings.Split(repoURL, ":")
			if len(parts) == 2 {
				hostAndUser := strings.Split(parts[0], "@")
				if len(hostAndUser) == 2 {
					host := hostAndUser[1]
					repoPath := strings.TrimSuffix(parts[1], ".git")
					return filepath.Join(baseDir, host, repoPath), nil
				}
			}
		}
		return "", fmt.Errorf("could not parse git URL: %s", repoURL)
	}

	sanitizedPath := strings.TrimSuffix(parsedURL.Path, ".git")
	return filepath.Join(baseDir, parsedURL.Host, sanitizedPath), nil
}
