package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var (
	version = "dev"

	// Global flags
	dsn    string
	dryRun bool

	// Load command flags
	dir       string
	chunkSize int
	batchSize int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "corpus-loader",
	Short:   "Load reference text into the nelson-chat corpus store",
	Version: version,
}

var loadChaptersCmd = &cobra.Command{
	Use:   "load-chapters",
	Short: "Load chapter files into chapter_chunks",
	Long: `Load chapter files into the chapter_chunks collection.

Each file in --dir becomes one chapter; the file name (without
extension, underscores as spaces) is the chapter title. The body is
split on blank lines and packed into chunks of roughly --chunk-size
characters.

Examples:
  # Load all chapter files
  corpus-loader load-chapters --dir ./chapters

  # Preview without writing
  corpus-loader load-chapters --dir ./chapters --dry-run`,
	RunE: runLoadChapters,
}

var loadChunksCmd = &cobra.Command{
	Use:   "load-chunks",
	Short: "Load textbook excerpt files into nelson_chunks",
	RunE:  runLoadChunks,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dsn, "dsn", os.Getenv("DATABASE_URL"), "Postgres DSN (defaults to DATABASE_URL)")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Report what would be loaded without writing")

	for _, cmd := range []*cobra.Command{loadChaptersCmd, loadChunksCmd} {
		cmd.Flags().StringVar(&dir, "dir", "", "Directory of .txt/.md source files (required)")
		cmd.Flags().IntVar(&chunkSize, "chunk-size", 1200, "Approximate chunk size in characters")
		cmd.Flags().IntVar(&batchSize, "batch-size", 100, "Rows per insert transaction")
		_ = cmd.MarkFlagRequired("dir")
	}

	rootCmd.AddCommand(loadChaptersCmd, loadChunksCmd)
}

func openDB() (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("--dsn or DATABASE_URL is required")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}
	return db, nil
}

func runLoadChapters(cmd *cobra.Command, args []string) error {
	return loadFiles(func(db *sql.DB, title string, chunks []string) error {
		return insertBatched(db, chunks, batchSize, func(tx *sql.Tx, chunk string) error {
			_, err := tx.Exec("INSERT INTO chapter_chunks (chapter, content) VALUES ($1, $2)", title, chunk)
			return err
		})
	})
}

func runLoadChunks(cmd *cobra.Command, args []string) error {
	return loadFiles(func(db *sql.DB, title string, chunks []string) error {
		return insertBatched(db, chunks, batchSize, func(tx *sql.Tx, chunk string) error {
			_, err := tx.Exec("INSERT INTO nelson_chunks (chunk_text) VALUES ($1)", chunk)
			return err
		})
	})
}

func loadFiles(insert func(db *sql.DB, title string, chunks []string) error) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory: %w", err)
	}

	var db *sql.DB
	if !dryRun {
		db, err = openDB()
		if err != nil {
			return err
		}
		defer db.Close()
	}

	files := 0
	total := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".txt" && ext != ".md" {
			continue
		}

		raw, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", entry.Name(), err)
		}

		title := chapterTitle(entry.Name())
		chunks := splitChunks(string(raw), chunkSize)
		if len(chunks) == 0 {
			continue
		}

		if dryRun {
			fmt.Printf("would load %s: %d chunks\n", title, len(chunks))
		} else {
			if err := insert(db, title, chunks); err != nil {
				return fmt.Errorf("failed to load %s: %w", title, err)
			}
			fmt.Printf("loaded %s: %d chunks\n", title, len(chunks))
		}
		files++
		total += len(chunks)
	}

	fmt.Printf("done: %d files, %d chunks\n", files, total)
	return nil
}

// chapterTitle derives a human-readable chapter title from a file name.
func chapterTitle(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return strings.ReplaceAll(base, "_", " ")
}

// splitChunks splits text on blank lines and packs paragraphs into
// chunks of roughly maxChars characters. A single oversized paragraph
// stays whole; full-text search does not need exact sizing.
func splitChunks(text string, maxChars int) []string {
	paragraphs := strings.Split(text, "\n\n")

	var chunks []string
	var sb strings.Builder
	for _, p := range paragraphs {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if sb.Len() > 0 && sb.Len()+len(p) > maxChars {
			chunks = append(chunks, sb.String())
			sb.Reset()
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(p)
	}
	if sb.Len() > 0 {
		chunks = append(chunks, sb.String())
	}
	return chunks
}

func insertBatched(db *sql.DB, chunks []string, batch int, insert func(tx *sql.Tx, chunk string) error) error {
	for start := 0; start < len(chunks); start += batch {
		end := min(start+batch, len(chunks))

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin tx: %w", err)
		}
		for _, chunk := range chunks[start:end] {
			if err := insert(tx, chunk); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("failed to insert chunk: %w", err)
			}
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit: %w", err)
		}
	}
	return nil
}
