// Command codemend runs one self-healing pass over a project directory:
// it loads source files into memory, drives the remediation pipeline, and
// reports what was detected and what was fixed.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"codemend/internal/defect"
	"codemend/internal/healer"
	"codemend/internal/llm"
)

var sourceExts = map[string]bool{
	".js": true, ".jsx": true, ".ts": true, ".tsx": true,
	".mjs": true, ".cjs": true,
}

var skipDirs = map[string]bool{
	"node_modules": true, ".git": true, "dist": true, "build": true,
	".next": true, "coverage": true,
}

func main() {
	project := flag.String("project", "", "path to the project root")
	model := flag.String("model", "gemini-2.5-flash", "Gemini model id")
	maxFixes := flag.Int("max-fixes", 10, "maximum defects to attempt in one run")
	apply := flag.Bool("apply", false, "write validated fixes back to disk")
	out := flag.String("out", "heal.json", "path for the JSON run result")
	flag.Parse()
	if *project == "" {
		log.Fatal("--project is required")
	}

	_ = godotenv.Load()
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal("GEMINI_API_KEY is not set")
	}

	ctx := context.Background()
	gemini, err := llm.NewGeminiClient(ctx, apiKey, *model)
	if err != nil {
		log.Fatal(err)
	}
	defer gemini.Close()
	var client llm.Client = llm.Retry(3, 300*time.Millisecond)(gemini)

	files, err := loadProject(*project)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("loaded %d source files from %s", len(files), *project)

	h := healer.New(client)
	result, err := h.Heal(ctx, files, healer.Options{
		MaxFixes:  *maxFixes,
		AutoApply: *apply,
		OnProgress: func(stage healer.Stage, message string) {
			log.Printf("[%s] %s", stage, message)
		},
	})
	if err != nil {
		log.Fatal(err)
	}

	writeJSON(*out, result)
	if *apply {
		applyFixes(*project, result, files)
	}
	log.Printf("detected %d, fixed %d, modified %v (%s)",
		result.Summary.Detected, result.Summary.Fixed,
		result.Summary.FilesModified, result.Summary.Elapsed)
}

func loadProject(root string) (map[string]string, error) {
	files := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !sourceExts[filepath.Ext(path)] {
			return nil
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = string(b)
		return nil
	})
	return files, err
}

func applyFixes(root string, result *defect.Result, files map[string]string) {
	for _, path := range result.Summary.FilesModified {
		abs := filepath.Join(root, filepath.FromSlash(path))
		if !strings.HasPrefix(abs, filepath.Clean(root)+string(os.PathSeparator)) {
			log.Printf("skipping %s: escapes project root", path)
			continue
		}
		if err := os.WriteFile(abs, []byte(files[path]), 0o644); err != nil {
			log.Printf("write %s: %v", path, err)
			continue
		}
		log.Printf("applied fix to %s", path)
	}
}

func writeJSON(path string, v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Printf("encode %s: %v", path, err)
		return
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		log.Printf("write %s: %v", path, err)
	}
}
