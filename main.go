// Package main provides the entry point for the Snyfter viewer.
package main

import (
	"context"
	"log"
	"os"
	"strings"

	fyneapp "fyne.io/fyne/v2/app"

	"snyfter/internal/app"
	"snyfter/internal/extract"
	"snyfter/ui/mainwindow"
	"snyfter/ui/prefs"
)

const (
	appTitle = "Snyfter"

	// defaultExtractor is the command line for the external extraction
	// service, overridable through preferences.
	defaultExtractor = "python3 chonker2.py"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s", appTitle)

	appPrefs := prefs.Load()

	command := strings.Fields(
		appPrefs.StringWithFallback(prefs.KeyExtractorCommand, defaultExtractor))
	runner := extract.NewRunner(command)
	appState := app.NewState(runner)

	fyneApp := fyneapp.NewWithID("io.snyfter.viewer")
	fyneApp.Settings().SetTheme(&app.SnyfterTheme{})

	win := mainwindow.New(fyneApp, appState, appPrefs)

	// A command line argument opens a document at startup: extraction JSON
	// directly, anything else goes through the extractor.
	if len(os.Args) > 1 {
		path := os.Args[1]
		if strings.HasSuffix(path, ".json") {
			if err := appState.LoadDocument(path); err != nil {
				log.Printf("Failed to load document %s: %v", path, err)
			}
		} else {
			if err := appState.Extract(context.Background(), path); err != nil {
				log.Printf("Failed to start extraction for %s: %v", path, err)
			}
		}
	}

	win.ShowAndRun()
}
