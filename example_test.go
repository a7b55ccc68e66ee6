package fieldmatch_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/aretw0/fieldmatch"
)

// Example_basic demonstrates running a tag pass against a local vault of
// Markdown notes.
func Example_basic() {
	// Create a temporary vault for the example
	tmpDir, err := os.MkdirTemp("", "fieldmatch-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	note := "---\nFront: water\nBack: water\n---\n"
	if err := os.WriteFile(filepath.Join(tmpDir, "water.md"), []byte(note), 0644); err != nil {
		log.Fatal(err)
	}

	// Open the vault through the service facade.
	svc, err := fieldmatch.New(tmpDir, fieldmatch.WithAdapter(fieldmatch.AdapterVault))
	if err != nil {
		log.Fatal(err)
	}

	report, err := svc.ApplyTag(context.Background(), fieldmatch.MatchSpec{
		FieldA:    "Front",
		FieldB:    "Back",
		Mode:      fieldmatch.ModeEqual,
		Tag:       "duplicate",
		TrimSpace: true,
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Tagged %d of %d notes\n", report.Tagged, report.Examined)
	// Output:
	// Tagged 1 of 1 notes
}
