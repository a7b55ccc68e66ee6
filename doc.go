// Package fieldmatch is the Composition Root for the fieldmatch tool.
//
// It connects the core matching logic (Domain Layer) with the collection
// adapters (Host Layer) using the Hexagonal Architecture pattern.
//
// Philosophy:
//
// fieldmatch compares two fields across a filtered set of flashcard notes
// and applies a tag to the notes whose fields are equal, unequal, or match a
// custom rule. The notes themselves are owned by a host: either a running
// Anki instance reached through the AnkiConnect add-on, or a local directory
// of Markdown notes with YAML frontmatter. The core is agnostic to the host;
// each host is an adapter behind the core.Collection port.
//
// Features:
//
//   - **Hexagonal Architecture**: matching logic is isolated from host details.
//   - **Two adapters**: AnkiConnect (HTTP) and vault (Markdown + frontmatter).
//   - **Idempotent**: tags form a set; re-running a pass never duplicates.
//   - **Filter syntax**: the host's own search for AnkiConnect, a compatible
//     subset (tag:, deck:, field:value, negation, quotes) for the vault.
//   - **Persisted dialog state**: the last spec pre-fills the next run.
//
// Usage:
//
//	// Tag notes whose Reading and Kana fields differ
//	svc, err := fieldmatch.New("http://127.0.0.1:8765")
//	report, err := svc.ApplyTag(ctx, fieldmatch.MatchSpec{
//		FieldA: "Reading",
//		FieldB: "Kana",
//		Filter: "deck:vocab",
//		Mode:   fieldmatch.ModeUnequal,
//		Tag:    "check-reading",
//	})
package fieldmatch
