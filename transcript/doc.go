// Package transcript reconciles live caption snapshots into one growing
// History and stores finished transcripts.
//
// Core types:
//   - Reconciler: Merges overlapping, truncating caption snapshots
//   - Change: Which reconciliation branch an update took
//   - Record: A saved History with metadata
//   - Manager: Interface for saved transcript management
//   - FileStore: File-based transcript storage implementation
//   - Searcher: Case-insensitive search over saved transcripts
//   - Viewer: History rendering and transcript export
//
// The reconciler locates the boundary between the previous snapshot and the
// new one with a 20-character fingerprint taken from the end of the previous
// snapshot, walking backward at most 200 characters. Matching is
// case-insensitive; the splice into History uses the original text.
//
// Example usage:
//
//	r := transcript.NewReconciler(transcript.ReconcilerConfig{})
//	r.Update("good morning everyone and welcome")
//	r.Update("good morning everyone and welcome to the weekly review")
//	fmt.Println(r.History())
//
//	store, _ := transcript.NewFileStore(transcript.StoreConfig{BaseDir: dir})
//	err := store.Save(transcript.NewRecord(id, meta, r.History(), r.Previous(), 0))
package transcript
