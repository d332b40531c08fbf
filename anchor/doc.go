// Package anchor tracks where in the caption History a copy should start.
//
// A Tracker is either in the auto state, where every History rewrite moves
// the anchor back to 0, or in the user-set state, where it stays at the
// position the user picked. Offsets stay meaningful across updates because
// the reconciler only ever appends or replaces a suffix of History.
//
// Copy is guarded by an atomic flag: a second call made while the first is
// still delivering returns at once with CopyResult.Skipped set.
//
//	t := anchor.New()
//	t.SelectWord(clickPos, history)
//	res, err := t.Copy(ctx,
//	    func() (string, bool) { return t.Extract(history) },
//	    paste,
//	)
package anchor
