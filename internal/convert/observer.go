package convert

// Observer receives conversion progress. FileCount fires once before any
// work starts; EntryDone fires exactly once per converted entry, in no
// particular order. Implementations must be safe for concurrent EntryDone
// calls. A nil Observer is valid and reports nothing.
type Observer interface {
	FileCount(n int)
	EntryDone()
}

func notifyFileCount(obs Observer, n int) {
	if obs != nil {
		obs.FileCount(n)
	}
}

func notifyEntryDone(obs Observer) {
	if obs != nil {
		obs.EntryDone()
	}
}
