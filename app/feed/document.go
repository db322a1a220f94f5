package feed

import (
	"log/slog"
)

// Document is the ordered list of entries that ends up in the output feed.
// Entries are appended source by source and put in final order by Finalize.
type Document struct {
	Channel   Channel
	Entries   []Entry
	assembler *Assembler
}

func NewDocument(channel Channel) *Document {
	return &Document{
		Channel:   channel,
		assembler: NewAssembler(),
	}
}

// Add assembles item and appends it. Non-public items are refused.
func (d *Document) Add(item Item) bool {
	if !item.IsPublic() {
		slog.Info("Ignoring non-public item", "id", item.ID, "visibility", item.Visibility)
		return false
	}
	d.Entries = append(d.Entries, d.assembler.Run(item))
	return true
}

func (d *Document) AddAll(items []Item) int {
	added := 0
	for _, item := range items {
		if d.Add(item) {
			added++
		}
	}
	return added
}

// Finalize re-sorts every entry by its assigned publish date, newest first,
// regardless of which source produced it.
func (d *Document) Finalize() {
	sortEntriesNewestFirst(d.Entries)
}

func (d *Document) Len() int {
	return len(d.Entries)
}
