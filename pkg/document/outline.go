package document

import (
	"sort"
	"strings"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/pagetree"
)

// maxOutlineItems bounds the outline walk for malformed files.
const maxOutlineItems = 1 << 14

// readOutline flattens the document outline into chapters sorted by page.
// Entries whose destination cannot be resolved to a page (named
// destinations, remote links) are skipped.
func readOutline(r *pdf.Reader) ([]Chapter, error) {
	catalog := r.GetMeta().Catalog
	if catalog == nil || catalog.Outlines == 0 {
		return nil, nil
	}

	pages, err := pagetree.FindPages(r)
	if err != nil {
		return nil, err
	}
	pageIndex := make(map[pdf.Reference]int, len(pages))
	for i, ref := range pages {
		if ref != 0 {
			pageIndex[ref] = i
		}
	}

	root, err := pdf.GetDict(r, catalog.Outlines)
	if err != nil || root == nil {
		return nil, err
	}

	w := outlineWalker{r: r, pages: pageIndex, seen: map[pdf.Reference]bool{}}
	if err := w.walk(root["First"], 0); err != nil {
		return nil, err
	}

	sort.SliceStable(w.out, func(i, j int) bool { return w.out[i].Page < w.out[j].Page })
	return w.out, nil
}

type outlineWalker struct {
	r     pdf.Getter
	pages map[pdf.Reference]int
	seen  map[pdf.Reference]bool
	out   []Chapter
}

func (w *outlineWalker) walk(first pdf.Object, level int) error {
	next := first
	for next != nil {
		ref, ok := next.(pdf.Reference)
		if !ok || w.seen[ref] || len(w.seen) > maxOutlineItems {
			return nil
		}
		w.seen[ref] = true

		item, err := pdf.GetDict(w.r, ref)
		if err != nil {
			return err
		}
		if page, ok := w.destPage(item); ok {
			title := ""
			if s, err := pdf.GetString(w.r, item["Title"]); err == nil {
				title = strings.TrimSpace(string(s.AsTextString()))
			}
			w.out = append(w.out, Chapter{Title: title, Page: page, Level: level})
		}
		if err := w.walk(item["First"], level+1); err != nil {
			return err
		}
		next = item["Next"]
	}
	return nil
}

// destPage resolves an item's /Dest, or the /D of a GoTo action, to a page
// index.
func (w *outlineWalker) destPage(item pdf.Dict) (int, bool) {
	dest := item["Dest"]
	if dest == nil {
		action, err := pdf.GetDict(w.r, item["A"])
		if err != nil || action == nil {
			return 0, false
		}
		if s, _ := pdf.GetName(w.r, action["S"]); s != "GoTo" {
			return 0, false
		}
		dest = action["D"]
	}

	arr, err := pdf.GetArray(w.r, dest)
	if err != nil || len(arr) == 0 {
		return 0, false
	}
	switch target := arr[0].(type) {
	case pdf.Reference:
		page, ok := w.pages[target]
		return page, ok
	case pdf.Integer:
		return int(target), true
	}
	return 0, false
}
