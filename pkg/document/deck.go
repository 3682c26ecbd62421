package document

import (
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	perrors "github.com/matzehuels/podium/pkg/errors"
)

// BlockKind distinguishes the body elements a slide can hold.
type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockBullet
	BlockCode
)

// Block is one body element of a slide.
type Block struct {
	Kind  BlockKind
	Text  string
	Level int // nesting depth for bullets, starting at 0
}

// Slide is the parsed content of one page of a deck.
type Slide struct {
	// Chapter is set when a level-1 heading appears on this slide.
	Chapter string
	Title   string
	Blocks  []Block
	Notes   string
}

const notesPrefix = "Notes:"

// ParseSlides splits Markdown source into slides.
//
// A thematic break ("---" on its own line, preceded by a blank line) starts
// a new slide. A level-1 heading opens a chapter, a level-2 heading sets the
// slide title, and a paragraph starting with "Notes:" turns the rest of the
// slide into speaker notes.
func ParseSlides(src []byte) []Slide {
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var (
		slides  []Slide
		cur     Slide
		inNotes bool
		notes   []string
	)
	flush := func() {
		cur.Notes = strings.Join(notes, "\n")
		if cur.Chapter != "" || cur.Title != "" || len(cur.Blocks) > 0 || cur.Notes != "" {
			slides = append(slides, cur)
		}
		cur, inNotes, notes = Slide{}, false, nil
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if _, ok := n.(*ast.ThematicBreak); ok {
			flush()
			continue
		}
		if inNotes {
			notes = append(notes, blockText(n, src))
			continue
		}
		switch n := n.(type) {
		case *ast.Heading:
			t := inlineText(n, src)
			switch {
			case n.Level == 1 && cur.Chapter == "":
				cur.Chapter = t
				if cur.Title == "" {
					cur.Title = t
				}
			case cur.Title == "" || cur.Title == cur.Chapter:
				cur.Title = t
			default:
				cur.Blocks = append(cur.Blocks, Block{Kind: BlockParagraph, Text: t})
			}
		case *ast.Paragraph:
			t := inlineText(n, src)
			if strings.HasPrefix(t, notesPrefix) {
				inNotes = true
				if rest := strings.TrimSpace(strings.TrimPrefix(t, notesPrefix)); rest != "" {
					notes = append(notes, rest)
				}
				continue
			}
			cur.Blocks = append(cur.Blocks, Block{Kind: BlockParagraph, Text: t})
		case *ast.List:
			cur.Blocks = appendList(cur.Blocks, n, src, 0)
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			cur.Blocks = append(cur.Blocks, Block{Kind: BlockCode, Text: codeText(n, src)})
		}
	}
	flush()
	return slides
}

func appendList(blocks []Block, list *ast.List, src []byte, level int) []Block {
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			if sub, ok := c.(*ast.List); ok {
				blocks = appendList(blocks, sub, src, level+1)
				continue
			}
			blocks = append(blocks, Block{Kind: BlockBullet, Text: inlineText(c, src), Level: level})
		}
	}
	return blocks
}

// inlineText concatenates the text segments below n, turning soft line
// breaks into spaces.
func inlineText(n ast.Node, src []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}

func codeText(n ast.Node, src []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(src))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func blockText(n ast.Node, src []byte) string {
	switch n := n.(type) {
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		return codeText(n, src)
	case *ast.List:
		var lines []string
		for _, b := range appendList(nil, n, src, 0) {
			lines = append(lines, strings.Repeat("  ", b.Level)+"- "+b.Text)
		}
		return strings.Join(lines, "\n")
	default:
		return inlineText(n, src)
	}
}

// OpenDeck reads and parses a Markdown deck.
func OpenDeck(path string) (*Deck, error) {
	if err := perrors.ValidateDocumentPath(path); err != nil {
		return nil, err
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeFileNotFound, err, "open %s", path)
	}
	return NewDeck(src)
}
