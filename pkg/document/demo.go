package document

const demoDeck = `# Podium

## Dual-screen presenting from the terminal

The keys are listed at the bottom of the console. **G** opens the chapter list.

Notes: This is the speaker half of the page. The audience never sees it
while split mode is on.

---

## Moving around

- Right, Space, Page Down: next slide
- Left, Backspace, Page Up: previous slide
- Home and End jump to the first and last slide

Notes: Try the arrow keys now.

---

# Pointing

## Laser and magnifier

- **L** shows the laser pointer
- **Z** toggles the magnifier
- **N** returns to the normal cursor

Notes: Only one of laser and magnifier is active at a time.

---

## Drawing on slides

- **D** toggles annotation mode
- Drag to draw, **C** clears the canvas
- Changing slides wipes all strokes

Notes: Strokes are kept in screen space and are not saved.

---

# Screens

## Choosing displays

With two displays, **S** swaps audience and console.
With three or more, **M** opens the display map to move either one.

Notes: The console never shares a display with the audience when there is
a choice.
`

// NewDemo returns the built-in demo deck.
func NewDemo() *Deck {
	d, err := NewDeck([]byte(demoDeck))
	if err != nil {
		panic("document: demo deck does not parse: " + err.Error())
	}
	return d
}
