package ragchat

import "time"

// DefaultRevealSpeed is the time between two revealed characters.
const DefaultRevealSpeed = 12 * time.Millisecond

// RevealState is the position of a typing animation over a block sequence.
// Blocks before Index are fully shown, block Index shows its first Chars
// characters and later blocks are hidden. Index == len(blocks) is done.
type RevealState struct {
	Index int
	Chars int
	// Carry is elapsed time not yet converted into a whole tick.
	Carry time.Duration
}

// Done reports whether every block in blocks has been revealed.
func (s RevealState) Done(blocks []Block) bool {
	return s.Index >= len(blocks)
}

// Advance converts elapsed time into ticks of speed each and applies them to
// s. Each tick reveals one character of the current block; revealing the
// last character moves to the start of the next block. Empty blocks are
// passed over without consuming a tick. A non-positive speed reveals
// everything at once.
func Advance(blocks []Block, s RevealState, speed, elapsed time.Duration) RevealState {
	done := RevealState{Index: len(blocks)}
	if s.Done(blocks) || speed <= 0 {
		return done
	}
	s = settle(blocks, s)
	s.Carry += elapsed
	for s.Carry >= speed && !s.Done(blocks) {
		s.Carry -= speed
		s.Chars++
		s = settle(blocks, s)
	}
	if s.Done(blocks) {
		return done
	}
	return s
}

// settle moves past fully revealed blocks.
func settle(blocks []Block, s RevealState) RevealState {
	for s.Index < len(blocks) && s.Chars >= blocks[s.Index].Len() {
		s.Index++
		s.Chars = 0
	}
	return s
}

// Reveal animates one message. It owns the segmented blocks of the message
// content and the current RevealState. Reveal is not safe for concurrent
// use; each displayed message owns its own instance.
type Reveal struct {
	content    string
	blocks     []Block
	speed      time.Duration
	animate    bool
	state      RevealState
	generation int
}

// NewReveal segments content and positions the animation at the start, or
// at the end when animate is false.
func NewReveal(content string, speed time.Duration, animate bool) *Reveal {
	r := &Reveal{speed: speed, animate: animate}
	r.reset(content)
	return r
}

func (r *Reveal) reset(content string) {
	r.content = content
	r.blocks = Segment(content)
	r.generation++
	if r.animate {
		r.state = RevealState{}
		return
	}
	r.state = RevealState{Index: len(r.blocks)}
}

// SetContent replaces the message content. Different content restarts the
// animation from the first block; it reports whether a restart happened.
func (r *Reveal) SetContent(content string) bool {
	if content == r.content {
		return false
	}
	r.reset(content)
	return true
}

// SetSpeed changes the time per character for subsequent ticks.
func (r *Reveal) SetSpeed(speed time.Duration) { r.speed = speed }

// Speed returns the time per character.
func (r *Reveal) Speed() time.Duration { return r.speed }

// Skip jumps to the end of the animation.
func (r *Reveal) Skip() {
	r.state = RevealState{Index: len(r.blocks)}
}

// Tick advances the animation by elapsed time and returns the new state.
func (r *Reveal) Tick(elapsed time.Duration) RevealState {
	r.state = Advance(r.blocks, r.state, r.speed, elapsed)
	return r.state
}

// State returns the current position.
func (r *Reveal) State() RevealState { return r.state }

// Done reports whether the whole message is visible.
func (r *Reveal) Done() bool { return r.state.Done(r.blocks) }

// Generation identifies the current content. It changes whenever the
// animation restarts so that callbacks scheduled for older content can be
// recognised and dropped.
func (r *Reveal) Generation() int { return r.generation }

// Content returns the message content being revealed.
func (r *Reveal) Content() string { return r.content }

// Blocks returns all segmented blocks regardless of progress.
func (r *Reveal) Blocks() []Block { return r.blocks }

// Visible returns the blocks as currently shown: fully revealed blocks,
// then the partially revealed current block, if it has any characters.
func (r *Reveal) Visible() []Block {
	if r.Done() {
		return r.blocks
	}
	visible := make([]Block, 0, r.state.Index+1)
	visible = append(visible, r.blocks[:r.state.Index]...)
	if r.state.Chars > 0 {
		cur := r.blocks[r.state.Index]
		visible = append(visible, Block{Kind: cur.Kind, Text: cur.Prefix(r.state.Chars)})
	}
	return visible
}
