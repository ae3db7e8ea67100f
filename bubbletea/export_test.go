package bubbletea

// BlockSeparator exports blockSeparator for testing.
func BlockSeparator(prev, curr MessageBlock) string {
	return blockSeparator(prev, curr)
}

// RenderContent exports renderContent for testing.
func RenderContent(m Model) string {
	return m.renderContent()
}

// Blocks returns the conversation blocks.
func Blocks(m Model) []MessageBlock {
	return m.blocks
}

// SessionID returns the active chat session id.
func SessionID(m Model) string {
	return m.sessionID
}
