package docx

// ParagraphsOf returns the direct w:p children of a container node (a body,
// header, footer, table cell or text-box content region).
func ParagraphsOf(container *Node) []*Node {
	return container.ChildrenNamed("w:p")
}

// RowsOf returns the rows of a w:tbl node.
func RowsOf(table *Node) []*Node {
	return table.ChildrenNamed("w:tr")
}

// CellsOf returns the cells of a w:tr node.
func CellsOf(row *Node) []*Node {
	return row.ChildrenNamed("w:tc")
}
